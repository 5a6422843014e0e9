package valueobject

import (
	"fmt"
	"math"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

const metersPerDegree = EarthCircumference / 360

// GeoRect is bounded by its south-west and north-east corners. Longitudes are not
// ordered so a rectangle may cross the anti-meridian.
type GeoRect struct {
	SouthWest GeoPoint
	NorthEast GeoPoint
}

func NewGeoRect(sw, ne GeoPoint) (GeoRect, error) {
	if !sw.IsValid() || !ne.IsValid() {
		return GeoRect{}, domain.ErrInvalidLocation
	}
	if sw.Latitude > ne.Latitude {
		return GeoRect{}, fmt.Errorf("%w: south %f above north %f", domain.ErrInvalidRect, sw.Latitude, ne.Latitude)
	}
	return GeoRect{SouthWest: sw, NorthEast: ne}, nil
}

// AroundPoint returns the rectangle of the given size in meters centered on center.
func AroundPoint(center GeoPoint, widthMeters, heightMeters float64) (GeoRect, error) {
	if widthMeters <= 0 || heightMeters <= 0 {
		return GeoRect{}, fmt.Errorf("%w: %fx%f meters", domain.ErrInvalidAreaSize, widthMeters, heightMeters)
	}
	if !center.IsValid() {
		return GeoRect{}, domain.ErrInvalidLocation
	}

	halfLat := heightMeters / metersPerDegree / 2
	halfLng := widthMeters / (metersPerDegree * math.Cos(center.Latitude*math.Pi/180)) / 2

	sw := GeoPoint{
		Latitude:  clampLatitude(center.Latitude - halfLat),
		Longitude: wrapLongitude(center.Longitude - halfLng),
	}
	ne := GeoPoint{
		Latitude:  clampLatitude(center.Latitude + halfLat),
		Longitude: wrapLongitude(center.Longitude + halfLng),
	}

	return GeoRect{SouthWest: sw, NorthEast: ne}, nil
}

func (r GeoRect) LatitudeSpan() float64 {
	return r.NorthEast.Latitude - r.SouthWest.Latitude
}

func (r GeoRect) LongitudeSpan() float64 {
	span := r.NorthEast.Longitude - r.SouthWest.Longitude
	if span < 0 {
		span += 360
	}
	return span
}

func (r GeoRect) Center() GeoPoint {
	return GeoPoint{
		Latitude:  (r.SouthWest.Latitude + r.NorthEast.Latitude) / 2,
		Longitude: wrapLongitude(r.SouthWest.Longitude + r.LongitudeSpan()/2),
	}
}

func clampLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

func wrapLongitude(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
