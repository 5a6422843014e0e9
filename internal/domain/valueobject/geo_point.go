package valueobject

import (
	"fmt"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

// EarthCircumference is the equatorial circumference in meters used by the tile projection.
const EarthCircumference = 40075016.686

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lng}
	if !p.IsValid() {
		return GeoPoint{}, fmt.Errorf("%w: (%f, %f)", domain.ErrInvalidLocation, lat, lng)
	}
	return p, nil
}

func (p GeoPoint) IsValid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// IsNullIsland reports the (0, 0) coordinate, which clients send when they have no fix.
func (p GeoPoint) IsNullIsland() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}
