package imagery

import (
	"fmt"
	"math"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

const (
	TileSize           = 256
	MaxZoom            = 23
	EarthCircumference = valueobject.EarthCircumference

	// MaxLatitude bounds the web-mercator tile world. Beyond it y leaves [0, 2^zoom)
	// and reaches infinity at the poles.
	MaxLatitude = 85.0511287798
)

// Project maps a point to continuous web-mercator tile coordinates at the given zoom.
func Project(p valueobject.GeoPoint, zoom int) (float64, float64) {
	lambda := p.Longitude * math.Pi / 180
	phi := p.Latitude * math.Pi / 180
	factor := math.Exp2(float64(zoom)) / (2 * math.Pi)

	x := factor * (lambda + math.Pi)
	y := factor * (math.Pi - math.Log(math.Tan(math.Pi/4+phi/2)))
	return x, y
}

// ProjectOblique rotates the projection so that "up" follows the camera heading and
// compresses the y axis around the equator to account for the 45 degree view.
func ProjectOblique(p valueobject.GeoPoint, zoom int, dir valueobject.ViewDirection) (float64, float64) {
	x, y := Project(p, zoom)
	w := math.Exp2(float64(zoom))

	switch dir {
	case valueobject.Eastward:
		x, y = y, w-x
	case valueobject.Southward:
		x, y = w-x, w-y
	case valueobject.Westward:
		x, y = w-y, x
	}

	y = (y-w/2)/math.Sqrt2 + w/2
	return x, y
}

func ProjectFor(p valueobject.GeoPoint, zoom int, dir valueobject.ViewDirection) (float64, float64) {
	if dir.IsOblique() {
		return ProjectOblique(p, zoom, dir)
	}
	return Project(p, zoom)
}

// projectRect returns the continuous tile extent of rect with left <= right and
// top <= bottom. Latitudes are clamped to MaxLatitude. A rectangle crossing the
// anti-meridian is unwrapped eastward, so its extent may run past the world edge
// and tile columns must go through wrapAddress.
func projectRect(rect valueobject.GeoRect, zoom int, dir valueobject.ViewDirection) (left, top, right, bottom float64) {
	sw, ne := rect.SouthWest, rect.NorthEast
	sw.Latitude = clampMercator(sw.Latitude)
	ne.Latitude = clampMercator(ne.Latitude)
	if sw.Longitude > ne.Longitude {
		ne.Longitude += 360
	}

	left, bottom = ProjectFor(sw, zoom, dir)
	right, top = ProjectFor(ne, zoom, dir)
	if left > right {
		left, right = right, left
	}
	if bottom < top {
		bottom, top = top, bottom
	}
	return left, top, right, bottom
}

// wrapAddress folds a column unwrapped past the anti-meridian back into the world.
// East and west oblique views carry longitude on their compressed y axis, which has
// no whole-tile period, so their rows are left as projected.
func wrapAddress(addr TileAddress) TileAddress {
	if addr.Direction.SwapsAxes() {
		return addr
	}
	w := 1 << addr.Zoom
	addr.X = ((addr.X % w) + w) % w
	return addr
}

func clampMercator(lat float64) float64 {
	return math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
}

// ToTile returns the pending tile containing p.
func ToTile(p valueobject.GeoPoint, version, zoom int, dir valueobject.ViewDirection) *Tile {
	x, y := ProjectFor(p, zoom, dir)
	return NewTile(TileAddress{
		Version:   version,
		Zoom:      zoom,
		Direction: dir,
		X:         int(math.Floor(x)),
		Y:         int(math.Floor(y)),
	})
}

func MetersPerPixel(latitude float64, zoom int) float64 {
	return EarthCircumference / TileSize * math.Cos(latitude*math.Pi/180) / math.Exp2(float64(zoom))
}

// ComputeZoomLevel returns the lowest zoom whose resolution at latitude is at least as
// fine as maxMetersPerPixel.
func ComputeZoomLevel(latitude, maxMetersPerPixel float64) (int, error) {
	if !(maxMetersPerPixel > 0) {
		return 0, fmt.Errorf("%w: %v meters per pixel", domain.ErrResolutionUnsatisfiable, maxMetersPerPixel)
	}

	for zoom := MaxZoom; zoom >= 0; zoom-- {
		if MetersPerPixel(latitude, zoom) > maxMetersPerPixel {
			if zoom == MaxZoom {
				return 0, fmt.Errorf("%w: %v meters per pixel needs a zoom above %d",
					domain.ErrResolutionUnsatisfiable, maxMetersPerPixel, MaxZoom)
			}
			return zoom + 1, nil
		}
	}

	return 0, nil
}

// MaxMetersPerPixel derives the resolution constraint needed to render an area of
// widthMeters x heightMeters into an image of imageWidth x imageHeight pixels.
func MaxMetersPerPixel(widthMeters, heightMeters float64, imageWidth, imageHeight int, dir valueobject.ViewDirection) float64 {
	foreshortening := dir.Foreshortening()

	switch {
	case imageWidth <= 0 && imageHeight <= 0:
		return 1
	case imageHeight <= 0:
		return widthMeters / float64(imageWidth)
	case imageWidth <= 0:
		return heightMeters / float64(imageHeight) / foreshortening
	}

	return math.Min(widthMeters/float64(imageWidth), heightMeters/float64(imageHeight)/foreshortening)
}
