package imagery

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

// MosaicImage is a stitched grid for a single imagery version. Crop and Scale each
// apply at most once, crop first.
type MosaicImage struct {
	Version int
	Bounds  TileBounds

	raster  *image.NRGBA
	cropped bool
	scaled  bool
}

func NewMosaic(raster *image.NRGBA, version int, bounds TileBounds) *MosaicImage {
	return &MosaicImage{
		Version: version,
		Bounds:  bounds,
		raster:  raster,
	}
}

func (m *MosaicImage) Raster() image.Image {
	return m.raster
}

func (m *MosaicImage) Width() int {
	return m.raster.Bounds().Dx()
}

func (m *MosaicImage) Height() int {
	return m.raster.Bounds().Dy()
}

// Crop trims the stitched tiles to the exact extent of rect.
func (m *MosaicImage) Crop(zoom int, dir valueobject.ViewDirection, rect valueobject.GeoRect) error {
	if m.cropped {
		return ErrAlreadyCropped
	}
	if m.scaled {
		return ErrAlreadyScaled
	}

	left, top, right, bottom := projectRect(rect, zoom, dir)

	leftCrop := int(math.Round(TileSize * frac(left)))
	topCrop := int(math.Round(TileSize * frac(top)))
	rightCrop := int(math.Round(TileSize * (1 - frac(right))))
	bottomCrop := int(math.Round(TileSize * (1 - frac(bottom))))

	b := m.raster.Bounds()
	area := image.Rect(b.Min.X+leftCrop, b.Min.Y+topCrop, b.Max.X-rightCrop, b.Max.Y-bottomCrop)
	if area.Empty() {
		return fmt.Errorf("crop of %v leaves no pixels", b)
	}

	m.raster = imaging.Crop(m.raster, area)
	m.cropped = true
	return nil
}

// Scale resamples to width x height with a Lanczos filter. The aspect ratio is not preserved.
func (m *MosaicImage) Scale(width, height int) error {
	if m.scaled {
		return ErrAlreadyScaled
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidScale, width, height)
	}

	m.raster = imaging.Resize(m.raster, width, height, imaging.Lanczos)
	m.scaled = true
	return nil
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}
