package acquisition

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
)

const filenamePrefix = "satellite"

type FilenameParams struct {
	CapturedAt   time.Time
	Direction    valueobject.ViewDirection
	Version      int
	Bounds       imagery.TileBounds
	Zoom         int
	Center       valueobject.GeoPoint
	WidthMeters  float64
	HeightMeters float64
	Extension    string
}

// Filename encodes everything needed to trace an image back to the provider request.
func Filename(p FilenameParams) string {
	ext := strings.TrimPrefix(p.Extension, ".")
	if ext == "" {
		ext = "jpg"
	}

	return fmt.Sprintf("%s-%s-%s-v%d-x%d..%dy%d..%d-z%d-%.6f,%.6f-%gx%gm.%s",
		filenamePrefix,
		p.CapturedAt.UTC().Format("20060102T150405Z"),
		p.Direction,
		p.Version,
		p.Bounds.XMin, p.Bounds.XMax,
		p.Bounds.YMin, p.Bounds.YMax,
		p.Zoom,
		p.Center.Latitude, p.Center.Longitude,
		p.WidthMeters, p.HeightMeters,
		ext,
	)
}
