package analyzer

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/analyzer_mocks.go -package=mocks

type NamedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

type Request struct {
	AcquisitionID uuid.UUID
	AnalysisType  string
	BoxThreshold  float64
	TextThreshold float64
	Images        []NamedImage
}

// Detection is the analyzer output for one image. Boxes are [x1, y1, x2, y2] in pixels.
type Detection struct {
	Name               string
	Count              int
	Boxes              [][4]float64
	AnnotatedImagePath string
}

type Analyzer interface {
	Analyze(ctx context.Context, req Request) ([]Detection, error)
}
