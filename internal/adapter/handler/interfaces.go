package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/acquisition"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/analysis"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AcquisitionService interface {
	Acquire(ctx context.Context, input acquisition.AcquireInput) (*acquisition.AcquireResult, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Acquisition, error)
	List(ctx context.Context, input acquisition.ListInput) ([]entity.Acquisition, *pagination.Info, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AnalysisService interface {
	Analyze(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error)
}
