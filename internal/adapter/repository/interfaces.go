package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// AcquisitionRepository stores finished acquisitions together with their images.
type AcquisitionRepository interface {
	Create(ctx context.Context, acquisition *entity.Acquisition) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Acquisition, error)
	List(ctx context.Context, params pagination.Params) ([]entity.Acquisition, *pagination.Info, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
