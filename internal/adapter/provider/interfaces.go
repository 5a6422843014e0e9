package provider

import (
	"context"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/provider_mocks.go -package=mocks

// LatestVersionProvider reports the newest imagery version the provider serves for a view direction.
type LatestVersionProvider interface {
	LatestVersion(ctx context.Context, dir valueobject.ViewDirection) (int, error)
}
