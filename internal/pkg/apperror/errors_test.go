package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/apperror"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invalid location", fmt.Errorf("%w: (0, 0)", domain.ErrInvalidLocation), "INVALID_LOCATION", http.StatusBadRequest},
		{"unsatisfiable", domain.ErrResolutionUnsatisfiable, "RESOLUTION_UNSATISFIABLE", http.StatusUnprocessableEntity},
		{"no imagery wins over missing tiles", fmt.Errorf("%w: %w", domain.ErrNoImageryAvailable, domain.ErrMissingTiles), "NO_IMAGERY", http.StatusNotFound},
		{"integrity", domain.ErrTileIntegrity, "TILE_INTEGRITY", http.StatusBadGateway},
		{"not found", domain.ErrAcquisitionNotFound, "ACQUISITION_NOT_FOUND", http.StatusNotFound},
		{"analyzer", domain.ErrAnalyzerUnavailable, "ANALYZER_UNAVAILABLE", http.StatusServiceUnavailable},
		{"timeout", fmt.Errorf("scanning: %w", context.DeadlineExceeded), "TIMEOUT", http.StatusGatewayTimeout},
		{"app error passes through", fmt.Errorf("parsing: %w", apperror.BadRequest("INVALID_ID", "bad id")), "INVALID_ID", http.StatusBadRequest},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperror.FromError(tt.err)

			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.status, apperror.StatusCode(tt.err))
		})
	}
}
