package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// BadRequest is a client error raised outside the domain, such as a malformed path parameter.
func BadRequest(code, message string) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: http.StatusBadRequest}
}

func Internal(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "an internal error occurred", StatusCode: http.StatusInternalServerError, Err: err}
}

type mapping struct {
	target  error
	code    string
	message string
	status  int
}

// Order matters: a failed acquisition wraps both ErrNoImageryAvailable and ErrMissingTiles.
var mappings = []mapping{
	{domain.ErrInvalidLocation, "INVALID_LOCATION", "invalid location", http.StatusBadRequest},
	{domain.ErrInvalidRect, "INVALID_AREA", "invalid area", http.StatusBadRequest},
	{domain.ErrInvalidAreaSize, "INVALID_AREA", "invalid area size", http.StatusBadRequest},
	{domain.ErrInvalidDirection, "INVALID_DIRECTION", "invalid view direction", http.StatusBadRequest},
	{domain.ErrInvalidAnalysisType, "INVALID_ANALYSIS_TYPE", "invalid analysis type", http.StatusBadRequest},
	{domain.ErrResolutionUnsatisfiable, "RESOLUTION_UNSATISFIABLE", "requested resolution exceeds the deepest zoom level", http.StatusUnprocessableEntity},
	{domain.ErrNoImageryAvailable, "NO_IMAGERY", "no imagery available for this location", http.StatusNotFound},
	{domain.ErrTileIntegrity, "TILE_INTEGRITY", "provider returned an unusable tile", http.StatusBadGateway},
	{domain.ErrMissingTiles, "MISSING_TILES", "provider did not serve every tile", http.StatusBadGateway},
	{domain.ErrAcquisitionNotFound, "ACQUISITION_NOT_FOUND", "acquisition not found", http.StatusNotFound},
	{domain.ErrImageNotFound, "IMAGE_NOT_FOUND", "image not found", http.StatusNotFound},
	{domain.ErrAnalyzerUnavailable, "ANALYZER_UNAVAILABLE", "analyzer unavailable", http.StatusServiceUnavailable},
	{domain.ErrTokenInvalid, "UNAUTHORIZED", "invalid or expired token", http.StatusUnauthorized},
	{domain.ErrUnauthorized, "UNAUTHORIZED", "unauthorized", http.StatusUnauthorized},
	{context.DeadlineExceeded, "TIMEOUT", "request timed out", http.StatusGatewayTimeout},
	{context.Canceled, "CANCELLED", "request cancelled", http.StatusRequestTimeout},
}

// FromError maps err to an AppError. Unknown errors become internal errors.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &AppError{Code: m.code, Message: m.message, StatusCode: m.status, Err: err}
		}
	}
	return Internal(err)
}

func StatusCode(err error) int {
	return FromError(err).StatusCode
}
