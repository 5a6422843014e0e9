package domain

import "errors"

var (
	ErrInvalidLocation         = errors.New("invalid location")
	ErrInvalidRect             = errors.New("invalid rectangle")
	ErrInvalidDirection        = errors.New("invalid view direction")
	ErrInvalidAreaSize         = errors.New("invalid area size")
	ErrResolutionUnsatisfiable = errors.New("resolution unsatisfiable")
	ErrMissingTiles            = errors.New("missing tiles")
	ErrTileIntegrity           = errors.New("tile integrity violation")
	ErrNoImageryAvailable      = errors.New("no imagery available")
	ErrAcquisitionNotFound     = errors.New("acquisition not found")
	ErrImageNotFound           = errors.New("image not found")
	ErrAnalyzerUnavailable     = errors.New("analyzer unavailable")
	ErrInvalidAnalysisType     = errors.New("invalid analysis type")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrTokenInvalid            = errors.New("token invalid")
)
