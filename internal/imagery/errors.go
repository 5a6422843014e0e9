package imagery

import (
	"errors"
	"fmt"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

var (
	ErrGridIncomplete    = errors.New("grid has tiles that are not fetched")
	ErrCornersNotFetched = errors.New("reference grid corners are not fetched")
	ErrAlreadyCropped    = errors.New("mosaic already cropped")
	ErrAlreadyScaled     = errors.New("mosaic already scaled")
	ErrInvalidScale      = errors.New("invalid scale dimensions")
)

// MissingTilesError reports a grid or probe that still had failed tiles after retrying.
type MissingTilesError struct {
	Missing int
	Total   int
}

func (e *MissingTilesError) Error() string {
	return fmt.Sprintf("unable to fetch %d of %d tiles", e.Missing, e.Total)
}

func (e *MissingTilesError) Unwrap() error {
	return domain.ErrMissingTiles
}

func (e *MissingTilesError) Details() map[string]any {
	return map[string]any{"missing_tiles": e.Missing, "total_tiles": e.Total}
}

// IntegrityError reports a tile response that decoded to something other than a
// full-color TileSize x TileSize raster. Retrying does not help.
type IntegrityError struct {
	Tile TileAddress
	Err  error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("tile %s: %v", e.Tile, e.Err)
}

func (e *IntegrityError) Details() map[string]any {
	return map[string]any{"tile": e.Tile.String()}
}

func (e *IntegrityError) Unwrap() []error {
	return []error{domain.ErrTileIntegrity, e.Err}
}
