package imagery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

const (
	cornerWorkers = 8
	// grids with fewer failed tiles than this share get a serial retry
	retryableFailureRatio = 0.2
)

// TileBounds is the inclusive tile range covered by a grid.
type TileBounds struct {
	XMin int
	XMax int
	YMin int
	YMax int
}

type TileGrid struct {
	version   int
	zoom      int
	direction valueobject.ViewDirection
	bounds    TileBounds
	width     int
	height    int
	tiles     [][]*Tile
	observer  Observer
	rng       *rand.Rand
}

type GridOption func(*TileGrid)

func WithObserver(o Observer) GridOption {
	return func(g *TileGrid) {
		g.observer = o
	}
}

// WithRand sets the source used to shuffle fetch order.
func WithRand(r *rand.Rand) GridOption {
	return func(g *TileGrid) {
		g.rng = r
	}
}

// NewGrid builds the pending tiles covering rect. Axes are normalized so that x grows
// east and y grows south in the image regardless of the view direction. Bounds keep
// the unwrapped columns of a rectangle crossing the anti-meridian while tile
// addresses are folded back into the world.
func NewGrid(rect valueobject.GeoRect, zoom int, dir valueobject.ViewDirection, version int, opts ...GridOption) *TileGrid {
	minX, minY, maxX, maxY := projectRect(rect, zoom, dir)
	left, right := int(math.Floor(minX)), int(math.Floor(maxX))
	top, bottom := int(math.Floor(minY)), int(math.Floor(maxY))

	g := &TileGrid{
		version:   version,
		zoom:      zoom,
		direction: dir,
		bounds:    TileBounds{XMin: left, XMax: right, YMin: top, YMax: bottom},
		width:     right - left + 1,
		height:    bottom - top + 1,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.tiles = make([][]*Tile, g.width)
	for x := range g.width {
		g.tiles[x] = make([]*Tile, g.height)
		for y := range g.height {
			t := NewTile(wrapAddress(TileAddress{
				Version:   version,
				Zoom:      zoom,
				Direction: dir,
				X:         left + x,
				Y:         top + y,
			}))
			t.observer = g.observer
			g.tiles[x][y] = t
		}
	}

	return g
}

func (g *TileGrid) Version() int                         { return g.version }
func (g *TileGrid) Zoom() int                            { return g.zoom }
func (g *TileGrid) Direction() valueobject.ViewDirection { return g.direction }
func (g *TileGrid) Width() int                           { return g.width }
func (g *TileGrid) Height() int                          { return g.height }
func (g *TileGrid) Bounds() TileBounds                   { return g.bounds }

// At returns the tile at grid position (x, y). Negative indices count from the end.
func (g *TileGrid) At(x, y int) *Tile {
	if x < 0 {
		x += g.width
	}
	if y < 0 {
		y += g.height
	}
	return g.tiles[x][y]
}

// Tiles returns all tiles column by column.
func (g *TileGrid) Tiles() []*Tile {
	flat := make([]*Tile, 0, g.width*g.height)
	for _, col := range g.tiles {
		flat = append(flat, col...)
	}
	return flat
}

func (g *TileGrid) Progress() Progress {
	return progressOf(g.Tiles())
}

// Download fetches every tile that is not fetched yet. When only a small share of
// tiles failed they are retried once, serially. Remaining failures yield a
// *MissingTilesError.
func (g *TileGrid) Download(ctx context.Context, fetcher TileFetcher) error {
	tiles := g.Tiles()
	g.shuffle(tiles)

	if err := fetchAll(ctx, fetcher, tiles, max(g.width, g.height)); err != nil {
		return err
	}

	failed := failedTiles(tiles)
	if len(failed) > 0 && float64(len(failed)) < retryableFailureRatio*float64(len(tiles)) {
		for _, t := range failed {
			if err := t.Load(ctx, fetcher); err != nil {
				return err
			}
		}
		failed = failedTiles(tiles)
	}

	if len(failed) > 0 {
		return &MissingTilesError{Missing: len(failed), Total: len(tiles)}
	}
	return nil
}

// Corners returns the tiles at (0,0), (0,-1), (-1,0) and (-1,-1). A grid one tile
// wide or high repeats tiles.
func (g *TileGrid) Corners() []*Tile {
	return []*Tile{g.At(0, 0), g.At(0, -1), g.At(-1, 0), g.At(-1, -1)}
}

// CornersIdenticalTo fetches this grid's corners and compares them pixel for pixel
// with the already fetched corners of other.
func (g *TileGrid) CornersIdenticalTo(ctx context.Context, fetcher TileFetcher, other *TileGrid) (bool, error) {
	if other == nil {
		return false, ErrCornersNotFetched
	}
	otherCorners := other.Corners()
	for _, t := range otherCorners {
		if t.Status() != TileFetched {
			return false, ErrCornersNotFetched
		}
	}

	corners := g.Corners()
	unique := uniqueTiles(corners)

	if err := fetchAll(ctx, fetcher, unique, cornerWorkers); err != nil {
		return false, err
	}
	for _, t := range failedTiles(unique) {
		if err := t.Load(ctx, fetcher); err != nil {
			return false, err
		}
	}
	if failed := failedTiles(corners); len(failed) > 0 {
		return false, &MissingTilesError{Missing: len(failed), Total: len(corners)}
	}

	for i := range corners {
		if !sameRaster(corners[i].Raster(), otherCorners[i].Raster()) {
			return false, nil
		}
	}
	return true, nil
}

// Stitch pastes all tiles into one raster. Every tile must be fetched.
func (g *TileGrid) Stitch() (*MosaicImage, error) {
	if p := g.Progress(); p.Fetched != p.Total {
		return nil, fmt.Errorf("%w: %d of %d fetched", ErrGridIncomplete, p.Fetched, p.Total)
	}

	canvas := imaging.New(g.width*TileSize, g.height*TileSize, color.NRGBA{A: 255})
	for x, col := range g.tiles {
		for y, t := range col {
			rect := image.Rect(x*TileSize, y*TileSize, (x+1)*TileSize, (y+1)*TileSize)
			draw.Draw(canvas, rect, t.Raster(), image.Point{}, draw.Src)
		}
	}

	return NewMosaic(canvas, g.version, g.bounds), nil
}

func (g *TileGrid) shuffle(tiles []*Tile) {
	swap := func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] }
	if g.rng != nil {
		g.rng.Shuffle(len(tiles), swap)
		return
	}
	rand.Shuffle(len(tiles), swap)
}

func fetchAll(ctx context.Context, fetcher TileFetcher, tiles []*Tile, workers int) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))

	for _, t := range tiles {
		eg.Go(func() error {
			return t.Load(egCtx, fetcher)
		})
	}

	return eg.Wait()
}

func failedTiles(tiles []*Tile) []*Tile {
	var failed []*Tile
	for _, t := range tiles {
		if t.Status() == TileFailed {
			failed = append(failed, t)
		}
	}
	return failed
}

func uniqueTiles(tiles []*Tile) []*Tile {
	seen := make(map[*Tile]struct{}, len(tiles))
	out := make([]*Tile, 0, len(tiles))
	for _, t := range tiles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func sameRaster(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Rect.Size() != b.Rect.Size() {
		return false
	}
	return bytes.Equal(a.Pix, b.Pix)
}
