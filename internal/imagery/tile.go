package imagery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

type TileStatus int32

const (
	TilePending TileStatus = iota
	TileFetching
	TileFetched
	TileFailed
	// TileCorrupt is terminal: the provider answered with bytes that are not a usable tile.
	TileCorrupt
)

func (s TileStatus) String() string {
	switch s {
	case TilePending:
		return "pending"
	case TileFetching:
		return "fetching"
	case TileFetched:
		return "fetched"
	case TileFailed:
		return "failed"
	case TileCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("TileStatus(%d)", int32(s))
	}
}

// TileAddress identifies a tile at the provider.
type TileAddress struct {
	Version   int
	Zoom      int
	Direction valueobject.ViewDirection
	X         int
	Y         int
}

func (a TileAddress) String() string {
	return fmt.Sprintf("v%d/%s/z%d/%d/%d", a.Version, a.Direction, a.Zoom, a.X, a.Y)
}

// TileFetcher retrieves the encoded image bytes of a tile. Any returned error marks
// the tile as failed.
type TileFetcher interface {
	FetchTile(ctx context.Context, addr TileAddress) ([]byte, error)
}

// Tile is written by a single fetch at a time; status is atomic so observers can
// poll it while a fetch runs.
type Tile struct {
	addr     TileAddress
	status   atomic.Int32
	raster   *image.NRGBA
	err      error
	observer Observer
}

func NewTile(addr TileAddress) *Tile {
	return &Tile{addr: addr}
}

func (t *Tile) Address() TileAddress {
	return t.addr
}

func (t *Tile) Status() TileStatus {
	return TileStatus(t.status.Load())
}

// Raster returns the decoded tile, or nil until the tile is fetched.
func (t *Tile) Raster() *image.NRGBA {
	if t.Status() != TileFetched {
		return nil
	}
	return t.raster
}

// Err returns the error of the last failed or corrupt fetch.
func (t *Tile) Err() error {
	return t.err
}

// Load fetches the tile unless it is already fetched. A corrupt tile is never
// fetched again and keeps returning its *IntegrityError.
func (t *Tile) Load(ctx context.Context, fetcher TileFetcher) error {
	switch t.Status() {
	case TileFetched:
		return nil
	case TileCorrupt:
		return &IntegrityError{Tile: t.addr, Err: t.err}
	}
	return t.Fetch(ctx, fetcher)
}

// Fetch downloads and decodes the tile. Transport failures and error statuses leave
// the tile failed and return nil. A malformed image leaves it corrupt and returns an
// *IntegrityError.
func (t *Tile) Fetch(ctx context.Context, fetcher TileFetcher) error {
	if t.Status() == TileCorrupt {
		return &IntegrityError{Tile: t.addr, Err: t.err}
	}
	t.transition(TileFetching)

	data, err := fetcher.FetchTile(ctx, t.addr)
	if err != nil {
		t.err = err
		t.transition(TileFailed)
		return nil
	}

	raster, err := decodeTile(data)
	if err != nil {
		t.err = err
		t.transition(TileCorrupt)
		return &IntegrityError{Tile: t.addr, Err: err}
	}

	t.raster = raster
	t.err = nil
	t.transition(TileFetched)
	return nil
}

func (t *Tile) transition(to TileStatus) {
	from := TileStatus(t.status.Swap(int32(to)))
	if t.observer != nil {
		t.observer.TileStateChanged(t.addr, from, to)
	}
}

func decodeTile(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if !isFullColor(img) {
		return nil, fmt.Errorf("unexpected color model %T", img)
	}

	b := img.Bounds()
	if b.Dx() != TileSize || b.Dy() != TileSize {
		return nil, fmt.Errorf("unexpected size %dx%d", b.Dx(), b.Dy())
	}

	return imaging.Clone(img), nil
}

func isFullColor(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.Paletted, *image.Alpha, *image.Alpha16, *image.CMYK:
		return false
	default:
		return true
	}
}
