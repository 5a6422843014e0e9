// Package imagerytest provides an in-memory tile provider for tests.
package imagerytest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
)

var ErrUnavailable = errors.New("tile unavailable")

// Fetcher serves solid-color PNG tiles. Color and Fail must be set before the first fetch.
type Fetcher struct {
	// Color picks the tile color. Defaults to a color derived from the address.
	Color func(addr imagery.TileAddress) color.NRGBA
	// Fail reports whether the given attempt (starting at 1) of addr fails.
	Fail func(addr imagery.TileAddress, attempt int) bool
	// Payload overrides the encoded bytes entirely.
	Payload func(addr imagery.TileAddress) []byte

	mu    sync.Mutex
	calls map[imagery.TileAddress]int
	cache map[color.NRGBA][]byte
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		calls: make(map[imagery.TileAddress]int),
		cache: make(map[color.NRGBA][]byte),
	}
}

func (f *Fetcher) FetchTile(ctx context.Context, addr imagery.TileAddress) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls[addr]++
	attempt := f.calls[addr]
	f.mu.Unlock()

	if f.Fail != nil && f.Fail(addr, attempt) {
		return nil, ErrUnavailable
	}
	if f.Payload != nil {
		return f.Payload(addr), nil
	}

	c := AddressColor(addr)
	if f.Color != nil {
		c = f.Color(addr)
	}
	return f.encoded(c), nil
}

func (f *Fetcher) Calls(addr imagery.TileAddress) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[addr]
}

func (f *Fetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// VersionCalls counts fetches for a single imagery version.
func (f *Fetcher) VersionCalls(version int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for addr, n := range f.calls {
		if addr.Version == version {
			total += n
		}
	}
	return total
}

func (f *Fetcher) encoded(c color.NRGBA) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data, ok := f.cache[c]; ok {
		return data
	}
	data := TilePNG(imaging.New(imagery.TileSize, imagery.TileSize, c))
	f.cache[c] = data
	return data
}

// AddressColor gives every (version, x, y) a distinct color.
func AddressColor(addr imagery.TileAddress) color.NRGBA {
	return color.NRGBA{R: uint8(addr.X), G: uint8(addr.Y), B: uint8(addr.Version), A: 255}
}

// PositionColor ignores the version, so every version serves identical imagery.
func PositionColor(addr imagery.TileAddress) color.NRGBA {
	return color.NRGBA{R: uint8(addr.X), G: uint8(addr.Y), B: 7, A: 255}
}

func TilePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
