package imagery_test

import (
	"context"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery/imagerytest"
)

const testZoom = 18

func testRect(t *testing.T) valueobject.GeoRect {
	t.Helper()
	rect, err := valueobject.AroundPoint(valueobject.GeoPoint{Latitude: 0.01, Longitude: 0.01}, 600, 600)
	require.NoError(t, err)
	return rect
}

func newTestGrid(t *testing.T, version int) *imagery.TileGrid {
	t.Helper()
	return imagery.NewGrid(testRect(t), testZoom, valueobject.Downward, version,
		imagery.WithRand(rand.New(rand.NewPCG(1, 2))))
}

func TestNewGrid(t *testing.T) {
	t.Run("covers the rectangle", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		b := grid.Bounds()

		assert.GreaterOrEqual(t, grid.Width(), 4)
		assert.GreaterOrEqual(t, grid.Height(), 4)
		assert.Equal(t, b.XMax-b.XMin+1, grid.Width())
		assert.Equal(t, b.YMax-b.YMin+1, grid.Height())
		assert.Len(t, grid.Tiles(), grid.Width()*grid.Height())
		assert.Equal(t, b.XMin, grid.At(0, 0).Address().X)
		assert.Equal(t, b.YMin, grid.At(0, 0).Address().Y)
	})

	t.Run("wraps negative indices", func(t *testing.T) {
		grid := newTestGrid(t, 908)

		assert.Same(t, grid.At(grid.Width()-1, grid.Height()-1), grid.At(-1, -1))
		assert.Same(t, grid.At(0, grid.Height()-1), grid.At(0, -1))
		assert.Same(t, grid.At(grid.Width()-1, 0), grid.At(-1, 0))
	})

	t.Run("normalizes axes for every view direction", func(t *testing.T) {
		for _, dir := range allDirections {
			grid := imagery.NewGrid(testRect(t), testZoom, dir, 131)
			b := grid.Bounds()

			assert.LessOrEqual(t, b.XMin, b.XMax, dir.String())
			assert.LessOrEqual(t, b.YMin, b.YMax, dir.String())
			assert.Equal(t, b.XMax, grid.At(-1, -1).Address().X, dir.String())
			assert.Equal(t, b.YMax, grid.At(-1, -1).Address().Y, dir.String())
		}
	})

	t.Run("repeats corners for a single tile grid", func(t *testing.T) {
		rect := valueobject.GeoRect{
			SouthWest: valueobject.GeoPoint{Latitude: 0.0001, Longitude: 0.0001},
			NorthEast: valueobject.GeoPoint{Latitude: 0.0002, Longitude: 0.0002},
		}
		grid := imagery.NewGrid(rect, 10, valueobject.Downward, 908)

		corners := grid.Corners()

		require.Len(t, corners, 4)
		for _, c := range corners {
			assert.Same(t, grid.At(0, 0), c)
		}
	})
}

func TestNewGrid_WorldEdges(t *testing.T) {
	const zoom = 19
	world := 1 << zoom

	for _, lng := range []float64{180, -180, 179.999} {
		t.Run("spans the anti-meridian at longitude "+strconv.FormatFloat(lng, 'f', -1, 64), func(t *testing.T) {
			rect, err := valueobject.AroundPoint(valueobject.GeoPoint{Latitude: -17.8, Longitude: lng}, 1000, 1000)
			require.NoError(t, err)

			grid := imagery.NewGrid(rect, zoom, valueobject.Downward, 908)

			assert.LessOrEqual(t, grid.Width(), 16)
			assert.LessOrEqual(t, grid.Height(), 16)
			for _, tile := range grid.Tiles() {
				x := tile.Address().X
				assert.True(t, x >= 0 && x < world, "column %d outside the world", x)
			}
			for x := 1; x < grid.Width(); x++ {
				prev, cur := grid.At(x-1, 0).Address().X, grid.At(x, 0).Address().X
				assert.Equal(t, (prev+1)%world, cur)
			}
		})
	}

	t.Run("folds columns for oblique views facing north and south", func(t *testing.T) {
		rect, err := valueobject.AroundPoint(valueobject.GeoPoint{Latitude: 10, Longitude: 180}, 500, 500)
		require.NoError(t, err)

		for _, dir := range []valueobject.ViewDirection{valueobject.Northward, valueobject.Southward} {
			grid := imagery.NewGrid(rect, zoom, dir, 131)

			assert.LessOrEqual(t, grid.Width(), 16, dir.String())
			for _, tile := range grid.Tiles() {
				x := tile.Address().X
				assert.True(t, x >= 0 && x < world, "%s column %d outside the world", dir, x)
			}
		}
	})

	t.Run("clamps rows at the poles", func(t *testing.T) {
		for _, lat := range []float64{90, -90, 89.9999} {
			rect := valueobject.GeoRect{
				SouthWest: valueobject.GeoPoint{Latitude: math.Max(lat-0.01, -90), Longitude: 10},
				NorthEast: valueobject.GeoPoint{Latitude: math.Min(lat+0.01, 90), Longitude: 10.01},
			}

			grid := imagery.NewGrid(rect, 12, valueobject.Downward, 908)

			assert.Positive(t, grid.Height())
			b := grid.Bounds()
			assert.GreaterOrEqual(t, b.YMin, 0)
			assert.Less(t, b.YMax, 1<<12)
		}
	})
}

func TestTileGrid_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches every tile once", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		fetcher := imagerytest.NewFetcher()

		err := grid.Download(ctx, fetcher)

		require.NoError(t, err)
		progress := grid.Progress()
		assert.True(t, progress.Done())
		assert.Equal(t, progress.Total, progress.Fetched)
		assert.Equal(t, progress.Total, fetcher.TotalCalls())
	})

	t.Run("retries a few failed tiles", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		flaky := grid.At(1, 1).Address()
		fetcher := imagerytest.NewFetcher()
		fetcher.Fail = func(addr imagery.TileAddress, attempt int) bool {
			return addr == flaky && attempt == 1
		}

		err := grid.Download(ctx, fetcher)

		require.NoError(t, err)
		assert.Equal(t, 2, fetcher.Calls(flaky))
		assert.Equal(t, imagery.TileFetched, grid.At(1, 1).Status())
	})

	t.Run("reports tiles that stay unavailable", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		gone := grid.At(0, 0).Address()
		fetcher := imagerytest.NewFetcher()
		fetcher.Fail = func(addr imagery.TileAddress, _ int) bool { return addr == gone }

		err := grid.Download(ctx, fetcher)

		var missing *imagery.MissingTilesError
		require.ErrorAs(t, err, &missing)
		assert.ErrorIs(t, err, domain.ErrMissingTiles)
		assert.Equal(t, 1, missing.Missing)
		assert.Equal(t, len(grid.Tiles()), missing.Total)
		assert.Equal(t, 2, fetcher.Calls(gone))
	})

	t.Run("does not retry when too many tiles failed", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		fetcher := imagerytest.NewFetcher()
		fetcher.Fail = func(_ imagery.TileAddress, attempt int) bool { return attempt == 1 }

		err := grid.Download(ctx, fetcher)

		var missing *imagery.MissingTilesError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, missing.Total, missing.Missing)
		assert.Equal(t, len(grid.Tiles()), fetcher.TotalCalls())
	})

	t.Run("propagates integrity errors", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		broken := grid.At(2, 0).Address()
		fetcher := imagerytest.NewFetcher()
		fetcher.Payload = func(addr imagery.TileAddress) []byte {
			if addr == broken {
				return imagerytest.TilePNG(imaging.New(64, 64, color.NRGBA{A: 255}))
			}
			return imagerytest.TilePNG(imaging.New(imagery.TileSize, imagery.TileSize, imagerytest.AddressColor(addr)))
		}

		err := grid.Download(ctx, fetcher)

		assert.ErrorIs(t, err, domain.ErrTileIntegrity)
	})
}

func TestTileGrid_CornersIdenticalTo(t *testing.T) {
	ctx := context.Background()

	downloaded := func(t *testing.T, fetcher *imagerytest.Fetcher, version int) *imagery.TileGrid {
		t.Helper()
		grid := newTestGrid(t, version)
		require.NoError(t, grid.Download(ctx, fetcher))
		return grid
	}

	t.Run("true for identical imagery", func(t *testing.T) {
		fetcher := imagerytest.NewFetcher()
		fetcher.Color = imagerytest.PositionColor
		previous := downloaded(t, fetcher, 908)
		grid := newTestGrid(t, 907)

		identical, err := grid.CornersIdenticalTo(ctx, fetcher, previous)

		require.NoError(t, err)
		assert.True(t, identical)
		assert.Equal(t, 4, fetcher.VersionCalls(907))
	})

	t.Run("true when compared with itself", func(t *testing.T) {
		fetcher := imagerytest.NewFetcher()
		grid := downloaded(t, fetcher, 908)

		identical, err := grid.CornersIdenticalTo(ctx, fetcher, grid)

		require.NoError(t, err)
		assert.True(t, identical)
	})

	t.Run("false when a single pixel differs", func(t *testing.T) {
		previous := downloadedWith(t, imagerytest.PositionColor, 908)
		grid := newTestGrid(t, 907)
		changed := grid.At(-1, -1).Address()
		fetcher := imagerytest.NewFetcher()
		fetcher.Payload = func(addr imagery.TileAddress) []byte {
			img := imaging.New(imagery.TileSize, imagery.TileSize, imagerytest.PositionColor(addr))
			if addr == changed {
				img.SetNRGBA(100, 100, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
			}
			return imagerytest.TilePNG(img)
		}

		identical, err := grid.CornersIdenticalTo(ctx, fetcher, previous)

		require.NoError(t, err)
		assert.False(t, identical)
	})

	t.Run("reports unreachable corners", func(t *testing.T) {
		fetcher := imagerytest.NewFetcher()
		previous := downloaded(t, fetcher, 908)
		fetcher.Fail = func(addr imagery.TileAddress, _ int) bool { return addr.Version == 907 }
		grid := newTestGrid(t, 907)

		_, err := grid.CornersIdenticalTo(ctx, fetcher, previous)

		var missing *imagery.MissingTilesError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 4, missing.Missing)
		assert.Equal(t, 4, missing.Total)
		assert.Equal(t, 8, fetcher.VersionCalls(907))
	})

	t.Run("requires fetched reference corners", func(t *testing.T) {
		fetcher := imagerytest.NewFetcher()
		grid := newTestGrid(t, 907)

		_, err := grid.CornersIdenticalTo(ctx, fetcher, newTestGrid(t, 908))

		assert.ErrorIs(t, err, imagery.ErrCornersNotFetched)
		assert.Zero(t, fetcher.TotalCalls())
	})
}

func downloadedWith(t *testing.T, pick func(imagery.TileAddress) color.NRGBA, version int) *imagery.TileGrid {
	t.Helper()
	fetcher := imagerytest.NewFetcher()
	fetcher.Color = pick
	grid := newTestGrid(t, version)
	require.NoError(t, grid.Download(context.Background(), fetcher))
	return grid
}

func TestTileGrid_Stitch(t *testing.T) {
	t.Run("places every tile at its grid position", func(t *testing.T) {
		grid := newTestGrid(t, 908)
		require.NoError(t, grid.Download(context.Background(), imagerytest.NewFetcher()))

		mosaic, err := grid.Stitch()

		require.NoError(t, err)
		assert.Equal(t, 908, mosaic.Version)
		assert.Equal(t, grid.Bounds(), mosaic.Bounds)
		assert.Equal(t, grid.Width()*imagery.TileSize, mosaic.Width())
		assert.Equal(t, grid.Height()*imagery.TileSize, mosaic.Height())

		for x := range grid.Width() {
			for y := range grid.Height() {
				want := imagerytest.AddressColor(grid.At(x, y).Address())
				got := mosaic.Raster().At(x*imagery.TileSize+17, y*imagery.TileSize+200)
				assert.Equal(t, want, got, "tile %d,%d", x, y)
			}
		}
	})

	t.Run("fails while tiles are missing", func(t *testing.T) {
		grid := newTestGrid(t, 908)

		_, err := grid.Stitch()

		assert.ErrorIs(t, err, imagery.ErrGridIncomplete)
	})
}
