package imagery_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
)

var allDirections = []valueobject.ViewDirection{
	valueobject.Downward,
	valueobject.Northward,
	valueobject.Eastward,
	valueobject.Southward,
	valueobject.Westward,
}

func TestProject(t *testing.T) {
	t.Run("maps null island to the center of the world", func(t *testing.T) {
		x, y := imagery.Project(valueobject.GeoPoint{}, 1)

		assert.InDelta(t, 1.0, x, 1e-9)
		assert.InDelta(t, 1.0, y, 1e-9)
	})

	t.Run("grows y southward", func(t *testing.T) {
		_, north := imagery.Project(valueobject.GeoPoint{Latitude: 10}, 5)
		_, south := imagery.Project(valueobject.GeoPoint{Latitude: -10}, 5)

		assert.Less(t, north, south)
	})

	t.Run("tile index is the floor of the projection", func(t *testing.T) {
		points := []valueobject.GeoPoint{
			{Latitude: 0, Longitude: 0},
			{Latitude: 52.520008, Longitude: 13.404954},
			{Latitude: -33.8688, Longitude: 151.2093},
			{Latitude: 40.7128, Longitude: -74.006},
			{Latitude: 84.9, Longitude: -179.9},
		}

		for _, p := range points {
			for zoom := 0; zoom <= imagery.MaxZoom; zoom++ {
				for _, dir := range allDirections {
					x, y := imagery.ProjectFor(p, zoom, dir)
					addr := imagery.ToTile(p, 900, zoom, dir).Address()

					assert.Equal(t, int(math.Floor(x)), addr.X, "x for %v z%d %s", p, zoom, dir)
					assert.Equal(t, int(math.Floor(y)), addr.Y, "y for %v z%d %s", p, zoom, dir)
				}
			}
		}
	})

	t.Run("new tiles are pending", func(t *testing.T) {
		tile := imagery.ToTile(valueobject.GeoPoint{Latitude: 1, Longitude: 1}, 908, 18, valueobject.Downward)

		assert.Equal(t, imagery.TilePending, tile.Status())
		assert.Equal(t, 908, tile.Address().Version)
		assert.Equal(t, 18, tile.Address().Zoom)
	})
}

func TestProjectOblique(t *testing.T) {
	p := valueobject.GeoPoint{Latitude: 0, Longitude: 90}
	compress := func(y, w float64) float64 { return (y-w/2)/math.Sqrt2 + w/2 }

	// at zoom 2 the point projects to (3, 2) in a world 4 tiles wide
	t.Run("northward only compresses y", func(t *testing.T) {
		x, y := imagery.ProjectOblique(p, 2, valueobject.Northward)

		assert.InDelta(t, 3.0, x, 1e-9)
		assert.InDelta(t, compress(2, 4), y, 1e-9)
	})

	t.Run("eastward rotates axes", func(t *testing.T) {
		x, y := imagery.ProjectOblique(p, 2, valueobject.Eastward)

		assert.InDelta(t, 2.0, x, 1e-9)
		assert.InDelta(t, compress(1, 4), y, 1e-9)
	})

	t.Run("southward mirrors both axes", func(t *testing.T) {
		x, y := imagery.ProjectOblique(p, 2, valueobject.Southward)

		assert.InDelta(t, 1.0, x, 1e-9)
		assert.InDelta(t, compress(2, 4), y, 1e-9)
	})

	t.Run("westward rotates the other way", func(t *testing.T) {
		x, y := imagery.ProjectOblique(p, 2, valueobject.Westward)

		assert.InDelta(t, 2.0, x, 1e-9)
		assert.InDelta(t, compress(3, 4), y, 1e-9)
	})

	t.Run("downward uses the plain projection", func(t *testing.T) {
		x1, y1 := imagery.ProjectFor(p, 2, valueobject.Downward)
		x2, y2 := imagery.Project(p, 2)

		assert.Equal(t, x2, x1)
		assert.Equal(t, y2, y1)
	})
}

func TestComputeZoomLevel(t *testing.T) {
	t.Run("one meter per pixel at the equator needs zoom 18", func(t *testing.T) {
		assert.InDelta(t, 156543.03, imagery.MetersPerPixel(0, 0), 0.01)

		zoom, err := imagery.ComputeZoomLevel(0, 1)

		require.NoError(t, err)
		assert.Equal(t, 18, zoom)
	})

	t.Run("never increases as the constraint loosens", func(t *testing.T) {
		for _, lat := range []float64{0, 35, 60, -70} {
			previous := imagery.MaxZoom
			for mpp := 0.05; mpp < 200000; mpp *= 1.7 {
				zoom, err := imagery.ComputeZoomLevel(lat, mpp)
				require.NoError(t, err)
				assert.LessOrEqual(t, zoom, previous, "lat %v mpp %v", lat, mpp)
				assert.LessOrEqual(t, imagery.MetersPerPixel(lat, zoom), mpp)
				previous = zoom
			}
		}
	})

	t.Run("returns the lowest zoom that satisfies the constraint", func(t *testing.T) {
		zoom, err := imagery.ComputeZoomLevel(45, 0.5)

		require.NoError(t, err)
		assert.LessOrEqual(t, imagery.MetersPerPixel(45, zoom), 0.5)
		assert.Greater(t, imagery.MetersPerPixel(45, zoom-1), 0.5)
	})

	t.Run("fails beyond the maximum zoom", func(t *testing.T) {
		_, err := imagery.ComputeZoomLevel(0, 0.001)

		assert.ErrorIs(t, err, domain.ErrResolutionUnsatisfiable)
	})

	t.Run("fails for a non-positive constraint", func(t *testing.T) {
		_, err := imagery.ComputeZoomLevel(0, 0)

		assert.ErrorIs(t, err, domain.ErrResolutionUnsatisfiable)
	})
}

func TestMaxMetersPerPixel(t *testing.T) {
	t.Run("uses the tighter axis", func(t *testing.T) {
		mpp := imagery.MaxMetersPerPixel(1000, 500, 2048, 2048, valueobject.Downward)

		assert.InDelta(t, 500.0/2048, mpp, 1e-12)
	})

	t.Run("accounts for oblique foreshortening", func(t *testing.T) {
		mpp := imagery.MaxMetersPerPixel(1000, 1000, 2048, 2048, valueobject.Northward)

		assert.InDelta(t, 1000.0/2048/math.Sqrt2, mpp, 1e-12)
	})

	t.Run("uses width alone when height is unset", func(t *testing.T) {
		mpp := imagery.MaxMetersPerPixel(1000, 1000, 1000, 0, valueobject.Northward)

		assert.InDelta(t, 1.0, mpp, 1e-12)
	})
}
