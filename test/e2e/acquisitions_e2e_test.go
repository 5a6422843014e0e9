package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageBody struct {
	ID       string `json:"id"`
	Version  int    `json:"version"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Data     []byte `json:"data"`
}

type acquisitionBody struct {
	ID           string      `json:"image_id"`
	Direction    string      `json:"direction"`
	Zoom         int         `json:"zoom"`
	StartVersion int         `json:"start_version"`
	Images       []imageBody `json:"images"`
}

func eiffelTower() map[string]any {
	return map[string]any{
		"latitude":     48.8584,
		"longitude":    2.2945,
		"size_meters":  200,
		"image_width":  256,
		"include_data": false,
	}
}

func runAcquisitionLifecycle(t *testing.T, app *TestApp) {
	t.Helper()

	// acquire every distinct version reachable from the latest one
	status, data := app.call(t, http.MethodPost, "/acquisitions", eiffelTower(), true)
	require.Equal(t, http.StatusCreated, status, "body: %s", data)

	var created acquisitionBody
	decode(t, data, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "downward", created.Direction)
	assert.Equal(t, latestVersion, created.StartVersion)
	require.Len(t, created.Images, 2)
	assert.Equal(t, latestVersion, created.Images[0].Version)
	assert.Equal(t, latestVersion-1, created.Images[1].Version)
	for _, img := range created.Images {
		assert.Equal(t, "image/jpeg", img.MimeType)
		assert.Equal(t, 256, img.Width)
		assert.Empty(t, img.Data)
		assert.Contains(t, img.Filename, "-downward-")
	}
	assert.Positive(t, app.Tiles.Requests())

	status, file := app.fetch(t, created.Images[0].URL)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, file)

	status, data = app.call(t, http.MethodGet, "/acquisitions/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, status)
	var fetched acquisitionBody
	decode(t, data, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Images, 2)

	status, data = app.call(t, http.MethodGet, "/acquisitions?page=1&per_page=10", nil, true)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Acquisitions []acquisitionBody `json:"acquisitions"`
		Pagination   struct {
			TotalItems int `json:"total_items"`
		} `json:"pagination"`
	}
	decode(t, data, &list)
	assert.Equal(t, 1, list.Pagination.TotalItems)
	require.Len(t, list.Acquisitions, 1)

	// the fake analyzer reports two overlapping boxes per image
	status, data = app.call(t, http.MethodPost, "/acquisitions/"+created.ID+"/analyze", map[string]string{"analysis_type": "cars"}, true)
	require.Equal(t, http.StatusOK, status, "body: %s", data)
	var analysis struct {
		AnalysisType string `json:"analysis_type"`
		TotalCount   int    `json:"total_count"`
		Results      []struct {
			Version       int `json:"version"`
			Count         int `json:"count"`
			DetectedCount int `json:"detected_count"`
		} `json:"results"`
	}
	decode(t, data, &analysis)
	assert.Equal(t, "cars", analysis.AnalysisType)
	require.Len(t, analysis.Results, 2)
	for _, r := range analysis.Results {
		assert.Equal(t, 1, r.Count)
		assert.Equal(t, 2, r.DetectedCount)
	}
	assert.Equal(t, 2, analysis.TotalCount)

	status, _ = app.call(t, http.MethodDelete, "/acquisitions/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = app.call(t, http.MethodGet, "/acquisitions/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.fetch(t, created.Images[0].URL)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestE2E_Acquisitions_Memory(t *testing.T) {
	app := setupTestApp(t, appOptions{})

	t.Run("complete acquisition lifecycle", func(t *testing.T) {
		runAcquisitionLifecycle(t, app)
	})

	t.Run("metrics record the acquisition", func(t *testing.T) {
		status, body := app.fetch(t, "/metrics")
		require.Equal(t, http.StatusOK, status)

		assert.Contains(t, string(body), `imagery_acquisitions_total{status="completed"} 1`)
		assert.Contains(t, string(body), `imagery_versions_total{outcome="accepted"} 2`)
	})
}

func TestE2E_Acquisitions_Postgres(t *testing.T) {
	app := setupTestApp(t, appOptions{postgres: true})

	t.Run("complete acquisition lifecycle", func(t *testing.T) {
		runAcquisitionLifecycle(t, app)
	})
}

func TestE2E_Acquisitions_Errors(t *testing.T) {
	app := setupTestApp(t, appOptions{})

	t.Run("requires authentication", func(t *testing.T) {
		status, _ := app.call(t, http.MethodPost, "/acquisitions", eiffelTower(), false)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		req := eiffelTower()
		req["direction"] = "upward"

		status, _ := app.call(t, http.MethodPost, "/acquisitions", req, true)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("reports missing imagery when no version is reachable", func(t *testing.T) {
		req := eiffelTower()
		req["start_version"] = 10

		status, data := app.call(t, http.MethodPost, "/acquisitions", req, true)
		assert.Equal(t, http.StatusNotFound, status)

		var body map[string]any
		decode(t, data, &body)
		assert.Equal(t, "NO_IMAGERY", body["code"])
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		status, data := app.call(t, http.MethodGet, "/acquisitions/not-a-uuid", nil, true)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(data), "INVALID_ID")
	})

	t.Run("analyze unknown acquisition", func(t *testing.T) {
		status, _ := app.call(t, http.MethodPost, "/acquisitions/00000000-0000-0000-0000-000000000000/analyze",
			map[string]string{"analysis_type": "cars"}, true)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
