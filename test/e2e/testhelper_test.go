package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository/memory"
	pgRepo "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery/imagerytest"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/analytics"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/analyzer"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/provider"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/acquisition"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/analysis"
)

const (
	apiPrefix     = "/api/v1"
	signingSecret = "e2e-signing-secret"
	latestVersion = 950
)

// TestApp is the full HTTP stack backed by fake tile and analyzer servers.
type TestApp struct {
	BaseURL     string
	Token       string
	StorageRoot string
	Tiles       *tileServer
	client      *http.Client
}

type appOptions struct {
	postgres bool
}

func setupTestApp(t *testing.T, opts appOptions) *TestApp {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	app := &TestApp{}

	var repo repository.AcquisitionRepository
	if opts.postgres {
		if testing.Short() {
			t.Skip("Skipping e2e test in short mode")
		}

		repo = pgRepo.NewAcquisitionRepo(startPostGIS(t))
	} else {
		memRepo, err := memory.NewAcquisitionRepo(100, logger)
		require.NoError(t, err)
		repo = memRepo
	}

	app.Tiles = newTileServer(latestVersion, latestVersion-1)
	t.Cleanup(app.Tiles.Close)
	analyzerSrv := httptest.NewServer(http.HandlerFunc(fakeAnalyzer))
	t.Cleanup(analyzerSrv.Close)

	providerCfg := config.ProviderConfig{
		DownwardBaseURL: app.Tiles.URL,
		ObliqueBaseURL:  app.Tiles.URL,
		UserAgent:       "e2e",
		RequestTimeout:  5 * time.Second,
	}

	storageCfg := config.StorageConfig{LocalDir: t.TempDir(), PublicURL: "/files"}
	localStorage, err := storage.NewLocalStorage(storageCfg)
	require.NoError(t, err)
	app.StorageRoot = localStorage.Root()

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	scanner := acquisition.NewScanner(acquisition.ScannerConfig{
		Fetcher:  provider.NewTileClient(providerCfg),
		Versions: provider.Fixed{Downward: latestVersion, Oblique: latestVersion},
		Observer: metrics,
		Recorder: metrics,
		Logger:   logger,
	})

	tracker := analytics.NopTracker{}
	acquisitionSvc := acquisition.NewService(scanner, repo, localStorage, storage.NewJPEGEncoder(90), tracker, logger,
		acquisition.WithMetrics(metrics))
	analysisSvc := analysis.NewService(repo, localStorage,
		analyzer.NewHTTPAnalyzer(config.AnalyzerConfig{URL: analyzerSrv.URL, Timeout: 5 * time.Second}),
		tracker, logger, analysis.Config{})

	jwtSvc := auth.NewJWTService(signingSecret, "e2e")
	token, _, err := jwtSvc.GenerateToken("e2e-user", time.Hour)
	require.NoError(t, err)
	app.Token = token

	router := server.NewRouter(server.RouterConfig{
		AcquisitionHandler: handler.NewAcquisitionHandler(acquisitionSvc, analysisSvc, 256),
		AuthMiddleware:     middleware.NewAuthMiddleware(jwtSvc),
		Metrics:            metrics,
		Gatherer:           reg,
		MaxAcquisitions:    2,
		StaticDir:          localStorage.Root(),
		PublicPath:         storageCfg.PublicURL,
		Logger:             logger,
		Environment:        "test",
	})

	apiSrv := httptest.NewServer(router.Engine())
	t.Cleanup(apiSrv.Close)
	app.BaseURL = apiSrv.URL
	app.client = &http.Client{Timeout: time.Minute}

	return app
}

// call sends a JSON request to the API and returns the status code and body.
func (app *TestApp) call(t *testing.T, method, path string, payload any, authed bool) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiPrefix+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+app.Token)
	}
	return app.send(t, req)
}

// fetch GETs a path outside the API prefix, such as a stored file or /metrics.
func (app *TestApp) fetch(t *testing.T, path string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, app.BaseURL+path, nil)
	require.NoError(t, err)
	return app.send(t, req)
}

func (app *TestApp) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := app.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode(t *testing.T, data []byte, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, dest), "body: %s", data)
}

// tileServer mimics the provider's downward tile endpoint for a fixed set of versions.
// Every other version answers 404.
type tileServer struct {
	*httptest.Server

	mu       sync.Mutex
	versions map[int]bool
	requests int
}

func newTileServer(versions ...int) *tileServer {
	ts := &tileServer{versions: make(map[int]bool)}
	for _, v := range versions {
		ts.versions[v] = true
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.serve))
	return ts
}

func (ts *tileServer) serve(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.requests++
	ts.mu.Unlock()

	rest, ok := strings.CutPrefix(r.URL.Path, "/kh/v=")
	if !ok {
		http.NotFound(w, r)
		return
	}
	version, err := strconv.Atoi(rest)
	if err != nil || !ts.available(version) {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	x, _ := strconv.Atoi(q.Get("x"))
	y, _ := strconv.Atoi(q.Get("y"))
	z, _ := strconv.Atoi(q.Get("z"))
	addr := imagery.TileAddress{Version: version, X: x, Y: y, Zoom: z, Direction: valueobject.Downward}

	tile := imaging.New(imagery.TileSize, imagery.TileSize, imagerytest.AddressColor(addr))
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(imagerytest.TilePNG(tile))
}

func (ts *tileServer) available(version int) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.versions[version]
}

func (ts *tileServer) Requests() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests
}

// fakeAnalyzer reports two heavily overlapping boxes for every image it receives.
func fakeAnalyzer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnalysisType string `json:"analysis_type"`
		Images       []struct {
			Name string `json:"name"`
			Data []byte `json:"data"`
		} `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AnalysisType == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	type result struct {
		Name  string       `json:"name"`
		Count int          `json:"count"`
		Boxes [][4]float64 `json:"boxes"`
	}
	results := make([]result, 0, len(req.Images))
	for _, img := range req.Images {
		if len(img.Data) == 0 {
			http.Error(w, "empty image", http.StatusBadRequest)
			return
		}
		results = append(results, result{
			Name:  img.Name,
			Count: 2,
			Boxes: [][4]float64{{0, 0, 100, 100}, {5, 5, 100, 100}},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

func startPostGIS(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgis/postgis:18-3.6-alpine",
		tcpostgres.WithDatabase("imagery"),
		tcpostgres.WithUsername("e2e"),
		tcpostgres.WithPassword("e2e"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating postgis container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = database.RunMigrations(ctx, pool, migrationsDir())
	require.NoError(t, err)
	return pool
}
