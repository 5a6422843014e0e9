package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	adapteranalyzer "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/analyzer"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/handler"
	adapterprovider "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/provider"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository/postgres"
	adapterstorage "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/storage"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
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

type eventTracker interface {
	Track(event string, properties map[string]any)
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	var (
		metrics  *observability.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err = observability.NewMetrics(reg)
		if err != nil {
			logger.Fatal("failed to register metrics", zap.Error(err))
		}
		gatherer = reg
	}

	// Repository
	var repo repository.AcquisitionRepository
	switch cfg.Repository.Driver {
	case config.RepositoryPostgres:
		var pool *pgxpool.Pool
		pool, err = database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if cfg.Database.AutoMigrate {
			applied, err := database.RunMigrations(ctx, pool, cfg.Database.MigrationsPath)
			if err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
			logger.Info("migrations applied", zap.Strings("files", applied))
		}
		repo = postgres.NewAcquisitionRepo(pool)
	default:
		repo, err = memory.NewAcquisitionRepo(cfg.Repository.MemorySize, logger)
		if err != nil {
			logger.Fatal("failed to create memory repository", zap.Error(err))
		}
	}

	// Storage
	var (
		imageStorage adapterstorage.ImageStorage
		staticDir    string
	)
	switch cfg.Storage.Driver {
	case config.StorageS3:
		imageStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to create s3 storage", zap.Error(err))
		}
	default:
		local, err := storage.NewLocalStorage(cfg.Storage)
		if err != nil {
			logger.Fatal("failed to create local storage", zap.Error(err))
		}
		imageStorage = local
		if strings.HasPrefix(cfg.Storage.PublicURL, "/") {
			staticDir = local.Root()
		}
	}
	encoder := storage.NewJPEGEncoder(cfg.Acquisition.JPEGQuality)

	// Imagery provider
	tiles := provider.NewTileClient(cfg.Provider)
	var versions adapterprovider.LatestVersionProvider = provider.Fixed{
		Downward: cfg.Provider.FallbackVersion,
		Oblique:  cfg.Provider.FallbackObliqueVersion,
	}
	if cfg.Provider.DiscoveryEnabled {
		scraper := provider.NewVersionScraper(cfg.Provider, logger)
		defer scraper.Stop()
		versions = scraper
	}

	// Analytics
	var tracker eventTracker = analytics.NopTracker{}
	if cfg.Analytics.Enabled() {
		tracker, err = analytics.NewPostHogTracker(cfg.Analytics, logger)
		if err != nil {
			logger.Fatal("failed to create analytics client", zap.Error(err))
		}
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			logger.Warn("failed to flush analytics", zap.Error(err))
		}
	}()

	// Analyzer
	var az adapteranalyzer.Analyzer
	if cfg.Analyzer.Enabled() {
		az = analyzer.NewHTTPAnalyzer(cfg.Analyzer)
	}

	// Use cases
	scannerCfg := acquisition.ScannerConfig{
		Fetcher:  tiles,
		Versions: versions,
		Logger:   logger,
		Options: acquisition.ScanOptions{
			IdenticalThreshold:     cfg.Acquisition.IdenticalThreshold,
			MissingThreshold:       cfg.Acquisition.MissingThreshold,
			StopAfterFirst:         cfg.Acquisition.StopAfterFirst,
			FallbackVersion:        cfg.Provider.FallbackVersion,
			FallbackObliqueVersion: cfg.Provider.FallbackObliqueVersion,
		},
	}
	var serviceOpts []acquisition.ServiceOption
	if cfg.Storage.Driver == config.StorageS3 && cfg.S3.SignedURLTTL > 0 {
		serviceOpts = append(serviceOpts, acquisition.WithSignedURLs(cfg.S3.SignedURLTTL))
	}
	if metrics != nil {
		scannerCfg.Observer = imagery.Observer(metrics)
		scannerCfg.Recorder = metrics
		serviceOpts = append(serviceOpts, acquisition.WithMetrics(metrics))
	}
	scanner := acquisition.NewScanner(scannerCfg)

	acquisitionSvc := acquisition.NewService(scanner, repo, imageStorage, encoder, tracker, logger, serviceOpts...)
	analysisSvc := analysis.NewService(repo, imageStorage, az, tracker, logger, analysis.Config{
		BoxThreshold:     cfg.Analyzer.BoxThreshold,
		TextThreshold:    cfg.Analyzer.TextThreshold,
		OverlapThreshold: cfg.Analyzer.OverlapThreshold,
	})

	// Handlers
	acquisitionHandler := handler.NewAcquisitionHandler(acquisitionSvc, analysisSvc, cfg.Acquisition.DefaultImageSize)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(nil)
	if cfg.JWT.Enabled() {
		authMiddleware = middleware.NewAuthMiddleware(auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer))
	}

	// Router
	routerCfg := server.RouterConfig{
		AcquisitionHandler: acquisitionHandler,
		AuthMiddleware:     authMiddleware,
		Metrics:            metrics,
		Gatherer:           gatherer,
		MaxAcquisitions:    cfg.Server.MaxAcquisitions,
		StaticDir:          staticDir,
		PublicPath:         cfg.Storage.PublicURL,
		Logger:             logger,
		Environment:        cfg.Server.Environment,
	}
	router := server.NewRouter(routerCfg)

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	if err := srv.ListenAndRun(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}
