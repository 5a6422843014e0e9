package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/observability"
)

type Router struct {
	engine             *gin.Engine
	acquisitionHandler *handler.AcquisitionHandler
	authMiddleware     *middleware.AuthMiddleware
	metrics            *observability.Metrics
	gatherer           prometheus.Gatherer
	maxAcquisitions    int64
	staticDir          string
	publicPath         string
	logger             *zap.Logger
}

type RouterConfig struct {
	AcquisitionHandler *handler.AcquisitionHandler
	AuthMiddleware     *middleware.AuthMiddleware
	// Metrics and Gatherer are optional. /metrics is only mounted when Gatherer is set.
	Metrics         *observability.Metrics
	Gatherer        prometheus.Gatherer
	MaxAcquisitions int64
	// StaticDir is served under PublicPath when both are set (local storage driver).
	StaticDir   string
	PublicPath  string
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authMiddleware := cfg.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = middleware.NewAuthMiddleware(nil)
	}

	r := &Router{
		engine:             gin.New(),
		acquisitionHandler: cfg.AcquisitionHandler,
		authMiddleware:     authMiddleware,
		metrics:            cfg.Metrics,
		gatherer:           cfg.Gatherer,
		maxAcquisitions:    cfg.MaxAcquisitions,
		staticDir:          cfg.StaticDir,
		publicPath:         cfg.PublicPath,
		logger:             cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger, "/health", "/metrics"))
	r.engine.Use(middleware.CORS())
	if r.metrics != nil {
		r.engine.Use(r.metrics.GinMiddleware())
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if r.gatherer != nil {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	if r.staticDir != "" && r.publicPath != "" {
		r.engine.Static(r.publicPath, r.staticDir)
	}

	api := r.engine.Group("/api/v1")
	{
		acquisitions := api.Group("/acquisitions")
		acquisitions.Use(r.authMiddleware.RequireAuth())
		{
			acquisitions.POST("", middleware.ConcurrencyLimit(r.maxAcquisitions), r.acquisitionHandler.Create)
			acquisitions.GET("", r.acquisitionHandler.List)
			acquisitions.GET("/:id", r.acquisitionHandler.Get)
			acquisitions.DELETE("/:id", r.acquisitionHandler.Delete)
			acquisitions.POST("/:id/analyze", r.acquisitionHandler.Analyze)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
