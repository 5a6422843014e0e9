package observability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
)

// Metrics exposes tile, version and acquisition counters plus HTTP request metrics.
// It satisfies imagery.Observer, the scanner's version recorder and the acquisition service's
// metrics hook.
type Metrics struct {
	TileTransitions     *prometheus.CounterVec
	VersionOutcomes     *prometheus.CounterVec
	Acquisitions        *prometheus.CounterVec
	AcquisitionDuration prometheus.Histogram
	AcquisitionImages   prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		TileTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imagery_tile_transitions_total",
			Help: "Tile state transitions by target state.",
		}, []string{"state"}),
		VersionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imagery_versions_total",
			Help: "Imagery versions examined by outcome.",
		}, []string{"outcome"}),
		Acquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imagery_acquisitions_total",
			Help: "Finished acquisitions by status.",
		}, []string{"status"}),
		AcquisitionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "imagery_acquisition_duration_seconds",
			Help:    "Wall time of a full acquisition.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),
		AcquisitionImages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "imagery_acquisition_images",
			Help:    "Number of distinct versions stored per acquisition.",
			Buckets: prometheus.LinearBuckets(0, 1, 12),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	collectors := []prometheus.Collector{
		m.TileTransitions, m.VersionOutcomes, m.Acquisitions,
		m.AcquisitionDuration, m.AcquisitionImages, m.HTTPRequests, m.HTTPDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) TileStateChanged(_ imagery.TileAddress, _, to imagery.TileStatus) {
	m.TileTransitions.WithLabelValues(to.String()).Inc()
}

func (m *Metrics) RecordVersion(outcome string) {
	m.VersionOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAcquisition(status string, elapsed time.Duration, images int) {
	m.Acquisitions.WithLabelValues(status).Inc()
	m.AcquisitionDuration.Observe(elapsed.Seconds())
	if status == "completed" {
		m.AcquisitionImages.Observe(float64(images))
	}
}

// GinMiddleware records request counts and latency keyed by the matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
