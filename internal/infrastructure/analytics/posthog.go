package analytics

import (
	"fmt"

	"github.com/posthog/posthog-go"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

const distinctID = "imagery-backend"

type PostHogTracker struct {
	client posthog.Client
	logger *zap.Logger
}

func NewPostHogTracker(cfg config.AnalyticsConfig, logger *zap.Logger) (*PostHogTracker, error) {
	client, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint: cfg.Host,
	})
	if err != nil {
		return nil, fmt.Errorf("creating posthog client: %w", err)
	}
	return &PostHogTracker{client: client, logger: logger}, nil
}

func (t *PostHogTracker) Track(event string, properties map[string]any) {
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		t.logger.Warn("failed to enqueue analytics event", zap.String("event", event), zap.Error(err))
	}
}

// Close flushes queued events.
func (t *PostHogTracker) Close() error {
	return t.client.Close()
}

type NopTracker struct{}

func (NopTracker) Track(string, map[string]any) {}

func (NopTracker) Close() error { return nil }
