package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

const serviceName = "satellite-imagery"

// NewLogger builds the process logger. The console format is meant for local development;
// every other value yields JSON output.
func NewLogger(cfg config.LogConfig, environment string) (*zap.Logger, error) {
	var zc zap.Config

	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.InitialFields = map[string]any{
		"service":     serviceName,
		"environment": environment,
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}
