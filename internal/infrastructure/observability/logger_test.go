package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/observability"
)

func TestNewLogger(t *testing.T) {
	t.Run("json with level", func(t *testing.T) {
		logger, err := observability.NewLogger(config.LogConfig{Level: "warn", Format: "json"}, "test")

		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("console", func(t *testing.T) {
		logger, err := observability.NewLogger(config.LogConfig{Level: "debug", Format: "console"}, "test")

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := observability.NewLogger(config.LogConfig{Level: "loud", Format: "json"}, "test")

		assert.Error(t, err)
	})
}
