package logger_test

import (
	"moviecatalog/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		debugLevel bool
	}{
		{name: "local uses development config", env: "local", debugLevel: true},
		{name: "empty env falls back to local", env: "", debugLevel: true},
		{name: "production logs info and above", env: "production", debugLevel: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.New(tt.env)

			require.NoError(t, err)
			assert.Equal(t, tt.debugLevel, log.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNOOPLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.NOOPLogger.Infow("ignored", "movie_id", 1)
	})
	assert.False(t, logger.NOOPLogger.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
