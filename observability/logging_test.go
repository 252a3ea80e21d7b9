package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phanxgames/bridges"
	"github.com/phanxgames/bridges/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	}
}

func TestEventLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := NewEventLogger(zap.New(core))

	el.EmitEvent(bridges.Event{Type: bridges.EventBridgeCrossed, BridgeID: "bridge-1", Crossed: 1, Total: 7})
	el.EmitEvent(bridges.Event{Type: bridges.EventViolation, Err: bridges.ErrWaterContact})
	el.EmitEvent(bridges.Event{Type: bridges.EventComplete, Crossed: 7, Total: 7})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "events", entries[0].LoggerName)
	assert.Equal(t, "bridge-1", entries[0].ContextMap()["bridge"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap()["error"], "water")
	_, hasBridge := entries[1].ContextMap()["bridge"]
	assert.False(t, hasBridge)

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, int64(7), entries[2].ContextMap()["total"])
}
