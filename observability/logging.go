// Package observability provides logging for the game and its tools.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/bridges"
	"github.com/phanxgames/bridges/config"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// EventLogger is a bridges.EventSink that writes every game event to a
// logger. Violations log at warn, completions at info, the rest at debug.
type EventLogger struct {
	log *zap.Logger
}

// NewEventLogger returns an EventLogger writing to logger.
//
// Precondition: logger must be non-nil.
func NewEventLogger(logger *zap.Logger) *EventLogger {
	return &EventLogger{log: logger.Named("events")}
}

// EmitEvent logs e.
func (l *EventLogger) EmitEvent(e bridges.Event) {
	fields := []zap.Field{
		zap.Stringer("type", e.Type),
		zap.Int("level", e.Level),
		zap.String("stroke", e.StrokeID),
		zap.Int("crossed", e.Crossed),
		zap.Int("total", e.Total),
	}
	if e.BridgeID != "" {
		fields = append(fields, zap.String("bridge", e.BridgeID))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}

	switch e.Type {
	case bridges.EventViolation:
		l.log.Warn("stroke violated", fields...)
	case bridges.EventComplete:
		l.log.Info("level complete", fields...)
	default:
		l.log.Debug("game event", fields...)
	}
}
