package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

type LogConfig struct {
	Service   string
	Component string
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
	}
}

// LogOperation records the outcome of one session action. Client mistakes
// are logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID string, stageIndex int, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsForbidden(err):
			level = slog.LevelWarn
			status = "forbidden"
		case IsNotFound(err):
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("session_id", sessionID),
		slog.Int("stage_index", stageIndex),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		if ve, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// LogGeneration records a completed send, including the gateway outcome.
func (l *ServiceLogger) LogGeneration(ctx context.Context, sessionID string, stageIndex int, outcome SendOutcome, duration time.Duration) {
	attrs := []slog.Attr{
		slog.String("session_id", sessionID),
		slog.Int("stage_index", stageIndex),
		slog.String("result_kind", outcome.ResultKind()),
		slog.Duration("duration", duration),
	}

	level := slog.LevelInfo
	if !outcome.Synthetic && !outcome.Result.IsOK() {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("detail", outcome.Result.Detail))
	}

	l.logger.LogAttrs(ctx, level, "Response generated", attrs...)
}

func (l *ServiceLogger) LogEventFailure(ctx context.Context, eventType, sessionID string, err error) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to publish progression event",
		slog.String("event_type", eventType),
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}
