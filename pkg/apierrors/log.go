package apierrors

import (
	"context"
	"log/slog"
)

// Log writes err as a structured record. 5xx and network failures log at
// error level, cancellations at info, everything else at warn.
func Log(ctx context.Context, logger *slog.Logger, err error, msg string, args ...any) {
	if err == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := Parse(err)

	attrs := []any{
		slog.String("code", string(e.code)),
		slog.Int("status", e.status),
		slog.String("error", e.message),
		slog.String("timestamp", e.TimestampISO()),
	}
	if e.details != nil {
		attrs = append(attrs, slog.Any("details", e.details))
	}
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	logger.Log(ctx, levelFor(e.status), msg, append(attrs, args...)...)
}

func levelFor(status int) slog.Level {
	switch {
	case status == StatusCancelled:
		return slog.LevelInfo
	case status == StatusNetwork || status >= 500:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
