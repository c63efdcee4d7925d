package slogx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

func Error(ctx context.Context, logger *slog.Logger, msg string, err error, fields ...attribute.KeyValue) {
	logFields := append(NewLogFields(fields...), ErrorAttr(err))
	logger.LogAttrs(ctx, slog.LevelError, msg, logFields...)
}

func Warn(ctx context.Context, logger *slog.Logger, msg string, fields ...attribute.KeyValue) {
	logger.LogAttrs(ctx, slog.LevelWarn, msg, NewLogFields(fields...)...)
}

func Info(ctx context.Context, logger *slog.Logger, msg string, fields ...attribute.KeyValue) {
	logger.LogAttrs(ctx, slog.LevelInfo, msg, NewLogFields(fields...)...)
}

func Debug(ctx context.Context, logger *slog.Logger, msg string, fields ...attribute.KeyValue) {
	logger.LogAttrs(ctx, slog.LevelDebug, msg, NewLogFields(fields...)...)
}
