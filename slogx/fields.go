package slogx

import (
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// NewLogFields converts a list of attribute.KeyValue to a list of slog fields
func NewLogFields(fields ...attribute.KeyValue) []slog.Attr {
	logFields := make([]slog.Attr, len(fields))
	for i, field := range fields {
		logFields[i] = slog.Any(string(field.Key), field.Value.AsInterface())
	}

	return logFields
}

func ErrorAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
