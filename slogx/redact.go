package slogx

import (
	"log/slog"
	"strings"
)

var (
	sensitiveFieldsMap = make(map[string]bool, 0)
	redactionText      = "**[REDACTED]**"
)

// ConfigureSensitiveFields sets the entity fields that should be redacted in the logs.
// Note that this will be applied globally to all loggers using slogx.
func ConfigureSensitiveFields(sensitiveFields ...string) {
	for _, field := range sensitiveFields {
		sensitiveFieldsMap[strings.ToLower(field)] = true
	}
}

// ConfigureRedactionText sets the text that will be used to redact sensitive fields in the logs.
// Default is "**[REDACTED]**"
// Note that this will be applied globally to all loggers using slogx.
func ConfigureRedactionText(text string) {
	redactionText = text
}

// ConfigureDefaultSensitiveFields configures a default set of sensitive fields to be redacted in the logs.
func ConfigureDefaultSensitiveFields() {
	ConfigureSensitiveFields("password", "secret", "token")
}

// RedactFields returns the captured field values of an entity as a log
// attribute, with sensitive fields redacted.
func RedactFields(values map[string]any) slog.Attr {
	fieldMap := make(map[string]any, len(values))
	for key, value := range values {
		if sensitiveFieldsMap[strings.ToLower(key)] {
			fieldMap[key] = redactionText
		} else {
			fieldMap[key] = value
		}
	}

	return slog.Any("fields", fieldMap)
}

// WithPreviousValues returns a logger carrying an entity's captured previous
// values, redacted, grouped under the "undo_restore" key.
func WithPreviousValues(sl *slog.Logger, entityID string, values map[string]any) *slog.Logger {
	attrs := []slog.Attr{
		slog.String("entity_id", entityID),
		RedactFields(values),
	}

	return sl.With(slog.GroupAttrs("undo_restore", attrs...))
}
