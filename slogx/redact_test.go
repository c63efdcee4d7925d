package slogx

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactFields(t *testing.T) {
	ConfigureSensitiveFields("serialNumber")

	attr := RedactFields(map[string]any{
		"name":         "Widget",
		"quantity":     3,
		"SerialNumber": "SN-123",
	})

	fields, ok := attr.Value.Any().(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "Widget", fields["name"])
	assert.Equal(t, 3, fields["quantity"])
	assert.Equal(t, "**[REDACTED]**", fields["SerialNumber"])
}

func TestOperationIDExtractor(t *testing.T) {
	extract := NewOperationIDExtractor()

	t.Run("no id in context", func(t *testing.T) {
		assert.Nil(t, extract(context.Background(), time.Now(), slog.LevelInfo, "msg"))
	})

	t.Run("id in context", func(t *testing.T) {
		ctx := ContextWithOperationID(context.Background(), "2E9zz8h1")

		id, ok := OperationIDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "2E9zz8h1", id)

		attrs := extract(ctx, time.Now(), slog.LevelInfo, "msg")
		require.Len(t, attrs, 1)
		assert.Equal(t, OperationIDLogKey, attrs[0].Key)
		assert.Equal(t, "2E9zz8h1", attrs[0].Value.String())
	})
}
