package undox_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/undox"
)

type restoreCall struct {
	entityID string
	previous map[string]any
}

func TestUndo(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the recorded values exactly once", func(t *testing.T) {
		ledger := undox.NewLedger()
		id, err := ledger.Register(undox.ActionInput{
			Type:          undox.ActionTypeStatus,
			AffectedItems: []undox.AffectedItem{{EntityID: "x", PreviousValue: map[string]any{"status": "available"}}},
		})
		require.NoError(t, err)

		var calls []restoreCall
		result := undox.Undo(ctx, ledger, id, func(ctx context.Context, entityID string, previous map[string]any) error {
			calls = append(calls, restoreCall{entityID: entityID, previous: previous})
			return nil
		})

		assert.True(t, result.Success)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 0, result.FailureCount)
		assert.Empty(t, result.Failed)
		assert.NoError(t, result.Err)

		require.Len(t, calls, 1)
		assert.Equal(t, "x", calls[0].entityID)
		assert.Equal(t, map[string]any{"status": "available"}, calls[0].previous)

		_, ok := ledger.Get(id)
		assert.False(t, ok, "the action is gone after the undo attempt")
	})

	t.Run("replays entities sequentially in recorded order", func(t *testing.T) {
		ledger := undox.NewLedger()
		id, err := ledger.Register(undox.ActionInput{
			Type: undox.ActionTypeLocation,
			AffectedItems: []undox.AffectedItem{
				{EntityID: "a", PreviousValue: map[string]any{"location": "shelf-1"}},
				{EntityID: "b", PreviousValue: map[string]any{"location": "shelf-2"}},
				{EntityID: "c", PreviousValue: map[string]any{"location": "shelf-3"}},
			},
		})
		require.NoError(t, err)

		var order []string
		result := undox.Undo(ctx, ledger, id, func(ctx context.Context, entityID string, previous map[string]any) error {
			order = append(order, entityID)
			return nil
		})

		assert.True(t, result.Success)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("continues past failing entities and still evicts", func(t *testing.T) {
		ledger := undox.NewLedger()
		id, err := ledger.Register(undox.ActionInput{
			Type: undox.ActionTypeStatus,
			AffectedItems: []undox.AffectedItem{
				{EntityID: "a", PreviousValue: map[string]any{"status": "available"}},
				{EntityID: "b", PreviousValue: map[string]any{"status": "reserved"}},
				{EntityID: "c", PreviousValue: map[string]any{"status": "loaned"}},
			},
		})
		require.NoError(t, err)

		result := undox.Undo(ctx, ledger, id, func(ctx context.Context, entityID string, previous map[string]any) error {
			if entityID == "b" {
				return errors.New("storage offline")
			}
			return nil
		})

		assert.False(t, result.Success)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 1, result.FailureCount)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "b", result.Failed[0].EntityID)
		assert.Equal(t, "storage offline", result.Failed[0].Error)
		assert.NoError(t, result.Err)

		_, ok := ledger.Get(id)
		assert.False(t, ok, "partial failure still consumes the action")
	})

	t.Run("reports an unknown action without touching the ledger", func(t *testing.T) {
		ledger := undox.NewLedger()
		_, err := ledger.Register(undox.ActionInput{Type: undox.ActionTypeTags})
		require.NoError(t, err)

		result := undox.Undo(ctx, ledger, "unknown", func(ctx context.Context, entityID string, previous map[string]any) error {
			t.Fatal("the restore function must not be called")
			return nil
		})

		assert.False(t, result.Success)
		assert.Equal(t, 0, result.SuccessCount)
		assert.Equal(t, 0, result.FailureCount)
		assert.Empty(t, result.Failed)
		require.Error(t, result.Err)
		assert.True(t, errorx.IsNotFoundError(result.Err))
		assert.Equal(t, 1, ledger.Count())
	})

	t.Run("an action can be undone at most once", func(t *testing.T) {
		ledger := undox.NewLedger()
		id, err := ledger.Register(undox.ActionInput{
			Type:          undox.ActionTypeDelete,
			AffectedItems: []undox.AffectedItem{{EntityID: "x", PreviousValue: map[string]any{"deleted": false}}},
		})
		require.NoError(t, err)

		calls := 0
		fn := func(ctx context.Context, entityID string, previous map[string]any) error {
			calls++
			return nil
		}

		first := undox.Undo(ctx, ledger, id, fn)
		assert.True(t, first.Success)

		second := undox.Undo(ctx, ledger, id, fn)
		assert.False(t, second.Success)
		assert.True(t, errorx.IsNotFoundError(second.Err))
		assert.Equal(t, 1, calls)
	})

	t.Run("contains panics from the restore function", func(t *testing.T) {
		ledger := undox.NewLedger()
		id, err := ledger.Register(undox.ActionInput{
			Type: undox.ActionTypeCustomField,
			AffectedItems: []undox.AffectedItem{
				{EntityID: "a", PreviousValue: map[string]any{"warranty": "2025-01-01"}},
				{EntityID: "b", PreviousValue: map[string]any{"warranty": "2026-01-01"}},
			},
		})
		require.NoError(t, err)

		result := undox.Undo(ctx, ledger, id, func(ctx context.Context, entityID string, previous map[string]any) error {
			if entityID == "a" {
				panic("corrupted snapshot")
			}
			return nil
		})

		assert.False(t, result.Success)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.FailureCount)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "a", result.Failed[0].EntityID)
		assert.Contains(t, result.Failed[0].Error, "[INTERNAL]")
	})
}
