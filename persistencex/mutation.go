package persistencex

import (
	"context"

	"github.com/stashkit/x/bulkx"
	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/undox"
)

type MutationAction string

const (
	MutationActionCreate = MutationAction("create")
	MutationActionUpdate = MutationAction("update")
	MutationActionDelete = MutationAction("delete")
)

// Mutation is one entity change handed to a store adapter.
type Mutation struct {
	// Action is the action to perform on the entity
	Action MutationAction `json:"action"`

	// EntityID is the id of the entity to perform the action on
	EntityID string `json:"entityId"`

	// Fields carries the field values the action writes
	Fields map[string]any `json:"fields,omitempty"`
}

var _ bulkx.Identified = Mutation{}

func (m Mutation) GetID() string {
	return m.EntityID
}

// Mutator applies a single mutation against the backing store.
type Mutator interface {
	Apply(ctx context.Context, mutation Mutation) error
}

// BulkMutator applies a whole slice of mutations in one backend call,
// returning one error slot per mutation.
type BulkMutator interface {
	ApplyBulk(ctx context.Context, mutations []Mutation) ([]error, error)
}

// OperationOf adapts a Mutator to the per-item bulk executor. The applied
// mutation is returned as the item's result.
func OperationOf(m Mutator) bulkx.Operation[Mutation, Mutation] {
	return func(ctx context.Context, mutation Mutation) (Mutation, error) {
		if err := m.Apply(ctx, mutation); err != nil {
			return Mutation{}, err
		}

		return mutation, nil
	}
}

// UpdateFuncOf adapts a Mutator to the undo executor: restoring an entity's
// previous values is an update mutation like any other.
func UpdateFuncOf(m Mutator) undox.UpdateFunc {
	return func(ctx context.Context, entityID string, previous map[string]any) error {
		return m.Apply(ctx, Mutation{
			Action:   MutationActionUpdate,
			EntityID: entityID,
			Fields:   previous,
		})
	}
}

// Bulk applies mutations through the bulk mutator and normalizes the per-slot
// errors, so callers always get exactly one slot per mutation no matter what
// the adapter returned.
func Bulk(ctx context.Context, m BulkMutator, mutations []Mutation) ([]error, error) {
	errs, err := m.ApplyBulk(ctx, mutations)
	return errorx.OutputErrsMatchInputLength(errs, len(mutations), err)
}

// BatchOperationOf adapts a BulkMutator to the batched executor. The batched
// executor attributes a single error to the whole batch, so the first failed
// slot wins.
func BatchOperationOf(m BulkMutator) bulkx.BatchOperation[Mutation] {
	return func(ctx context.Context, batch []Mutation) error {
		errs, err := Bulk(ctx, m, batch)
		if err != nil {
			return err
		}

		for _, e := range errs {
			if e != nil {
				return e
			}
		}

		return nil
	}
}
