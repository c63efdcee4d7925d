package undox

import (
	"maps"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/segmentio/ksuid"

	"github.com/stashkit/x/slicex"
)

// MaxStoredActions caps how many undo entries the ledger retains. Registering
// beyond the cap silently drops the oldest entry.
const MaxStoredActions = 10

// Ledger is a bounded, most-recent-first store of undoable bulk actions. It
// is an explicit instance: the application root owns one and passes it to
// whatever registers or replays undos. All methods are safe for concurrent
// use.
type Ledger struct {
	mu      sync.Mutex
	actions []Action

	clock func() time.Time
	newID func() string
}

type LedgerOption func(*Ledger)

// WithClock overrides the timestamp source of registered actions.
func WithClock(clock func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithIDGenerator overrides how action ids are generated.
func WithIDGenerator(newID func() string) LedgerOption {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		clock: time.Now,
		newID: func() string {
			return ksuid.New().String()
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Register stamps the input with an id and timestamp and prepends it to the
// ledger, truncating to the MaxStoredActions most recent entries. The input's
// affected items are copied, so later caller mutations do not reach the
// stored action.
func (l *Ledger) Register(in ActionInput) (string, error) {
	if err := in.Type.Validate(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	action := Action{
		ID:            l.newID(),
		Type:          in.Type,
		Description:   in.Description,
		AffectedItems: copyAffectedItems(in.AffectedItems),
		Timestamp:     l.clock(),
	}

	l.actions = slicex.PrependCapped(l.actions, action, MaxStoredActions)
	return action.ID, nil
}

// Get returns a copy of the action with the given id.
func (l *Ledger) Get(id string) (Action, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	action, ok := lo.Find(l.actions, func(a Action) bool {
		return a.ID == id
	})
	if !ok {
		return Action{}, false
	}

	return copyAction(action), true
}

// List returns a copy of the stored actions, most recent first.
func (l *Ledger) List() []Action {
	l.mu.Lock()
	defer l.mu.Unlock()

	return lo.Map(l.actions, func(a Action, _ int) Action {
		return copyAction(a)
	})
}

// Remove deletes the action with the given id and reports whether it was
// present.
func (l *Ledger) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, action := range l.actions {
		if action.ID == id {
			l.actions = append(l.actions[:i], l.actions[i+1:]...)
			return true
		}
	}

	return false
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.actions = nil
}

func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.actions)
}

func copyAction(a Action) Action {
	a.AffectedItems = copyAffectedItems(a.AffectedItems)
	return a
}

func copyAffectedItems(items []AffectedItem) []AffectedItem {
	return lo.Map(items, func(item AffectedItem, _ int) AffectedItem {
		return AffectedItem{
			EntityID:      item.EntityID,
			PreviousValue: maps.Clone(item.PreviousValue),
		}
	})
}
