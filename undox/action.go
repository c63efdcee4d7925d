package undox

import (
	"time"

	"github.com/spf13/cast"

	"github.com/stashkit/x/errorx"
)

// ActionType qualifies what a bulk mutation changed, so the UI can label the
// undo entry. Values are wire strings and are matched exactly.
type ActionType string

const (
	ActionTypeStatus      ActionType = "status"
	ActionTypeLocation    ActionType = "location"
	ActionTypeTags        ActionType = "tags"
	ActionTypeCustomField ActionType = "customField"
	ActionTypeDelete      ActionType = "delete"
)

var actionTypeNames = []string{
	string(ActionTypeStatus),
	string(ActionTypeLocation),
	string(ActionTypeTags),
	string(ActionTypeCustomField),
	string(ActionTypeDelete),
}

func (t ActionType) String() string {
	return string(t)
}

func (t ActionType) Validate() error {
	switch t {
	case ActionTypeStatus, ActionTypeLocation, ActionTypeTags, ActionTypeCustomField, ActionTypeDelete:
		return nil
	default:
		return errorx.NewEnumOutOfRangeError(string(t), actionTypeNames, "action type")
	}
}

func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}

	return t, nil
}

// AffectedItem is the snapshot of a single entity taken by the caller right
// before a bulk mutation. PreviousValue holds the fields the mutation is about
// to overwrite, keyed by field name.
type AffectedItem struct {
	EntityID      string         `json:"entityId"`
	PreviousValue map[string]any `json:"previousValue"`
}

// String returns the captured previous value of the given field coerced to a
// string. Missing fields coerce to the zero value.
func (a AffectedItem) String(field string) string {
	return cast.ToString(a.PreviousValue[field])
}

// Strings returns the captured previous value of the given field coerced to a
// string slice.
func (a AffectedItem) Strings(field string) []string {
	return cast.ToStringSlice(a.PreviousValue[field])
}

// Int returns the captured previous value of the given field coerced to an
// int.
func (a AffectedItem) Int(field string) int {
	return cast.ToInt(a.PreviousValue[field])
}

// Bool returns the captured previous value of the given field coerced to a
// bool.
func (a AffectedItem) Bool(field string) bool {
	return cast.ToBool(a.PreviousValue[field])
}

// Time returns the captured previous value of the given field coerced to a
// time.Time.
func (a AffectedItem) Time(field string) time.Time {
	return cast.ToTime(a.PreviousValue[field])
}

// Action is a registered undo entry. It is immutable once stored: the ledger
// hands out copies, never its own backing data.
type Action struct {
	ID            string         `json:"id"`
	Type          ActionType     `json:"type"`
	Description   string         `json:"description"`
	AffectedItems []AffectedItem `json:"affectedItems"`
	Timestamp     time.Time      `json:"timestamp"`
}

// ActionInput is what callers hand to Ledger.Register. The ledger stamps the
// id and timestamp itself.
type ActionInput struct {
	Type          ActionType     `json:"type"`
	Description   string         `json:"description"`
	AffectedItems []AffectedItem `json:"affectedItems"`
}
