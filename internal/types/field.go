// Package types defines the core data model for onboarding and profile analysis.
package types

import (
	"bytes"
	"encoding/json"
)

// skippedSentinel is the wire encoding clients send when the user explicitly
// declined to answer a question. It only exists at the JSON boundary; inside
// the process the state lives in the Field tag, never in the value.
const skippedSentinel = `"skipped"`

// FieldState is the three-valued lifecycle of an onboarding field.
type FieldState int

const (
	// FieldUnset means no data has been collected yet.
	FieldUnset FieldState = iota
	// FieldSkipped means the user explicitly declined to answer.
	FieldSkipped
	// FieldFilled means a value was collected.
	FieldFilled
)

// Field is a tagged three-state onboarding value: unset, skipped, or filled.
// The zero value is unset. Distinguishing skipped from unset matters: skipped
// fields are excluded from scoring input but do not block completeness.
type Field[T any] struct {
	state FieldState
	value T
}

// Filled returns a field holding v.
func Filled[T any](v T) Field[T] {
	return Field[T]{state: FieldFilled, value: v}
}

// Skipped returns a field the user declined to answer.
func Skipped[T any]() Field[T] {
	return Field[T]{state: FieldSkipped}
}

// State returns the field's lifecycle state.
func (f Field[T]) State() FieldState { return f.state }

// IsFilled reports whether the field holds a value.
func (f Field[T]) IsFilled() bool { return f.state == FieldFilled }

// IsSkipped reports whether the user declined to answer.
func (f Field[T]) IsSkipped() bool { return f.state == FieldSkipped }

// IsUnset reports whether no data has been collected.
func (f Field[T]) IsUnset() bool { return f.state == FieldUnset }

// IsAnswered reports whether the question no longer needs asking, either
// because a value was collected or because the user skipped it.
func (f Field[T]) IsAnswered() bool { return f.state != FieldUnset }

// Value returns the held value and whether the field is filled.
func (f Field[T]) Value() (T, bool) {
	if f.state != FieldFilled {
		var zero T
		return zero, false
	}
	return f.value, true
}

// OrZero returns the held value, or the zero value of T when not filled.
func (f Field[T]) OrZero() T {
	if f.state != FieldFilled {
		var zero T
		return zero
	}
	return f.value
}

// MarshalJSON encodes filled fields as their value, skipped fields as the
// "skipped" sentinel, and unset fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	switch f.state {
	case FieldFilled:
		return json.Marshal(f.value)
	case FieldSkipped:
		return []byte(skippedSentinel), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null (or an absent key) as unset, the "skipped"
// sentinel as skipped, and anything else as a filled value of T.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	if bytes.Equal(trimmed, []byte(skippedSentinel)) {
		*f = Field[T]{state: FieldSkipped}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Field[T]{state: FieldFilled, value: v}
	return nil
}
