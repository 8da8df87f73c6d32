package base

import (
	"bytes"
	"encoding/json"
)

// Opt represents one field of a partial-update payload. It distinguishes
// the three states partial updates need:
//
//   - unset: the field was absent from the payload, leave the column alone
//   - null:  the field was explicitly set to null, write SQL NULL
//   - value: write the given value
//
// The zero Opt is unset.
type Opt[T any] struct {
	set   bool
	null  bool
	value T
}

// Set returns an Opt carrying a concrete value.
func Set[T any](v T) Opt[T] { return Opt[T]{set: true, value: v} }

// SetNull returns an Opt that writes SQL NULL.
func SetNull[T any]() Opt[T] { return Opt[T]{set: true, null: true} }

// IsSet reports whether the field participates in the update at all.
func (o Opt[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly set to null.
func (o Opt[T]) IsNull() bool { return o.set && o.null }

// Value returns the carried value; ok is false when the field is unset or null.
func (o Opt[T]) Value() (v T, ok bool) {
	if !o.set || o.null {
		return v, false
	}
	return o.value, true
}

// UnmarshalJSON maps a present key onto Set/SetNull. It is only invoked for
// keys that appear in the document, so the zero Opt keeps meaning "unset".
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = SetNull[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Set(v)
	return nil
}

// Apply records the field into a Values payload under col, if set.
func (o Opt[T]) Apply(v Values, col string) {
	if !o.set {
		return
	}
	if o.null {
		v[col] = nil
		return
	}
	v[col] = o.value
}
