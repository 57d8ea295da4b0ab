package wscutils

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present in a request, and
// whether it was an explicit null, alongside its value.
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// NewOptional returns a present, non-null Optional holding v.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// UnmarshalJSON is only called for fields that appear in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value, o.Present, o.Null = zero, true, true
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value, o.Present, o.Null = v, true, false
	return nil
}

// MarshalJSON writes null for absent or null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero lets encoding/json's omitzero drop absent fields.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

// Set reports whether the field holds a usable value.
func (o Optional[T]) Set() bool {
	return o.Present && !o.Null
}
