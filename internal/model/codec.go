package model

import (
	"encoding/json"
	"fmt"

	"terralot/internal/store"
)

// Decode converts a store entity into a typed model value.
func Decode[T any](e store.Entity) (T, error) {
	var out T
	raw, err := json.Marshal(e)
	if err != nil {
		return out, fmt.Errorf("encode entity: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode entity: %w", err)
	}
	return out, nil
}

// DecodeAll converts a snapshot of store entities. Decoding stops at
// the first malformed entity; the store's write-time validation makes
// that unreachable in practice.
func DecodeAll[T any](items []store.Entity) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, e := range items {
		v, err := Decode[T](e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ToEntity converts a typed model value into the field map the store
// accepts. Zero-valued optional fields are dropped by their omitempty
// tags, which keeps upsert payloads partial.
func ToEntity(v any) (store.Entity, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	var e store.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return e, nil
}
