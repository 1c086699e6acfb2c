// Package query provides pure filter, sort and composition operations
// over store collections. Nothing here mutates its input.
package query

import (
	"fmt"
	"time"

	"terralot/internal/schema"
	"terralot/internal/store"
)

// Op is a predicate comparison operator.
type Op int

const (
	// OpEq matches scalar equality, including foreign-key equality
	// such as lotId == X.
	OpEq Op = iota
	// OpIn matches membership in a value set.
	OpIn
)

// Cond compares one field against a value.
type Cond struct {
	Field string
	Op    Op
	Value any
}

// Predicate is a conjunction of field comparisons.
type Predicate []Cond

// Eq builds a single equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{{Field: field, Op: OpEq, Value: value}}
}

// And extends a predicate with another equality condition.
func (p Predicate) And(field string, value any) Predicate {
	return append(p, Cond{Field: field, Op: OpEq, Value: value})
}

// In extends a predicate with a membership condition.
func (p Predicate) In(field string, values ...any) Predicate {
	return append(p, Cond{Field: field, Op: OpIn, Value: values})
}

// InvalidPredicateError is returned when a predicate names a field the
// entity schema does not declare.
type InvalidPredicateError struct {
	Type  string
	Field string
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("invalid predicate: %s has no field %q", e.Type, e.Field)
}

// Filtered returns the entities matching every condition, preserving
// input order. The result is built in a single pass.
func Filtered(reg *schema.Registry, typeName string, items []store.Entity, p Predicate) ([]store.Entity, error) {
	for _, c := range p {
		if !reg.HasField(typeName, c.Field) {
			return nil, &InvalidPredicateError{Type: typeName, Field: c.Field}
		}
	}
	out := make([]store.Entity, 0, len(items))
	for _, e := range items {
		if matches(e, p) {
			out = append(out, e)
		}
	}
	return out, nil
}

// FilterCollection filters a live collection snapshot.
func FilterCollection(c *store.LiveCollection, reg *schema.Registry, p Predicate) ([]store.Entity, error) {
	return Filtered(reg, c.Type(), c.All(), p)
}

func matches(e store.Entity, p Predicate) bool {
	for _, c := range p {
		switch c.Op {
		case OpEq:
			if !valuesEqual(e[c.Field], c.Value) {
				return false
			}
		case OpIn:
			set, ok := c.Value.([]any)
			if !ok {
				return false
			}
			found := false
			for _, candidate := range set {
				if valuesEqual(e[c.Field], candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// valuesEqual compares loosely across the representations a record can
// carry: numbers widen to float64 and dates compare as instants whether
// stored as time.Time or RFC 3339 strings.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	if at, ok := asTime(a); ok {
		if bt, ok := asTime(b); ok {
			return at.Equal(bt)
		}
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
