// Package schema declares entity shapes for the local object store and
// validates candidate records against them before commit.
package schema

import (
	"fmt"
	"time"
)

// Kind classifies how a field relates to other entities.
type Kind int

const (
	KindPrimitive Kind = iota
	KindEmbedded
	KindReference
	KindList
)

// Type is the primitive value type of a field.
type Type int

const (
	TypeString Type = iota
	TypeFloat
	TypeInt
	TypeBool
	TypeDate
	TypeObject
)

// Field describes a single entity field.
type Field struct {
	Name       string
	Kind       Kind
	Type       Type
	Optional   bool
	PrimaryKey bool

	// Ref names the target entity for embedded, reference and
	// list-of-embedded fields.
	Ref string

	// Enum restricts a string field to a fixed value set.
	Enum []string
}

// CheckFunc validates entity-level invariants that span fields.
// It runs after field-shape validation, on the fully merged record.
type CheckFunc func(data map[string]any) error

// EntityDef is the declared shape of one entity type.
type EntityDef struct {
	Name     string
	Embedded bool
	Fields   []Field
	Check    CheckFunc
}

// PrimaryKey returns the primary key field, if declared.
func (d *EntityDef) PrimaryKey() (Field, bool) {
	for _, f := range d.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNamed returns the field with the given name.
func (d *EntityDef) FieldNamed(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry holds every declared entity type. It is purely descriptive
// and has no side effects.
type Registry struct {
	defs  map[string]*EntityDef
	order []string
}

// NewRegistry builds a registry from entity definitions. It fails when a
// relationship field points at a type no definition declares, or when a
// non-embedded entity lacks a primary key.
func NewRegistry(defs ...EntityDef) (*Registry, error) {
	r := &Registry{defs: make(map[string]*EntityDef, len(defs))}
	for i := range defs {
		d := defs[i]
		if _, dup := r.defs[d.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate entity %q", d.Name)
		}
		r.defs[d.Name] = &d
		r.order = append(r.order, d.Name)
	}
	for _, name := range r.order {
		d := r.defs[name]
		if !d.Embedded {
			if _, ok := d.PrimaryKey(); !ok {
				return nil, fmt.Errorf("schema: entity %q has no primary key", name)
			}
		}
		for _, f := range d.Fields {
			if f.Ref == "" {
				continue
			}
			if _, ok := r.defs[f.Ref]; !ok {
				return nil, fmt.Errorf("schema: %s.%s references undeclared type %q",
					name, f.Name, f.Ref)
			}
		}
	}
	return r, nil
}

// Lookup returns the definition for an entity type.
func (r *Registry) Lookup(name string) (*EntityDef, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Types returns entity type names in declaration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// HasField reports whether an entity type declares the named field.
func (r *Registry) HasField(entity, field string) bool {
	d, ok := r.defs[entity]
	if !ok {
		return false
	}
	_, ok = d.FieldNamed(field)
	return ok
}

// Validate checks a complete record against the declared shape of an
// entity type and its entity-level invariants.
func (r *Registry) Validate(entity string, data map[string]any) error {
	d, ok := r.defs[entity]
	if !ok {
		return &ViolationError{Entity: entity, Reason: "undeclared entity type"}
	}
	return r.validateDef(d, data)
}

func (r *Registry) validateDef(d *EntityDef, data map[string]any) error {
	for _, f := range d.Fields {
		v, present := data[f.Name]
		if !present || v == nil {
			if f.PrimaryKey {
				return &ViolationError{Entity: d.Name, Field: f.Name, Reason: "primary key is missing"}
			}
			if !f.Optional {
				return &ViolationError{Entity: d.Name, Field: f.Name, Reason: "required field is missing"}
			}
			continue
		}
		if err := r.validateValue(d.Name, f, v); err != nil {
			return err
		}
	}
	if d.Check != nil {
		if err := d.Check(data); err != nil {
			if verr, ok := err.(*ViolationError); ok {
				return verr
			}
			return &ViolationError{Entity: d.Name, Reason: err.Error()}
		}
	}
	return nil
}

func (r *Registry) validateValue(entity string, f Field, v any) error {
	switch f.Kind {
	case KindPrimitive:
		if !matchesType(f.Type, v) {
			return &ViolationError{Entity: entity, Field: f.Name,
				Reason: fmt.Sprintf("value %v has wrong type", v)}
		}
		if len(f.Enum) > 0 {
			s, _ := v.(string)
			if !contains(f.Enum, s) {
				return &ViolationError{Entity: entity, Field: f.Name,
					Reason: fmt.Sprintf("%q is not one of the allowed values", s)}
			}
		}
	case KindReference:
		if _, ok := v.(string); !ok {
			return &ViolationError{Entity: entity, Field: f.Name,
				Reason: "reference must be an id string"}
		}
	case KindEmbedded:
		m, ok := v.(map[string]any)
		if !ok {
			return &ViolationError{Entity: entity, Field: f.Name,
				Reason: "embedded value must be an object"}
		}
		if f.Ref != "" {
			if err := r.validateDef(r.defs[f.Ref], m); err != nil {
				return err
			}
		}
	case KindList:
		items, err := asList(v)
		if err != nil {
			return &ViolationError{Entity: entity, Field: f.Name, Reason: err.Error()}
		}
		for _, item := range items {
			if f.Ref != "" {
				m, ok := item.(map[string]any)
				if !ok {
					return &ViolationError{Entity: entity, Field: f.Name,
						Reason: "list element must be an object"}
				}
				if err := r.validateDef(r.defs[f.Ref], m); err != nil {
					return err
				}
				continue
			}
			if !matchesType(f.Type, item) {
				return &ViolationError{Entity: entity, Field: f.Name,
					Reason: "list element has wrong type"}
			}
		}
	}
	return nil
}

// matchesType is deliberately lenient about numeric representations:
// records that round-trip through JSON arrive with float64 numbers and
// RFC 3339 date strings.
func matchesType(t Type, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeFloat, TypeInt:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeDate:
		switch d := v.(type) {
		case time.Time:
			return true
		case string:
			_, err := time.Parse(time.RFC3339, d)
			return err == nil
		}
		return false
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

func asList(v any) ([]any, error) {
	switch items := v.(type) {
	case []any:
		return items, nil
	case []map[string]any:
		out := make([]any, len(items))
		for i, m := range items {
			out[i] = m
		}
		return out, nil
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("value is not a list")
}

func contains(set []string, s string) bool {
	for _, item := range set {
		if item == s {
			return true
		}
	}
	return false
}
