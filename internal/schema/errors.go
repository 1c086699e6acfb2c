package schema

import "fmt"

// ViolationError is returned when a candidate record does not satisfy
// the declared shape or invariants of its entity type. The store rejects
// the write and surfaces the error to the initiating form.
type ViolationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ViolationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation: %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("schema violation: %s.%s: %s", e.Entity, e.Field, e.Reason)
}
