package store

import "fmt"

// OpenError is fatal at startup: the persisted database cannot be used
// with the requested schema. There is no migration path, so callers
// should surface it and stop.
type OpenError struct {
	Path   string
	Reason string
	Err    error
}

func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("open store %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("open store %s: %s", e.Path, e.Reason)
}

func (e *OpenError) Unwrap() error { return e.Err }

// DuplicateKeyError is returned by insert-mode creates when a row with
// the same primary key already exists.
type DuplicateKeyError struct {
	Type string
	ID   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s %q already exists", e.Type, e.ID)
}

// TransactionError marks a misuse of the write boundary, such as
// nesting one write inside another. It is a programmer error.
type TransactionError struct {
	Reason string
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error: %s", e.Reason)
}
