package reftable

import (
	"errors"
	"fmt"
	"strings"
)

// Construction failure kinds. Match them with errors.Is.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmptyResource    = errors.New("empty resource")
	ErrMalformedHeader  = errors.New("malformed header")
	ErrEmptyResultSet   = errors.New("no rows accepted")
	ErrLoadFailure      = errors.New("load failure")
)

// LoadError describes why a table could not be built.
type LoadError struct {
	Kind     error    // one of the Err* sentinels
	Resource string   // logical resource name
	Location string   // resolved location, empty for ErrResourceNotFound
	Tried    []string // candidates attempted, set for ErrResourceNotFound
	Columns  []string // raw header columns, set for ErrMalformedHeader
	Err      error    // underlying cause, set for ErrLoadFailure
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrResourceNotFound:
		return fmt.Sprintf("%s: %s (tried: %s); place %s in one of these locations",
			e.Kind, e.Resource, strings.Join(e.Tried, ", "), e.Resource)
	case ErrMalformedHeader:
		return fmt.Sprintf("%s in %s: need a name column and a code column, got %q",
			e.Kind, e.Location, e.Columns)
	case ErrEmptyResultSet:
		return fmt.Sprintf("%s from %s; check file format and location", e.Kind, e.Location)
	case ErrLoadFailure:
		return fmt.Sprintf("%s: read %s: %v", e.Kind, e.Location, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Location)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
