package builder

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Sentinel errors wrapped by CompositionError and the fetch helpers.
var (
	ErrMissingSelect = errors.New("query has no SELECT list")
	ErrMissingFrom   = errors.New("query has no FROM object")
	ErrNegative      = errors.New("value must not be negative")
	ErrEmptyFragment = errors.New("fragment is empty")
	ErrBadCondition  = errors.New("unsupported condition")
	ErrNoClient      = errors.New("no client configured")
	ErrNoRows        = errors.New("query returned no records")
	ErrMissingField  = errors.New("field not selected")
)

// CompositionError reports a structurally invalid composition: a fragment
// that does not parse as the clause it was given for, or a query that
// lacks a required clause.
type CompositionError struct {
	Clause   string
	Fragment string
	Err      error
}

func (e *CompositionError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("compose %s: %v", e.Clause, e.Err)
	}
	return fmt.Sprintf("compose %s %q: %v", e.Clause, e.Fragment, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// UnresolvedParameterError reports a placeholder without a binding. Pos is
// relative to Input, the text fragment the placeholder was parsed from.
// Input is empty for placeholders added through an ExprBuilder or a
// prebuilt group.
type UnresolvedParameterError struct {
	Name       string
	Index      int
	Positional bool
	Pos        token.Position
	Input      string
}

func (e *UnresolvedParameterError) Error() string {
	if e.Positional {
		return fmt.Sprintf("unresolved positional parameter %d at %s", e.Index+1, e.Pos)
	}
	return fmt.Sprintf("unresolved parameter :%s at %s", e.Name, e.Pos)
}
