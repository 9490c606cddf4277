package core

import (
	"errors"
	"fmt"
)

// Kind classifies a query failure.
type Kind int

const (
	// KindSQL means the engine rejected or failed a statement.
	KindSQL Kind = iota
	// KindAssertion means the rows-changed count did not match the
	// caller's expectation.
	KindAssertion
	// KindNoRows means a strict single-row query matched nothing.
	KindNoRows
	// KindUsage means the caller misused a query form, e.g. expected a
	// cursor from a non-row-returning statement or supplied fewer
	// parameters than placeholders.
	KindUsage
)

// Sentinel values for matching classified failures with errors.Is.
var (
	ErrSQL       = errors.New("engine rejected statement")
	ErrAssertion = errors.New("rows-changed mismatch")
	ErrNoRows    = errors.New("no rows matched")
	ErrUsage     = errors.New("invalid use of query form")
)

// QueryError is a classified query failure. It carries the substituted
// query that was (or would have been) submitted to the engine and,
// where applicable, the engine's diagnostic message. It is raised at
// the point of detection and never stored or retried.
type QueryError struct {
	Kind   Kind
	Query  string
	Detail string

	// Expected and Actual carry the rows-changed counts for
	// KindAssertion failures.
	Expected int64
	Actual   int64
}

func (e *QueryError) Error() string {
	switch e.Kind {
	case KindAssertion:
		return fmt.Sprintf("rows-changed assertion failed: got %d, expected %d [query: %s]", e.Actual, e.Expected, e.Query)
	case KindNoRows:
		return fmt.Sprintf("no rows matched [query: %s]", e.Query)
	case KindUsage:
		return fmt.Sprintf("%s [query: %s]", e.Detail, e.Query)
	default:
		return fmt.Sprintf("sql error: %s [query: %s]", e.Detail, e.Query)
	}
}

// Unwrap maps the error onto its kind sentinel so callers can write
// errors.Is(err, core.ErrNoRows) without unpacking the struct.
func (e *QueryError) Unwrap() error {
	switch e.Kind {
	case KindAssertion:
		return ErrAssertion
	case KindNoRows:
		return ErrNoRows
	case KindUsage:
		return ErrUsage
	default:
		return ErrSQL
	}
}
