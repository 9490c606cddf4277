package core

import (
	"context"
)

// Engine defines the capability interface the façade requires from an
// embedded relational database. Implementations own the connection and
// all SQL parsing/execution; the façade never touches driver types
// directly.
//
// An Engine backs exactly one logical caller at a time. Concurrent
// calls against the same Engine are not guarded here; use one Engine
// per worker or serialize externally.
type Engine interface {
	// Execute runs one SQL statement. A (nil, nil) return means the
	// statement completed without producing a result set (INSERT,
	// UPDATE, DDL). A non-nil ResultHandle is a live cursor the caller
	// must Close. A non-nil error means the engine rejected or failed
	// the statement.
	Execute(ctx context.Context, statement string) (ResultHandle, error)

	// Escape renders a scalar as a safely quotable literal body. The
	// caller is responsible for wrapping the result in single quotes.
	Escape(value any) string

	// RowsChanged reports the number of rows affected by the most
	// recent data-changing statement on this connection.
	RowsChanged(ctx context.Context) (int64, error)

	// LastError returns the human-readable diagnostic for the most
	// recent failure, or the empty string after a success.
	LastError() string

	// Close releases the connection. Safe to call more than once.
	Close() error
}

// ResultHandle is an engine-owned cursor over the rows produced by a
// row-returning statement. It is scoped to a single façade call:
// acquired at query submission and released before the call returns.
type ResultHandle interface {
	// Columns returns the result's column names in SELECT order.
	Columns() []string

	// Next advances the cursor, returning false at end-of-data or on
	// error. Check Err after a false return.
	Next() bool

	// Row returns the row the last successful Next positioned on.
	Row() Row

	// Err reports any error encountered while iterating.
	Err() error

	// Close releases cursor resources. Idempotent.
	Close() error
}
