// Package facade is a thin convenience layer over an embedded
// relational engine: positional parameter substitution, classified
// error reporting, and several result-shaping query forms (single
// value, single row, full result set, row-by-row callback).
//
// Every call is synchronous and atomic from the caller's perspective:
// substitute, execute, classify, shape, return. Cursors are scoped to
// the call and released on every exit path. The façade adds no
// caching, retries, or transaction handling beyond what the engine
// provides.
package facade

import (
	"context"
	"errors"
	"log"

	"github.com/asaidimu/liteq/pkg/core"
)

// Stop is the sentinel a QueryCallback function returns to halt
// iteration early. The remaining rows are not drained and the cursor
// is still released; QueryCallback itself returns nil.
var Stop = errors.New("stop row iteration")

// RowFunc is invoked once per row by QueryCallback, in engine
// iteration order. Returning Stop halts iteration without error; any
// other non-nil error aborts iteration and is returned to the caller
// unchanged.
type RowFunc func(row core.Row) error

// Facade mediates between callers and a core.Engine. It owns no state
// beyond its collaborators and is as concurrency-safe as the engine
// beneath it, which is to say not at all: one Facade per connection,
// one logical caller per Facade.
type Facade struct {
	engine core.Engine
	faults core.FaultHandler
	trace  *log.Logger
}

// New creates a Facade over the given engine. A nil handler selects
// the fail-fast default policy.
func New(engine core.Engine, faults core.FaultHandler) *Facade {
	if faults == nil {
		faults = core.FailFast
	}
	return &Facade{
		engine: engine,
		faults: faults,
	}
}

// SetTrace installs a logger that records each substituted statement
// before execution. Pass nil to disable tracing.
func (f *Facade) SetTrace(logger *log.Logger) {
	f.trace = logger
}

// submit substitutes and executes one statement. It returns the live
// cursor (nil for a void outcome), the substituted statement, and the
// classified failure if any. Raising is left to the caller so that
// every failure funnels through the fault handler exactly once.
func (f *Facade) submit(ctx context.Context, query string, params core.Params) (core.ResultHandle, string, *core.QueryError) {
	stmt, qerr := f.substitute(query, params)
	if qerr != nil {
		return nil, query, qerr
	}

	if f.trace != nil {
		f.trace.Printf("executing: %s", stmt)
	}

	handle, err := f.engine.Execute(ctx, stmt)
	if err != nil {
		return nil, stmt, f.sqlError(stmt, err)
	}
	return handle, stmt, nil
}

// sqlError builds a KindSQL failure from an engine error, preferring
// the engine's own diagnostic when it has one.
func (f *Facade) sqlError(stmt string, err error) *core.QueryError {
	detail := f.engine.LastError()
	if detail == "" {
		detail = err.Error()
	}
	return &core.QueryError{Kind: core.KindSQL, Query: stmt, Detail: detail}
}

// Exec runs a statement that is expected to produce no result set. A
// surprise cursor is released and the call still succeeds.
func (f *Facade) Exec(ctx context.Context, query string, params core.Params) error {
	handle, _, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return f.faults.Raise(qerr)
	}
	if handle != nil {
		handle.Close()
	}
	return nil
}

// ExecExpect runs a statement as Exec does, then compares the engine's
// rows-changed counter against expected. A mismatch raises a
// KindAssertion failure naming both counts. Callers use it to catch
// no-op updates, e.g. an UPDATE whose WHERE clause matched nothing
// when exactly one row was expected.
func (f *Facade) ExecExpect(ctx context.Context, query string, params core.Params, expected int64) error {
	handle, stmt, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return f.faults.Raise(qerr)
	}
	if handle != nil {
		handle.Close()
	}

	actual, err := f.engine.RowsChanged(ctx)
	if err != nil {
		return f.faults.Raise(f.sqlError(stmt, err))
	}
	if actual != expected {
		return f.faults.Raise(&core.QueryError{
			Kind:     core.KindAssertion,
			Query:    stmt,
			Expected: expected,
			Actual:   actual,
		})
	}
	return nil
}

// QuerySingle returns the first column of the first row, or nil when
// the query matched nothing. No rows is a normal empty result here,
// not an error.
func (f *Facade) QuerySingle(ctx context.Context, query string, params core.Params) (any, error) {
	row, cols, err := f.firstRow(ctx, query, params)
	if err != nil || row == nil {
		return nil, err
	}
	return row[cols[0]], nil
}

// QuerySingleStrict is QuerySingle for callers whose contract
// guarantees exactly one match: no rows raises a KindNoRows failure
// instead of yielding nil.
func (f *Facade) QuerySingleStrict(ctx context.Context, query string, params core.Params) (any, error) {
	handle, stmt, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return nil, f.faults.Raise(qerr)
	}
	if handle == nil {
		return nil, f.faults.Raise(&core.QueryError{Kind: core.KindNoRows, Query: stmt})
	}
	defer handle.Close()

	if !handle.Next() {
		if err := handle.Err(); err != nil {
			return nil, f.faults.Raise(f.sqlError(stmt, err))
		}
		return nil, f.faults.Raise(&core.QueryError{Kind: core.KindNoRows, Query: stmt})
	}
	return handle.Row()[handle.Columns()[0]], nil
}

// QuerySingleRow returns the full first row, or an empty (non-nil)
// Row when the query matched nothing. Deliberately asymmetric with
// QuerySingleStrict: the empty row is a normal result.
func (f *Facade) QuerySingleRow(ctx context.Context, query string, params core.Params) (core.Row, error) {
	row, _, err := f.firstRow(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return core.Row{}, nil
	}
	return row, nil
}

// firstRow fetches the first row of a query, releasing the cursor
// before returning. A nil row with a nil error means no rows matched.
func (f *Facade) firstRow(ctx context.Context, query string, params core.Params) (core.Row, []string, error) {
	handle, stmt, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return nil, nil, f.faults.Raise(qerr)
	}
	if handle == nil {
		// Void outcome: treated as the empty result. Only FetchAll and
		// QueryCallback insist on a cursor.
		return nil, nil, nil
	}
	defer handle.Close()

	if !handle.Next() {
		if err := handle.Err(); err != nil {
			return nil, nil, f.faults.Raise(f.sqlError(stmt, err))
		}
		return nil, nil, nil
	}
	return handle.Row(), handle.Columns(), nil
}

// FetchAll drains the query's cursor into a fully materialized result
// set, in engine iteration order. A statement that produces no cursor
// (e.g. a non-SELECT) raises a KindUsage failure. The cursor is
// released unconditionally.
func (f *Facade) FetchAll(ctx context.Context, query string, params core.Params) ([]core.Row, error) {
	handle, stmt, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return nil, f.faults.Raise(qerr)
	}
	if handle == nil {
		return nil, f.faults.Raise(&core.QueryError{
			Kind:   core.KindUsage,
			Query:  stmt,
			Detail: "statement produced no result set",
		})
	}
	defer handle.Close()

	var rows []core.Row
	for handle.Next() {
		rows = append(rows, handle.Row())
	}
	if err := handle.Err(); err != nil {
		return nil, f.faults.Raise(f.sqlError(stmt, err))
	}
	return rows, nil
}

// QueryCallback streams rows to fn in engine iteration order instead
// of materializing them. fn returning Stop halts iteration early; the
// remaining rows are not drained. The cursor is released exactly once
// on every exit path, including early stop and callback failure.
func (f *Facade) QueryCallback(ctx context.Context, query string, params core.Params, fn RowFunc) error {
	handle, stmt, qerr := f.submit(ctx, query, params)
	if qerr != nil {
		return f.faults.Raise(qerr)
	}
	if handle == nil {
		return f.faults.Raise(&core.QueryError{
			Kind:   core.KindUsage,
			Query:  stmt,
			Detail: "statement produced no result set",
		})
	}
	defer handle.Close()

	for handle.Next() {
		if err := fn(handle.Row()); err != nil {
			if errors.Is(err, Stop) {
				return nil
			}
			// A callback failure is the caller's own error, not a
			// classified one; it bypasses the fault handler.
			return err
		}
	}
	if err := handle.Err(); err != nil {
		return f.faults.Raise(f.sqlError(stmt, err))
	}
	return nil
}
