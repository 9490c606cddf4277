// Package sqlite adapts a SQLite database behind database/sql to the
// core.Engine capability interface. It works with either SQLite driver
// in common use (github.com/mattn/go-sqlite3 under the name "sqlite3",
// modernc.org/sqlite under "sqlite"); the importer registers whichever
// driver it links.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/asaidimu/liteq/pkg/core"
)

// Engine is a core.Engine over a single pinned SQLite connection.
// Pinning matters: changes() and error diagnostics are per-connection
// state, and the façade's contract is one exclusively-owned connection
// per logical caller.
type Engine struct {
	db      *sql.DB
	conn    *sql.Conn
	lastErr string
	closed  bool
}

// Open opens the database at dsn through the named driver and pins one
// connection for the lifetime of the Engine. Close releases it; a
// finalizer is registered as a best-effort safety net only, and callers
// must not rely on it for deterministic teardown.
func Open(driver, dsn string) (*Engine, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn, err := db.Conn(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to pin connection: %w", err)
	}

	e := &Engine{db: db, conn: conn}
	runtime.SetFinalizer(e, func(e *Engine) { _ = e.Close() })
	return e, nil
}

// Execute runs one statement on the pinned connection. Statements that
// produce no result columns (INSERT, UPDATE, DDL) complete as a void
// outcome: the internal cursor is closed and (nil, nil) is returned.
func (e *Engine) Execute(ctx context.Context, statement string) (core.ResultHandle, error) {
	rows, err := e.conn.QueryContext(ctx, statement)
	if err != nil {
		e.lastErr = err.Error()
		return nil, err
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		e.lastErr = err.Error()
		return nil, err
	}

	e.lastErr = ""
	if len(columns) == 0 {
		// SQLite runs a statement on the first step, not at prepare
		// time. Drive the empty result before closing so DDL/DML take
		// effect, and surface step-time failures (e.g. constraint
		// violations) that QueryContext cannot see.
		for rows.Next() {
		}
		stepErr := rows.Err()
		rows.Close()
		if stepErr != nil {
			e.lastErr = stepErr.Error()
			return nil, stepErr
		}
		return nil, nil
	}
	return &handle{rows: rows, columns: columns}, nil
}

// Escape renders a scalar as a literal body safe to wrap in single
// quotes, with sqlite3_mprintf("%q") semantics: every single quote in
// the rendered text is doubled.
func (e *Engine) Escape(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case []byte:
		s = string(v)
	case bool:
		// SQLite stores booleans as 0/1.
		if v {
			s = "1"
		} else {
			s = "0"
		}
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		s = v.Format("2006-01-02 15:04:05")
	default:
		s = fmt.Sprintf("%v", value)
	}
	return strings.ReplaceAll(s, "'", "''")
}

// RowsChanged reports the rows affected by the most recent
// data-changing statement, via SQLite's changes() function on the
// pinned connection.
func (e *Engine) RowsChanged(ctx context.Context) (int64, error) {
	var n int64
	if err := e.conn.QueryRowContext(ctx, "SELECT changes()").Scan(&n); err != nil {
		e.lastErr = err.Error()
		return 0, err
	}
	return n, nil
}

// LastError returns the diagnostic recorded for the most recent failed
// statement, or the empty string after a success.
func (e *Engine) LastError() string {
	return e.lastErr
}

// Close releases the pinned connection and the database. Idempotent;
// explicit Close is the contract, the finalizer only backstops it.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	runtime.SetFinalizer(e, nil)

	err := e.conn.Close()
	if dbErr := e.db.Close(); err == nil {
		err = dbErr
	}
	return err
}

// handle wraps sql.Rows as a core.ResultHandle, shaping each record
// into a column-keyed Row.
type handle struct {
	rows    *sql.Rows
	columns []string
	current core.Row
	err     error
}

func (h *handle) Columns() []string { return h.columns }

func (h *handle) Next() bool {
	if h.err != nil {
		return false
	}
	if !h.rows.Next() {
		h.err = h.rows.Err()
		return false
	}

	values := make([]any, len(h.columns))
	scanArgs := make([]any, len(h.columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	if err := h.rows.Scan(scanArgs...); err != nil {
		h.err = err
		return false
	}

	row := make(core.Row, len(h.columns))
	for i, col := range h.columns {
		// database/sql hands TEXT back as []byte by default.
		if b, ok := values[i].([]byte); ok {
			row[col] = string(b)
		} else {
			row[col] = values[i]
		}
	}
	h.current = row
	return true
}

func (h *handle) Row() core.Row { return h.current }

func (h *handle) Err() error { return h.err }

func (h *handle) Close() error { return h.rows.Close() }
