// Package cqldbc is a statement-oriented client layer for a distributed
// column-oriented store speaking a native query protocol. It exposes
// reusable statements with explicit result-set options over a caller-supplied
// session and a
// database/sql driver on top of those, translating backend protocol failures
// into a taxonomy with differentiated recoverability.
package cqldbc

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
)

func init() {
	sql.Register("cqldbc", &Driver{})
}

// Driver implements the database/sql/driver.Driver interface. The backend
// needs a dialed session rather than a DSN, so connections are made through
// a Connector and sql.OpenDB; Open by name always fails.
type Driver struct{}

// Open always fails with an unsupported-feature error; use sql.OpenDB with
// NewConnector instead.
func (d *Driver) Open(name string) (driver.Conn, error) {
	return nil, &Error{Kind: ErrUnsupported, Message: errNoDSN}
}

// sqlConn adapts Conn to database/sql/driver.
type sqlConn struct {
	conn *Conn
}

// Prepare creates a statement bound to query with the default result set
// options. There is no server-side prepare at this layer; the query is held
// client-side until execution.
func (c *sqlConn) Prepare(query string) (driver.Stmt, error) {
	stmt, err := c.conn.NewStatementForQuery(query)
	if err != nil {
		return nil, err
	}
	return &sqlStmt{stmt: stmt}, nil
}

// Close closes the connection and its open statements.
func (c *sqlConn) Close() error {
	return c.conn.Close()
}

// Begin always fails: the backend has no transactions.
func (c *sqlConn) Begin() (driver.Tx, error) {
	return nil, &Error{Kind: ErrUnsupported, Message: errNoTx}
}

// ExecContext executes a count-producing or void query directly on the
// connection. Parameter binding is not supported at this layer.
func (c *sqlConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	stmt, err := c.conn.NewStatementForQuery(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	count, err := stmt.ExecuteUpdate(ctx, query)
	if err != nil {
		return nil, mapBadConn(err)
	}
	return &Result{rowsAffected: int64(count)}, nil
}

// QueryContext executes a row-producing query directly on the connection.
func (c *sqlConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	stmt, err := c.conn.NewStatementForQuery(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.ExecuteQuery(ctx, query)
	if err != nil {
		stmt.Close()
		return nil, mapBadConn(err)
	}
	// The row payload is materialized, so the cursor outlives its statement.
	stmt.Close()
	return rows, nil
}

// IsValid reports whether the connection can be reused by the pool.
func (c *sqlConn) IsValid() bool {
	return c.conn.IsValid()
}

// ResetSession is called before the pool reuses the connection.
func (c *sqlConn) ResetSession(ctx context.Context) error {
	if !c.conn.IsValid() {
		return driver.ErrBadConn
	}
	return nil
}

// sqlStmt adapts Statement to database/sql/driver. The query is fixed at
// Prepare time.
type sqlStmt struct {
	stmt *Statement
}

// Close closes the underlying statement. The pool may close twice; a second
// close is absorbed here rather than surfaced as caller misuse.
func (s *sqlStmt) Close() error {
	if s.stmt.IsClosed() {
		return nil
	}
	return s.stmt.Close()
}

// NumInput returns 0: parameter binding is not supported at this layer, and
// database/sql rejects arguments before they reach us.
func (s *sqlStmt) NumInput() int {
	return 0
}

// Exec executes the prepared query expecting an update count (deprecated,
// use ExecContext).
func (s *sqlStmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), nil)
}

// ExecContext executes the prepared query expecting an update count.
func (s *sqlStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	count, err := s.stmt.ExecuteUpdate(ctx, s.stmt.Query())
	if err != nil {
		return nil, mapBadConn(err)
	}
	return &Result{rowsAffected: int64(count)}, nil
}

// Query executes the prepared query expecting rows (deprecated, use
// QueryContext).
func (s *sqlStmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), nil)
}

// QueryContext executes the prepared query expecting rows.
func (s *sqlStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	rows, err := s.stmt.ExecuteQuery(ctx, s.stmt.Query())
	if err != nil {
		return nil, mapBadConn(err)
	}
	return rows, nil
}

// mapBadConn rewrites closed-statement and closed-connection failures to
// driver.ErrBadConn so the pool retires the connection and retries on a
// fresh one. Everything else passes through with its taxonomy intact.
func mapBadConn(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == ErrStatementClosed {
		return driver.ErrBadConn
	}
	return err
}

// Ensure the adapters implement the required interfaces
var (
	_ driver.Driver           = (*Driver)(nil)
	_ driver.Conn             = (*sqlConn)(nil)
	_ driver.ExecerContext    = (*sqlConn)(nil)
	_ driver.QueryerContext   = (*sqlConn)(nil)
	_ driver.Validator        = (*sqlConn)(nil)
	_ driver.SessionResetter  = (*sqlConn)(nil)
	_ driver.Stmt             = (*sqlStmt)(nil)
	_ driver.StmtExecContext  = (*sqlStmt)(nil)
	_ driver.StmtQueryContext = (*sqlStmt)(nil)
)
