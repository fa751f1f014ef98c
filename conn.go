package cqldbc

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Conn owns one backend session and the statements created on it. Statements
// hold a non-owning back-reference to their Conn and never extend its
// lifetime; the open-statement registry here is the only shared state this
// layer mutates, and its locking is the connection's responsibility.
type Conn struct {
	session     Session
	consistency Consistency
	logger      *zap.Logger

	mu     sync.Mutex
	stmts  map[*Statement]struct{}
	closed bool
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithConsistency sets the default consistency level inherited by every
// statement created on the connection. The default is LocalQuorum.
func WithConsistency(level Consistency) ConnOption {
	return func(c *Conn) {
		c.consistency = level
	}
}

// WithLogger sets the logger used for query tracing and teardown reporting.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) ConnOption {
	return func(c *Conn) {
		c.logger = logger
	}
}

// NewConn wraps an established session in a connection.
func NewConn(session Session, opts ...ConnOption) *Conn {
	c := &Conn{
		session:     session,
		consistency: LocalQuorum,
		logger:      zap.NewNop(),
		stmts:       make(map[*Statement]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewStatement creates a statement with the default result set options.
func (c *Conn) NewStatement() (*Statement, error) {
	return c.NewStatementWithOptions("", DefaultExecOptions)
}

// NewStatementForQuery creates a statement with the default result set
// options and a stored query for later execution.
func (c *Conn) NewStatementForQuery(query string) (*Statement, error) {
	return c.NewStatementWithOptions(query, DefaultExecOptions)
}

// NewStatementWithOptions creates a statement with an explicit result set
// option triple. The triple is validated per field; any violation is a
// syntax error naming the option. The query may be empty, in which case it
// must be supplied at execute time.
func (c *Conn) NewStatementWithOptions(query string, opts ExecOptions) (*Statement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, &Error{Kind: ErrConnNonTransient, Message: "connection is closed"}
	}
	s, err := newStatement(c, query, opts)
	if err != nil {
		return nil, err
	}
	c.stmts[s] = struct{}{}
	return s, nil
}

// DefaultConsistency returns the consistency level statements inherit at
// construction.
func (c *Conn) DefaultConsistency() Consistency {
	return c.consistency
}

// execute submits a query to the session on behalf of a statement.
func (c *Conn) execute(ctx context.Context, query string, consistency Consistency) (*Response, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, &Error{Kind: ErrConnNonTransient, Message: "connection is closed"}
	}
	session := c.session
	c.mu.Unlock()

	if ce := c.logger.Check(zap.DebugLevel, "executing query"); ce != nil {
		ce.Write(zap.String("query", query), zap.Stringer("consistency", consistency))
	}
	return session.Execute(ctx, query, consistency)
}

// removeStatement deregisters a statement on close.
func (c *Conn) removeStatement(s *Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stmts, s)
}

// Close closes every open statement and then the session. It is idempotent.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	stmts := make([]*Statement, 0, len(c.stmts))
	for s := range c.stmts {
		stmts = append(stmts, s)
	}
	c.stmts = make(map[*Statement]struct{})
	c.mu.Unlock()

	for _, s := range stmts {
		s.detach()
	}
	return c.session.Close()
}

// forceClose tears down the session after a transport failure so the caller
// is compelled to reconnect. Best-effort: a failure here is logged and
// discarded, never surfaced over the error that triggered it.
func (c *Conn) forceClose() {
	if err := c.Close(); err != nil {
		c.logger.Warn("session teardown after transport failure failed", zap.Error(err))
	}
}

// IsValid reports whether the connection is still usable.
func (c *Conn) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}
