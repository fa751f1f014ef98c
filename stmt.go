package cqldbc

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"
)

// noUpdateCount is the update count sentinel while a row set is current or
// nothing has executed yet.
const noUpdateCount = -1

// Statement is a reusable query-execution context bound to one connection.
// After each execute call exactly one of {current row set, update count} is
// set; setting one clears the other.
//
// A Statement is not safe for concurrent use. Execution is synchronous: the
// calling goroutine blocks until the backend responds or fails.
type Statement struct {
	conn  *Conn // nil once closed
	id    uuid.UUID
	query string

	consistency    Consistency
	fetchDirection FetchDirection
	fetchSize      int
	opts           ExecOptions
	hints          Hints

	rows        *Rows
	updateCount int
}

// newStatement validates the option triple and binds the statement to its
// connection. Registration in the connection's statement set is the caller's
// (the connection's) job.
func newStatement(c *Conn, query string, opts ExecOptions) (*Statement, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Statement{
		conn:        c,
		id:          uuid.New(),
		query:       query,
		consistency: c.DefaultConsistency(),
		opts:        opts,
		hints:       defaultHints(),
		updateCount: noUpdateCount,
	}, nil
}

func (s *Statement) checkNotClosed() error {
	if s.IsClosed() {
		return &Error{Kind: ErrStatementClosed, Message: errWasClosed}
	}
	return nil
}

// resetResults clears the previous execution's outcome.
func (s *Statement) resetResults() {
	s.rows = nil
	s.updateCount = noUpdateCount
}

// doExecute submits the query and applies the classified outcome to the
// statement. Backend failures come back through the translator.
func (s *Statement) doExecute(ctx context.Context, query string) error {
	if query == "" {
		return &Error{Kind: ErrSyntax, Message: "no query text provided"}
	}
	s.resetResults()
	resp, err := s.conn.execute(ctx, query, s.consistency)
	if err != nil {
		var de *Error
		if errors.As(err, &de) {
			// Already in caller-facing form, e.g. a closed connection.
			return de
		}
		return translateExecError(s.conn, query, err)
	}
	return s.applyResponse(resp)
}

// applyResponse classifies a raw backend response into the statement's
// result state. A response kind outside the known set is a backend contract
// violation, not something to ignore.
func (s *Statement) applyResponse(resp *Response) error {
	switch resp.Kind {
	case ResponseRows:
		s.rows = newRows(s, resp.Rows)
	case ResponseCount:
		s.updateCount = resp.Count
	case ResponseVoid:
		s.updateCount = 0
	default:
		return &Error{Kind: ErrInternal, Message: "unexpected response kind: " + resp.Kind.String()}
	}
	return nil
}

// Execute runs a query of any shape and reports whether it produced a row
// set. The row set, if any, is available via ResultSet; a count via
// UpdateCount.
func (s *Statement) Execute(ctx context.Context, query string) (bool, error) {
	if err := s.checkNotClosed(); err != nil {
		return false, err
	}
	if err := s.doExecute(ctx, query); err != nil {
		return false, err
	}
	return s.rows != nil, nil
}

// ExecuteWithKeys is Execute with an explicit generated-keys mode. The mode
// is validated first; requesting generated keys always fails as unsupported,
// the backend has no way to produce them.
func (s *Statement) ExecuteWithKeys(ctx context.Context, query string, mode GeneratedKeysMode) (bool, error) {
	if err := s.checkNotClosed(); err != nil {
		return false, err
	}
	if err := validateGeneratedKeysMode(mode); err != nil {
		return false, err
	}
	if mode == ReturnGeneratedKeys {
		return false, &Error{Kind: ErrUnsupported, Message: errNoGenKeys}
	}
	return s.Execute(ctx, query)
}

// ExecuteQuery runs a query expected to produce rows and returns its row
// set. A query that produced only a count or nothing fails with a
// no-result-set error.
func (s *Statement) ExecuteQuery(ctx context.Context, query string) (*Rows, error) {
	if err := s.checkNotClosed(); err != nil {
		return nil, err
	}
	if err := s.doExecute(ctx, query); err != nil {
		return nil, err
	}
	if s.rows == nil {
		return nil, &Error{Kind: ErrSyntax, Message: errNoResultSet, Query: query}
	}
	return s.rows, nil
}

// ExecuteUpdate runs a query expected to produce an update count and returns
// it. A query that produced rows fails with a no-update-count error.
func (s *Statement) ExecuteUpdate(ctx context.Context, query string) (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	if err := s.doExecute(ctx, query); err != nil {
		return 0, err
	}
	if s.rows != nil {
		return 0, &Error{Kind: ErrSyntax, Message: errNoUpdateCount, Query: query}
	}
	return s.updateCount, nil
}

// ExecuteUpdateWithKeys is ExecuteUpdate with an explicit generated-keys
// mode, subject to the same rules as ExecuteWithKeys.
func (s *Statement) ExecuteUpdateWithKeys(ctx context.Context, query string, mode GeneratedKeysMode) (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	if err := validateGeneratedKeysMode(mode); err != nil {
		return 0, err
	}
	if mode == ReturnGeneratedKeys {
		return 0, &Error{Kind: ErrUnsupported, Message: errNoGenKeys}
	}
	return s.ExecuteUpdate(ctx, query)
}

// AddBatch always fails: the backend has no batch submission primitive
// compatible with per-statement batching.
func (s *Statement) AddBatch(query string) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	return &Error{Kind: ErrUnsupported, Message: errNoBatch}
}

// ClearBatch always fails, same as AddBatch.
func (s *Statement) ClearBatch() error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	return &Error{Kind: ErrUnsupported, Message: errNoBatch}
}

// ExecuteBatch always fails, same as AddBatch.
func (s *Statement) ExecuteBatch(ctx context.Context) ([]int, error) {
	if err := s.checkNotClosed(); err != nil {
		return nil, err
	}
	return nil, &Error{Kind: ErrUnsupported, Message: errNoBatch}
}

// MoreResults closes the current result and reports whether further result
// sets exist. The backend never produces more than one, so the report is
// always false.
func (s *Statement) MoreResults() (bool, error) {
	return s.MoreResultsWithAction(CloseCurrentResult)
}

// MoreResultsWithAction is MoreResults with an explicit disposition for the
// current result set. The returned bool is a capability fact (further result
// sets never exist here) and the error reports the action itself: only
// CloseCurrentResult can succeed, the other recognized actions are
// unsupported, and an unrecognized action is a syntax error.
func (s *Statement) MoreResultsWithAction(action MoreResultsAction) (bool, error) {
	if err := s.checkNotClosed(); err != nil {
		return false, err
	}
	if err := validateMoreResultsAction(action); err != nil {
		return false, err
	}
	switch action {
	case CloseCurrentResult:
		s.resetResults()
	default:
		return false, &Error{Kind: ErrUnsupported, Message: errNoMultiple}
	}
	return false, nil
}

// ResultSet returns the current row set, or nil when the last execution
// produced a count or nothing.
func (s *Statement) ResultSet() (*Rows, error) {
	if err := s.checkNotClosed(); err != nil {
		return nil, err
	}
	return s.rows, nil
}

// UpdateCount returns the current update count, or -1 when the last
// execution produced a row set.
func (s *Statement) UpdateCount() (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.updateCount, nil
}

// Connection returns the owning connection.
func (s *Statement) Connection() (*Conn, error) {
	if err := s.checkNotClosed(); err != nil {
		return nil, err
	}
	return s.conn, nil
}

// Query returns the stored query text, which may be empty.
func (s *Statement) Query() string {
	return s.query
}

// Consistency returns the statement's consistency level.
func (s *Statement) Consistency() (Consistency, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.consistency, nil
}

// SetConsistency overrides the consistency level inherited from the
// connection. The value is threaded to the backend opaquely; no validation
// beyond being an enumerated value is applied.
func (s *Statement) SetConsistency(level Consistency) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	s.consistency = level
	return nil
}

// FetchDirection returns the row traversal hint.
func (s *Statement) FetchDirection() (FetchDirection, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.fetchDirection, nil
}

// SetFetchDirection stores a traversal hint. On a forward-only statement
// only FetchForward is legal.
func (s *Statement) SetFetchDirection(dir FetchDirection) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	if err := validateFetchDirection(dir, s.opts.Type); err != nil {
		return err
	}
	s.fetchDirection = dir
	return nil
}

// FetchSize returns the fetch size hint.
func (s *Statement) FetchSize() (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.fetchSize, nil
}

// SetFetchSize stores a fetch size hint; negative sizes are rejected.
func (s *Statement) SetFetchSize(size int) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	if err := validateFetchSize(size); err != nil {
		return err
	}
	s.fetchSize = size
	return nil
}

// MaxRows returns the accepted-but-unenforced row cap, always 0.
func (s *Statement) MaxRows() (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.hints.MaxRows, nil
}

// SetMaxRows is accepted and ignored; the cap stays 0 (unlimited).
func (s *Statement) SetMaxRows(int) error {
	return s.checkNotClosed()
}

// MaxFieldSize returns the accepted-but-unenforced field size cap, always 0.
func (s *Statement) MaxFieldSize() (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.hints.MaxFieldSize, nil
}

// SetMaxFieldSize is accepted and ignored; the cap stays 0 (unlimited).
func (s *Statement) SetMaxFieldSize(int) error {
	return s.checkNotClosed()
}

// QueryTimeout returns the accepted-but-unenforced timeout in seconds,
// always 0. The backend offers no cancellation channel.
func (s *Statement) QueryTimeout() (int, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return s.hints.QueryTimeoutSeconds, nil
}

// SetQueryTimeout is accepted and ignored; no timeout is ever applied.
func (s *Statement) SetQueryTimeout(int) error {
	return s.checkNotClosed()
}

// EscapeProcessing reports the stored escape-processing flag.
func (s *Statement) EscapeProcessing() (bool, error) {
	if err := s.checkNotClosed(); err != nil {
		return false, err
	}
	return s.hints.EscapeProcessing, nil
}

// SetEscapeProcessing stores the flag; nothing consults it, there is no
// escape syntax to process.
func (s *Statement) SetEscapeProcessing(enable bool) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	s.hints.EscapeProcessing = enable
	return nil
}

// RequestedOptions returns the option triple the caller asked for at
// construction.
func (s *Statement) RequestedOptions() (ExecOptions, error) {
	if err := s.checkNotClosed(); err != nil {
		return ExecOptions{}, err
	}
	return s.opts, nil
}

// ResultSetType returns the traversal capability the backend actually
// delivers, which is forward-only regardless of what was requested.
func (s *Statement) ResultSetType() (ResultSetType, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return TypeForwardOnly, nil
}

// ResultSetConcurrency returns the concurrency the backend actually
// delivers, which is read-only.
func (s *Statement) ResultSetConcurrency() (Concurrency, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return ConcurReadOnly, nil
}

// ResultSetHoldability returns the holdability the backend actually
// delivers. There are no commits, so cursors always hold.
func (s *Statement) ResultSetHoldability() (Holdability, error) {
	if err := s.checkNotClosed(); err != nil {
		return 0, err
	}
	return HoldCursorsOverCommit, nil
}

// Close clears the current result, deregisters from the connection and
// severs the back-reference. Closing an already-closed statement fails the
// not-closed check, surfacing the misuse instead of masking it.
func (s *Statement) Close() error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	s.conn.removeStatement(s)
	s.detach()
	return nil
}

// detach severs the connection back-reference without touching the
// registry. Used by Close after deregistering and by Conn.Close, which has
// already emptied the registry.
func (s *Statement) detach() {
	s.resetResults()
	s.conn = nil
	s.query = ""
}

// IsClosed reports whether the statement has been closed. It is the one
// operation that remains callable afterward.
func (s *Statement) IsClosed() bool {
	return s.conn == nil
}

// ID returns the statement's identity, assigned at construction.
func (s *Statement) ID() uuid.UUID {
	return s.id
}

// Compare defines a total ordering over statements for ordered containers:
// a statement equals itself, everything else orders by identity. The order
// is stable within a process and otherwise arbitrary.
func (s *Statement) Compare(other *Statement) int {
	if s == other {
		return 0
	}
	return bytes.Compare(s.id[:], other.id[:])
}
