package cqldbc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a driver error. The transient/non-transient split on
// connection errors is the caller's retry contract: transient failures may be
// retried on the same connection, non-transient failures require reconnecting.
type ErrorKind int

const (
	// ErrSyntax means the query or an option value was malformed. The
	// statement and connection remain usable once the input is fixed.
	ErrSyntax ErrorKind = iota + 1
	// ErrUnsupported means the operation is structurally impossible on this
	// backend (batching, generated keys, multiple result sets). Retrying the
	// same way will never succeed.
	ErrUnsupported
	// ErrConnNonTransient means the backend was unreachable or the protocol
	// broke. The session may have been force-closed; reconnect before
	// retrying.
	ErrConnNonTransient
	// ErrConnTransient means the request timed out. The same statement may
	// be retried on the same connection.
	ErrConnTransient
	// ErrSchemaMismatch means the cluster schema has not converged. Retry
	// after a delay; the connection is unaffected.
	ErrSchemaMismatch
	// ErrStatementClosed means an operation was invoked on a closed
	// statement. A programming error, never retried.
	ErrStatementClosed
	// ErrInternal means the backend violated its response contract.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrUnsupported:
		return "unsupported"
	case ErrConnNonTransient:
		return "connection"
	case ErrConnTransient:
		return "connection (transient)"
	case ErrSchemaMismatch:
		return "schema mismatch"
	case ErrStatementClosed:
		return "statement closed"
	case ErrInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the caller-facing driver error. It carries the taxonomy kind, a
// message, the query text when one was involved, and the backend cause when
// there is one.
type Error struct {
	Kind    ErrorKind
	Message string
	Query   string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("cqldbc: %s: %s", e.Kind, e.Message)
	if e.Query != "" {
		msg += fmt.Sprintf("\n'%s'", e.Query)
	}
	return msg
}

// Unwrap returns the backend cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error's kind, so callers can test
// with errors.Is against a kind-only *Error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Error messages. Option-validation messages embed the offending value.
const (
	errBadTypeRS    = "bad result set type: %s"
	errBadConcurRS  = "bad result set concurrency: %s"
	errBadHoldRS    = "bad result set holdability: %s"
	errBadFetchDir  = "illegal fetch direction: %s"
	errBadFetchSize = "illegal fetch size: %d"
	errBadAutoGen   = "bad auto-generated keys mode: %s"
	errBadKeepRS    = "unrecognized more-results action: %s"

	errNoBatch       = "the backend does not support batch statements"
	errNoGenKeys     = "the backend does not support server-generated keys"
	errNoMultiple    = "the backend never produces multiple result sets"
	errNoResultSet   = "no result set returned"
	errNoUpdateCount = "no update count available"
	errNoServer      = "no backend replica available"
	errSchemaNotSync = "cluster schema versions have not converged"
	errWasClosed     = "method was called on a closed statement"
	errNoTx          = "the backend does not support transactions"
	errNoDSN         = "DSN-based open is not supported; use sql.OpenDB with a Connector"
)

// Backend failure types, raised by Session implementations and consumed by
// the translator. They mirror the native protocol's error variants.

// InvalidRequestError reports a query the backend rejected as malformed.
type InvalidRequestError struct {
	Why string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Why
}

// UnavailableError reports that not enough replicas were alive to satisfy the
// requested consistency level.
type UnavailableError struct {
	Consistency Consistency
	Required    int
	Alive       int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("unavailable: consistency %s requires %d replicas, %d alive",
		e.Consistency, e.Required, e.Alive)
}

// RequestTimeoutError reports that the backend did not answer in time.
type RequestTimeoutError struct {
	Consistency Consistency
}

func (e *RequestTimeoutError) Error() string {
	return fmt.Sprintf("request timed out at consistency %s", e.Consistency)
}

// SchemaDisagreementError reports that cluster nodes disagree on the current
// schema version.
type SchemaDisagreementError struct{}

func (e *SchemaDisagreementError) Error() string {
	return "schema versions disagree across the cluster"
}

// TransportError reports a protocol-level failure on the underlying session.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// translateExecError maps a backend failure to the caller-facing taxonomy.
// For transport failures it force-closes the session so the caller is
// compelled to reconnect; that cleanup is best-effort and its own failure is
// discarded so it can never mask the original error.
func translateExecError(c *Conn, query string, err error) *Error {
	var (
		invalid     *InvalidRequestError
		unavailable *UnavailableError
		timeout     *RequestTimeoutError
		schema      *SchemaDisagreementError
	)
	switch {
	case errors.As(err, &invalid):
		return &Error{Kind: ErrSyntax, Message: invalid.Why, Query: query, Err: err}
	case errors.As(err, &unavailable):
		return &Error{Kind: ErrConnNonTransient, Message: errNoServer, Err: err}
	case errors.As(err, &timeout):
		return &Error{Kind: ErrConnTransient, Message: err.Error(), Err: err}
	case errors.As(err, &schema):
		return &Error{Kind: ErrSchemaMismatch, Message: errSchemaNotSync, Err: err}
	default:
		c.forceClose()
		return &Error{Kind: ErrConnNonTransient, Message: err.Error(), Err: err}
	}
}

// IsConnectionError reports whether err indicates a connection problem,
// transient or not.
func IsConnectionError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == ErrConnTransient || e.Kind == ErrConnNonTransient
}

// IsTransient reports whether err may be retried on the same connection.
func IsTransient(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == ErrConnTransient
}

// IsRetryable reports whether err represents a condition that may succeed if
// retried at some level: a timeout on the same connection, or a schema
// mismatch after a delay.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case ErrConnTransient, ErrSchemaMismatch:
		return true
	}
	return false
}
