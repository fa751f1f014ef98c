package cqldbc

import "fmt"

// ExecOptions is the result-set option triple fixed at statement
// construction. Each field is validated against its enumerated set
// independently; the backend only ever honors the defaults in practice, but
// any legal value is accepted and stored.
type ExecOptions struct {
	Type        ResultSetType
	Concurrency Concurrency
	Holdability Holdability
}

// DefaultExecOptions is what the backend actually delivers: a forward-only,
// read-only result set whose cursor is unaffected by commits.
var DefaultExecOptions = ExecOptions{
	Type:        TypeForwardOnly,
	Concurrency: ConcurReadOnly,
	Holdability: HoldCursorsOverCommit,
}

// Validate checks each option against its legal set. Every violation is a
// syntax error naming the offending value.
func (o ExecOptions) Validate() error {
	switch o.Type {
	case TypeForwardOnly, TypeScrollInsensitive, TypeScrollSensitive:
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadTypeRS, o.Type)}
	}
	switch o.Concurrency {
	case ConcurReadOnly, ConcurUpdatable:
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadConcurRS, o.Concurrency)}
	}
	switch o.Holdability {
	case HoldCursorsOverCommit, CloseCursorsAtCommit:
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadHoldRS, o.Holdability)}
	}
	return nil
}

// validateFetchDirection checks dir against the enumerated set and against
// the statement's result set type: a forward-only result set only accepts
// FetchForward, even though FetchReverse and FetchUnknown are legal values on
// their own.
func validateFetchDirection(dir FetchDirection, typ ResultSetType) error {
	switch dir {
	case FetchForward, FetchReverse, FetchUnknown:
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadFetchDir, dir)}
	}
	if typ == TypeForwardOnly && dir != FetchForward {
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadFetchDir, dir)}
	}
	return nil
}

func validateFetchSize(size int) error {
	if size < 0 {
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadFetchSize, size)}
	}
	return nil
}

// validateGeneratedKeysMode checks that mode is a recognized value. Whether a
// recognized mode is actually supported is decided by the execute path:
// requesting generated keys validates fine here and then fails as
// unsupported.
func validateGeneratedKeysMode(mode GeneratedKeysMode) error {
	switch mode {
	case NoGeneratedKeys, ReturnGeneratedKeys:
		return nil
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadAutoGen, mode)}
	}
}

func validateMoreResultsAction(action MoreResultsAction) error {
	switch action {
	case CloseCurrentResult, KeepCurrentResult, CloseAllResults:
		return nil
	default:
		return &Error{Kind: ErrSyntax, Message: fmt.Sprintf(errBadKeepRS, action)}
	}
}

// Hints bundles the statement options the driver accepts but never enforces.
// The backend offers no way to apply them, so setters store the value (or
// silently keep the default, matching the fields' doc) and getters return it;
// execution is unaffected either way.
type Hints struct {
	// MaxRows caps the number of rows a result set yields. Always 0
	// (unlimited); set attempts are ignored.
	MaxRows int
	// MaxFieldSize caps column value sizes. Always 0 (unlimited); set
	// attempts are ignored.
	MaxFieldSize int
	// QueryTimeoutSeconds would bound execution time. The backend offers no
	// cancellation, so it stays 0 and set attempts are ignored.
	QueryTimeoutSeconds int
	// EscapeProcessing is stored as given but never consulted; there is no
	// escape syntax to process.
	EscapeProcessing bool
}

func defaultHints() Hints {
	return Hints{EscapeProcessing: true}
}
