package cqldbc

import (
	"database/sql/driver"
)

// Result implements driver.Result for count-producing and void statements.
type Result struct {
	rowsAffected int64
}

// LastInsertId always fails: the backend never generates keys server-side.
func (r *Result) LastInsertId() (int64, error) {
	return 0, &Error{Kind: ErrUnsupported, Message: errNoGenKeys}
}

// RowsAffected returns the backend's update count. Void statements report 0.
func (r *Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// Ensure Result implements driver.Result
var _ driver.Result = (*Result)(nil)
