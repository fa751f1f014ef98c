package cqldbc

import (
	"database/sql/driver"
	"io"
)

// Rows is a forward-only cursor over a row-producing response. It implements
// database/sql/driver.Rows so row sets can flow through database/sql
// unchanged. Values are surfaced as the session's codec produced them;
// decoding into caller types happens above this layer.
type Rows struct {
	stmt    *Statement
	columns []string
	values  [][]interface{}
	pos     int
	closed  bool
}

// newRows wraps a raw row payload for the statement that produced it.
func newRows(stmt *Statement, data *RowData) *Rows {
	r := &Rows{stmt: stmt}
	if data != nil {
		r.columns = data.Columns
		r.values = data.Values
	}
	return r
}

// Columns returns the column names.
func (r *Rows) Columns() []string {
	return r.columns
}

// Next copies the next row into dest and returns io.EOF once the cursor is
// exhausted or closed.
func (r *Rows) Next(dest []driver.Value) error {
	if r.closed || r.pos >= len(r.values) {
		return io.EOF
	}
	row := r.values[r.pos]
	r.pos++
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	return nil
}

// Scan copies the next row into dest as plain values, for callers using the
// statement API directly rather than database/sql. Returns io.EOF at the
// end of the cursor.
func (r *Rows) Scan(dest []interface{}) error {
	if r.closed || r.pos >= len(r.values) {
		return io.EOF
	}
	row := r.values[r.pos]
	r.pos++
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	return nil
}

// Len returns the number of rows in the set.
func (r *Rows) Len() int {
	return len(r.values)
}

// Close releases the cursor. It is idempotent and never fails; the rows are
// already fully materialized client-side.
func (r *Rows) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.values = nil
	return nil
}

// Ensure Rows implements the required interfaces
var _ driver.Rows = (*Rows)(nil)
