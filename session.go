package cqldbc

import "context"

// Session is the transport boundary: an established, authenticated channel
// to the backend over its native query protocol. Implementations handle
// framing, host selection and reconnect policy; this package only submits
// query text and classifies what comes back.
//
// Execute is synchronous and must return either a well-formed Response or
// one of the backend failure types in errors.go. Any other error is treated
// as a transport failure and poisons the connection.
type Session interface {
	Execute(ctx context.Context, query string, consistency Consistency) (*Response, error)
	Close() error
}

// Response is a raw backend response, tagged with its shape. Exactly one of
// the payload fields is meaningful for a given Kind: Rows for ResponseRows,
// Count for ResponseCount, neither for ResponseVoid.
type Response struct {
	Kind  ResponseKind
	Count int
	Rows  *RowData
}

// RowData is the undecoded row payload of a row-producing response. Values
// are whatever the session's codec produced; decoding into caller types is
// the result set's concern, not the statement's.
type RowData struct {
	Columns []string
	Values  [][]interface{}
}
