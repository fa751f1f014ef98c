package cqldbc

import (
	"context"
	"database/sql/driver"
	"errors"
)

// DialFunc establishes a backend session. Host selection, authentication and
// transport setup all live behind it; this package never dials on its own.
type DialFunc func(ctx context.Context) (Session, error)

// Connector implements driver.Connector so connections can be handed to
// database/sql via sql.OpenDB. Connection options apply to every connection
// the pool creates.
type Connector struct {
	dial   DialFunc
	opts   []ConnOption
	driver *Driver
}

// NewConnector returns a connector that dials sessions with dial and applies
// opts to each resulting connection.
func NewConnector(dial DialFunc, opts ...ConnOption) *Connector {
	return &Connector{dial: dial, opts: opts, driver: &Driver{}}
}

// Connect establishes a new connection to the backend.
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	if c.dial == nil {
		return nil, errors.New("cqldbc: connector has no dial function")
	}
	session, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlConn{conn: NewConn(session, c.opts...)}, nil
}

// Driver returns the underlying Driver.
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// Ensure Connector implements driver.Connector
var _ driver.Connector = (*Connector)(nil)
