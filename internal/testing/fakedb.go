package testing

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// FakeConn is an in-memory dbmeta.Conn for unit tests.
// Statements are recorded in execution order; ExecFunc decides per statement
// whether it fails. QueryFunc serves catalog queries.
type FakeConn struct {
	mu sync.Mutex

	ExecFunc  func(query string) error
	QueryFunc func(query string, args []any) (*FakeRows, error)
	BeginErr  error
	CommitErr error

	// Executed holds statements run directly on the connection.
	Executed []string
	// Txs holds every transaction begun on the connection.
	Txs    []*FakeTx
	Closed bool
}

var _ dbmeta.Conn = (*FakeConn)(nil)

func (c *FakeConn) exec(query string) error {
	if c.ExecFunc != nil {
		return c.ExecFunc(query)
	}
	return nil
}

// ExecContext records the statement and applies ExecFunc.
func (c *FakeConn) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.exec(query); err != nil {
		return nil, err
	}
	c.Executed = append(c.Executed, query)
	return driver.RowsAffected(0), nil
}

// QueryContext delegates to QueryFunc; without one it returns no rows.
func (c *FakeConn) QueryContext(_ context.Context, query string, args ...any) (dbmeta.Rows, error) {
	if c.QueryFunc == nil {
		return &FakeRows{}, nil
	}
	rows, err := c.QueryFunc(query, args)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BeginTx starts a recorded transaction.
func (c *FakeConn) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmeta.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BeginErr != nil {
		return nil, c.BeginErr
	}
	tx := &FakeTx{conn: c, commitErr: c.CommitErr}
	c.Txs = append(c.Txs, tx)
	return tx, nil
}

// Close marks the connection closed.
func (c *FakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}

// Committed returns statements of all committed transactions, in order.
func (c *FakeConn) Committed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, tx := range c.Txs {
		if tx.Committed {
			out = append(out, tx.Executed...)
		}
	}
	return out
}

// FakeTx records statements executed inside one transaction.
type FakeTx struct {
	conn      *FakeConn
	commitErr error

	Executed   []string
	Committed  bool
	RolledBack bool
}

// ExecContext records the statement when ExecFunc accepts it.
func (t *FakeTx) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	if t.Committed || t.RolledBack {
		return nil, sql.ErrTxDone
	}
	if err := t.conn.exec(query); err != nil {
		return nil, err
	}
	t.Executed = append(t.Executed, query)
	return driver.RowsAffected(0), nil
}

// Commit marks the transaction committed unless a commit error is configured.
func (t *FakeTx) Commit() error {
	if t.Committed || t.RolledBack {
		return sql.ErrTxDone
	}
	if t.commitErr != nil {
		return t.commitErr
	}
	t.Committed = true
	return nil
}

// Rollback marks the transaction rolled back.
func (t *FakeTx) Rollback() error {
	if t.Committed || t.RolledBack {
		return sql.ErrTxDone
	}
	t.RolledBack = true
	return nil
}

// FakeRows is a static result set. Values are assigned to Scan targets that
// implement sql.Scanner, or to *string and *int64 directly.
type FakeRows struct {
	Values  [][]any
	IterErr error

	pos    int
	Closed bool
}

// NewFakeRows builds a result set from rows of values.
func NewFakeRows(values ...[]any) *FakeRows {
	return &FakeRows{Values: values}
}

// Next advances to the next row.
func (r *FakeRows) Next() bool {
	if r.pos >= len(r.Values) {
		return false
	}
	r.pos++
	return true
}

// Scan copies the current row into dest.
func (r *FakeRows) Scan(dest ...any) error {
	if r.pos == 0 || r.pos > len(r.Values) {
		return fmt.Errorf("scan called without a current row")
	}
	row := r.Values[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// Err returns the configured iteration error.
func (r *FakeRows) Err() error { return r.IterErr }

// Close marks the rows closed.
func (r *FakeRows) Close() error {
	r.Closed = true
	return nil
}

func assign(dest, src any) error {
	switch d := dest.(type) {
	case sql.Scanner:
		return d.Scan(src)
	case *string:
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into *string", src)
		}
		*d = s
	case *int64:
		n, ok := src.(int64)
		if !ok {
			return fmt.Errorf("cannot scan %T into *int64", src)
		}
		*d = n
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}

// QueryRouter maps a distinctive fragment of a catalog query to its rows.
// The first fragment contained in the query wins.
type QueryRouter struct {
	Routes []Route
}

// Route pairs a query fragment with a result factory.
type Route struct {
	Contains string
	Rows     func(args []any) (*FakeRows, error)
}

// Query implements FakeConn.QueryFunc.
func (qr *QueryRouter) Query(query string, args []any) (*FakeRows, error) {
	for _, r := range qr.Routes {
		if strings.Contains(query, r.Contains) {
			return r.Rows(args)
		}
	}
	return nil, fmt.Errorf("unexpected query: %s", strings.TrimSpace(query))
}

// FakeConnector hands out Conn and records the configs it was built with.
type FakeConnector struct {
	Conn     *FakeConn
	Err      error
	Connects int
}

// Connect returns Conn, or Err when set.
func (c *FakeConnector) Connect(context.Context) (dbmeta.Conn, error) {
	c.Connects++
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Conn, nil
}

// Factory returns a connector factory that records each config and always
// yields c.
func (c *FakeConnector) Factory(configs *[]*dbmeta.ConnectionConfig) func(*dbmeta.ConnectionConfig, dbmeta.RunOptions) (dbmeta.Connector, error) {
	return func(cfg *dbmeta.ConnectionConfig, _ dbmeta.RunOptions) (dbmeta.Connector, error) {
		if configs != nil {
			*configs = append(*configs, cfg)
		}
		return c, nil
	}
}

// FakeCreator records database creation requests.
type FakeCreator struct {
	Err      error
	OnCreate func(cfg *dbmeta.ConnectionConfig)
	Created  []*dbmeta.ConnectionConfig
}

// Create records cfg and runs OnCreate unless Err is set.
func (c *FakeCreator) Create(_ context.Context, cfg *dbmeta.ConnectionConfig) error {
	if c.Err != nil {
		return c.Err
	}
	c.Created = append(c.Created, cfg)
	if c.OnCreate != nil {
		c.OnCreate(cfg)
	}
	return nil
}
