package dbmeta

import (
	"context"
	"database/sql"
)

// Execer runs statements that return no rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Rows is the cursor returned by Querier. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Querier runs catalog queries.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

// Tx is a single database transaction.
type Tx interface {
	Execer
	Commit() error
	Rollback() error
}

// Conn is one pinned database connection. Every operation holds exactly one
// Conn for its whole duration and must Close it on every exit path.
type Conn interface {
	Execer
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
	Close() error
}

// Connector opens connections to a configured database.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// DatabaseCreator creates a new database file from connection parameters.
// Create is not atomic with respect to an existence check done by the caller.
type DatabaseCreator interface {
	Create(ctx context.Context, config *ConnectionConfig) error
}
