package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/nakagami/firebirdsql"

	"github.com/K3nZo20/DbMetaTool/internal/retry"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

const (
	// DriverName is the database/sql driver used for regular connections.
	DriverName = "firebirdsql"
	// CreateDriverName creates the database file on open.
	CreateDriverName = "firebirdsql_createdb"
)

// StandardConnector opens one pinned connection per Connect call, retrying
// transient failures up to ConnectRetries times.
type StandardConnector struct {
	config        *dbmeta.ConnectionConfig
	driverName    string
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a connector for config. Retry attempts are
// logged at verbose level.
func NewStandardConnector(config *dbmeta.ConnectionConfig, retries int, logger dbmeta.Logger) *StandardConnector {
	executor := retry.NewExecutor(retry.NewFirebirdErrorClassifier(), retry.NewExponentialBackoff(retries))
	if logger != nil {
		executor = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed: %v (retrying in %s)", attempt+1, err, delay.Round(time.Millisecond))
		})
	}

	return &StandardConnector{
		config:        config,
		driverName:    DriverName,
		retryExecutor: executor,
	}
}

// Connect opens the database and pins a single connection. The returned
// Conn must be closed; closing it releases the underlying pool too.
func (c *StandardConnector) Connect(ctx context.Context) (dbmeta.Conn, error) {
	var conn *sqlConn

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		db, err := sql.Open(c.driverName, BuildDSN(c.config))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(1)

		pinned, err := db.Conn(ctx)
		if err != nil {
			db.Close()
			return err
		}
		if err := pinned.PingContext(ctx); err != nil {
			pinned.Close()
			db.Close()
			return err
		}

		conn = &sqlConn{db: db, conn: pinned}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dbmeta.ErrConnectionFailed, wrapConnectionError(err, c.config))
	}

	return conn, nil
}

var _ dbmeta.Connector = (*StandardConnector)(nil)

// sqlConn adapts a pinned *sql.Conn to dbmeta.Conn.
type sqlConn struct {
	db   *sql.DB
	conn *sql.Conn
}

func (c *sqlConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

func (c *sqlConn) QueryContext(ctx context.Context, query string, args ...any) (dbmeta.Rows, error) {
	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *sqlConn) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmeta.Tx, error) {
	tx, err := c.conn.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Close returns the pinned connection and closes the pool.
func (c *sqlConn) Close() error {
	return errors.Join(c.conn.Close(), c.db.Close())
}

var _ dbmeta.Conn = (*sqlConn)(nil)

// wrapConnectionError wraps raw driver errors with actionable guidance.
func wrapConnectionError(err error, config *dbmeta.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("connection to %s aborted: %w", addr, err)

	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - Firebird server is not running
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, config.Host, err)

	case strings.Contains(errStr, "user name and password are not defined"),
		strings.Contains(errStr, "login"):
		return fmt.Errorf(`authentication failed for user "%s"

Possible causes:
  - Wrong password (check User/Password in the connection string or $ISC_PASSWORD)
  - User is not defined on this server

Original error: %w`, config.Username, err)

	case strings.Contains(errStr, "error while trying to open file"),
		strings.Contains(errStr, "i/o error during \"open\""):
		return fmt.Errorf(`database "%s" cannot be opened on %s

Possible causes:
  - The path is wrong or relative to the server, not the client
  - The server process lacks permission on the file

Original error: %w`, config.Database, addr, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets

Original error: %w`, addr, err)

	default:
		return fmt.Errorf("failed to connect to %s: %w", Redact(config), err)
	}
}
