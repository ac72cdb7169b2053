package services

import (
	"context"
	"time"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// ConnectorFactory builds the connector for one operation.
type ConnectorFactory func(config *dbmeta.ConnectionConfig, opts dbmeta.RunOptions) (dbmeta.Connector, error)

// NewStandardConnectorFactory returns a factory producing db.StandardConnector
// instances that log retry attempts to logger.
func NewStandardConnectorFactory(logger dbmeta.Logger) ConnectorFactory {
	return func(config *dbmeta.ConnectionConfig, opts dbmeta.RunOptions) (dbmeta.Connector, error) {
		return db.NewStandardConnector(config, opts.ConnectRetries, logger), nil
	}
}

// withTimeout bounds ctx by d. Zero leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// openConnection creates a connector and opens the operation's single connection.
func openConnection(ctx context.Context, factory ConnectorFactory, config *dbmeta.ConnectionConfig, opts dbmeta.RunOptions, logger dbmeta.Logger) (dbmeta.Conn, error) {
	connector, err := factory(config, opts)
	if err != nil {
		return nil, err
	}

	logger.Verbose("Connecting to %s", db.Redact(config))
	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func closeConnection(conn dbmeta.Conn, logger dbmeta.Logger) {
	if err := conn.Close(); err != nil {
		logger.Error("Failed to close connection: %v", err)
	}
}
