package services

import (
	"context"
	"fmt"

	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/internal/script"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// Updater applies schema scripts to an existing database, one transaction per file.
type Updater struct {
	connectorFactory ConnectorFactory
	executor         *script.Executor
	logger           dbmeta.Logger
}

// NewUpdater creates an Updater. Panics on nil dependencies.
func NewUpdater(connectorFactory ConnectorFactory, fsProvider filesystem.FileSystemProvider, logger dbmeta.Logger) *Updater {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Updater{
		connectorFactory: connectorFactory,
		executor:         script.NewExecutor(fsProvider, logger),
		logger:           logger,
	}
}

// Update runs the scripts of ScriptsDir in transactional mode. Engine errors
// are reported in the returned Report; the first fatal error rolls back its
// file and stops the run.
func (u *Updater) Update(ctx context.Context, config dbmeta.UpdateConfig) (*script.Report, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	conn, err := openConnection(ctx, u.connectorFactory, config.Connection, config.RunOptions, u.logger)
	if err != nil {
		return nil, err
	}
	defer closeConnection(conn, u.logger)

	return u.executor.Execute(ctx, conn, config.ScriptsDir, dbmeta.ModeTransactional)
}
