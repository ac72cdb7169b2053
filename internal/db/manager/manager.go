package manager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// Manager implements dbmeta.DatabaseCreator. Stateless and safe for concurrent use.
type Manager struct {
	driverName string
}

// New creates a Manager backed by the firebirdsql_createdb driver.
func New() *Manager {
	return &Manager{driverName: db.CreateDriverName}
}

// Create creates the database described by config.
func (m *Manager) Create(ctx context.Context, config *dbmeta.ConnectionConfig) error {
	if config == nil || config.Database == "" {
		return fmt.Errorf("%w: database path is required: %w", dbmeta.ErrDatabaseCreate, dbmeta.ErrInvalidConfig)
	}

	handle, err := sql.Open(m.driverName, db.BuildDSN(config))
	if err != nil {
		return fmt.Errorf("%w: %w", dbmeta.ErrDatabaseCreate, err)
	}

	// The file is created when the first physical connection attaches.
	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return fmt.Errorf("%w: failed to create database %q: %w", dbmeta.ErrDatabaseCreate, config.Database, err)
	}

	if err := handle.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: failed to close new database %q: %w", dbmeta.ErrDatabaseCreate, config.Database, err)
	}
	return nil
}

var _ dbmeta.DatabaseCreator = (*Manager)(nil)
