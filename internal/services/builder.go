package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/internal/script"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// BuildResult describes a finished build-db run.
type BuildResult struct {
	DatabasePath string
	Created      bool
	Report       *script.Report
	// Metadata is the content of metadata.json from the scripts directory,
	// nil when the file does not exist.
	Metadata []byte
}

// HasMetadata reports whether the scripts directory carried metadata.json.
func (r *BuildResult) HasMetadata() bool {
	return r.Metadata != nil
}

// Builder materializes a fresh database from schema scripts.
// Thread-Safety: NOT safe for concurrent Build() calls on the same instance.
type Builder struct {
	connectorFactory ConnectorFactory
	creator          dbmeta.DatabaseCreator
	fs               filesystem.FileSystemProvider
	executor         *script.Executor
	logger           dbmeta.Logger
}

// NewBuilder creates a Builder. Panics on nil dependencies.
func NewBuilder(
	connectorFactory ConnectorFactory,
	creator dbmeta.DatabaseCreator,
	fsProvider filesystem.FileSystemProvider,
	logger dbmeta.Logger,
) *Builder {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if creator == nil {
		panic("creator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Builder{
		connectorFactory: connectorFactory,
		creator:          creator,
		fs:               fsProvider,
		executor:         script.NewExecutor(fsProvider, logger),
		logger:           logger,
	}
}

// Build creates DatabaseDir/database.fdb when it does not exist yet and
// applies the scripts in plain mode. The first failing statement aborts.
func (b *Builder) Build(ctx context.Context, config dbmeta.BuildConfig) (*BuildResult, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	if err := b.fs.MkdirAll(config.DatabaseDir); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", config.DatabaseDir, err)
	}

	dbPath, err := filepath.Abs(filepath.Join(config.DatabaseDir, dbmeta.DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	result := &BuildResult{DatabasePath: dbPath}

	connConfig := *config.Connection
	connConfig.Database = dbPath
	connConfig.RawDSN = ""

	// Existence check and creation are not atomic; a concurrent creator wins
	// and Create then fails with ErrDatabaseCreate.
	exists, err := b.fs.Exists(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", dbPath, err)
	}
	if !exists {
		b.logger.Verbose("Creating database %s", dbPath)
		if err := b.creator.Create(ctx, &connConfig); err != nil {
			return nil, err
		}
		result.Created = true
	} else {
		b.logger.Verbose("Using existing database %s", dbPath)
	}

	conn, err := openConnection(ctx, b.connectorFactory, &connConfig, config.RunOptions, b.logger)
	if err != nil {
		return nil, err
	}
	defer closeConnection(conn, b.logger)

	report, err := b.executor.Execute(ctx, conn, config.ScriptsDir, dbmeta.ModePlain)
	result.Report = report
	if err != nil {
		return result, err
	}

	metadataPath := filepath.Join(config.ScriptsDir, dbmeta.MetadataFile)
	hasMetadata, err := b.fs.Exists(metadataPath)
	if err != nil {
		return result, fmt.Errorf("failed to check %s: %w", metadataPath, err)
	}
	if hasMetadata {
		content, err := b.fs.ReadFile(metadataPath)
		if err != nil {
			return result, fmt.Errorf("failed to read %s: %w", metadataPath, err)
		}
		result.Metadata = content
	}

	return result, nil
}
