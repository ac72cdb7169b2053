package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/K3nZo20/DbMetaTool/internal/catalog"
	"github.com/K3nZo20/DbMetaTool/internal/checksum"
	"github.com/K3nZo20/DbMetaTool/internal/ddl"
	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// ExportResult lists what export-scripts wrote.
type ExportResult struct {
	Files      []string // written paths in write order
	Domains    int
	Tables     int
	Procedures int
	// UnknownTypes names objects whose type fell back to UNKNOWN.
	UnknownTypes []string
	// Checksums maps each written file name to its normalized SHA-256.
	// Two exports of the same schema yield the same checksums.
	Checksums map[string]string
}

// Exporter extracts a database schema into scripts and metadata.json.
type Exporter struct {
	connectorFactory ConnectorFactory
	fs               filesystem.FileSystemProvider
	hasher           checksum.Calculator
	logger           dbmeta.Logger
}

// NewExporter creates an Exporter. Panics on nil dependencies.
func NewExporter(connectorFactory ConnectorFactory, fsProvider filesystem.FileSystemProvider, logger dbmeta.Logger) *Exporter {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Exporter{connectorFactory: connectorFactory, fs: fsProvider, hasher: checksum.New(), logger: logger}
}

// Export reads the catalog and writes domains.sql, tables.sql,
// procedures.sql and metadata.json into OutputDir. Nothing is written when
// the catalog cannot be read.
func (e *Exporter) Export(ctx context.Context, config dbmeta.ExportConfig) (*ExportResult, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	if err := e.fs.MkdirAll(config.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", config.OutputDir, err)
	}

	conn, err := openConnection(ctx, e.connectorFactory, config.Connection, config.RunOptions, e.logger)
	if err != nil {
		return nil, err
	}
	defer closeConnection(conn, e.logger)

	snap, err := catalog.NewReader(conn).Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dbmeta.ErrCatalogRead, err)
	}

	rendered := ddl.Render(snap)
	result := &ExportResult{
		Domains:      len(rendered.Metadata.Domains),
		Tables:       len(rendered.Metadata.Tables),
		Procedures:   len(rendered.Metadata.Procedures),
		UnknownTypes: rendered.UnknownTypes(),
		Checksums:    make(map[string]string, 4),
	}
	for _, name := range result.UnknownTypes {
		e.logger.Info("Warning: unsupported field type for %s, exported as %s", name, catalog.UnknownType)
	}

	metadata, err := rendered.MetadataJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", dbmeta.MetadataFile, err)
	}

	outputs := []struct {
		name    string
		content []byte
	}{
		{dbmeta.DomainsScript, []byte(rendered.Domains)},
		{dbmeta.TablesScript, []byte(rendered.Tables)},
		{dbmeta.ProceduresScript, []byte(rendered.Procedures)},
		{dbmeta.MetadataFile, metadata},
	}
	for _, out := range outputs {
		path := filepath.Join(config.OutputDir, out.name)
		if err := e.fs.WriteFile(path, out.content); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}
		sum := e.hasher.CalculateNormalized(out.content)
		e.logger.Verbose("Wrote %s (%d bytes, sha256 %s)", path, len(out.content), sum)
		result.Files = append(result.Files, path)
		result.Checksums[out.name] = sum
	}

	return result, nil
}
