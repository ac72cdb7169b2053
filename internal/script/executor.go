package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/K3nZo20/DbMetaTool/internal/checksum"
	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// FileReport is the outcome of one script file.
type FileReport struct {
	Name     string
	Skipped  bool   // file did not exist
	Checksum string // SHA-256 of the file content
	Total    int    // statements found in the file
	Executed int    // statements that succeeded
	// EngineErrors holds statement failures tolerated in transactional mode.
	EngineErrors []*ExecError
	Committed    bool
}

// Report collects per-file outcomes in execution order.
type Report struct {
	Mode  dbmeta.ExecMode
	Files []FileReport
}

// Executor applies the well-known scripts of a directory to a connection.
type Executor struct {
	fs     filesystem.FileSystemProvider
	logger dbmeta.Logger
	order  []string
	hasher checksum.Calculator
}

// NewExecutor creates an Executor that applies dbmeta.ExecutionOrder.
func NewExecutor(fsProvider filesystem.FileSystemProvider, logger dbmeta.Logger) *Executor {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Executor{fs: fsProvider, logger: logger, order: dbmeta.ExecutionOrder, hasher: checksum.New()}
}

// Execute runs every existing script of scriptsDir in execution order.
// The returned Report covers the files processed so far, also on error.
func (e *Executor) Execute(ctx context.Context, conn dbmeta.Conn, scriptsDir string, mode dbmeta.ExecMode) (*Report, error) {
	report := &Report{Mode: mode}

	for _, name := range e.order {
		path := filepath.Join(scriptsDir, name)

		exists, err := e.fs.Exists(path)
		if err != nil {
			return report, fmt.Errorf("%w: %w", dbmeta.ErrScriptFailed, &ExecError{Kind: KindFatal, File: name, Code: "n/a", Err: err})
		}
		if !exists {
			e.logger.Verbose("Skipping %s: file not found", name)
			report.Files = append(report.Files, FileReport{Name: name, Skipped: true})
			continue
		}

		var fileReport FileReport
		switch mode {
		case dbmeta.ModePlain:
			fileReport, err = e.executePlain(ctx, conn, name, path)
		case dbmeta.ModeTransactional:
			fileReport, err = e.executeTransactional(ctx, conn, name, path)
		default:
			return report, fmt.Errorf("unsupported execution mode %s: %w", mode, dbmeta.ErrInvalidConfig)
		}
		report.Files = append(report.Files, fileReport)
		if err != nil {
			return report, fmt.Errorf("%w: %w", dbmeta.ErrScriptFailed, err)
		}
	}

	return report, nil
}

// executePlain runs statements directly on the connection. The first error
// of any kind aborts the run.
func (e *Executor) executePlain(ctx context.Context, conn dbmeta.Conn, name, path string) (FileReport, error) {
	report := FileReport{Name: name}

	content, err := e.fs.ReadFile(path)
	if err != nil {
		return report, &ExecError{Kind: KindFatal, File: name, Code: "n/a", Err: err}
	}
	report.Checksum = e.hasher.CalculateRaw(content)
	e.logger.Verbose("%s: sha256 %s", name, report.Checksum)

	statements := Split(string(content))
	report.Total = len(statements)

	for i, stmt := range statements {
		e.logger.Verbose("%s: executing statement %d/%d", name, i+1, len(statements))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return report, newExecError(name, stmt, err)
		}
		report.Executed++
	}

	e.logger.Info("Executed: %s", name)
	return report, nil
}

// executeTransactional runs one file inside one transaction. Engine errors
// are reported and skipped; a fatal error rolls the file back.
func (e *Executor) executeTransactional(ctx context.Context, conn dbmeta.Conn, name, path string) (report FileReport, err error) {
	report = FileReport{Name: name}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return report, &ExecError{Kind: KindFatal, File: name, Code: "n/a", Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}

	committing := false
	defer func() {
		if err == nil || committing {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.Error("Rollback of %s failed: %v", name, rbErr)
			err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		e.logger.Info("Rolled back changes for %s", name)
	}()

	content, err := e.fs.ReadFile(path)
	if err != nil {
		e.logger.Error("Failed to read %s: %v", name, err)
		return report, &ExecError{Kind: KindFatal, File: name, Code: "n/a", Err: err}
	}
	report.Checksum = e.hasher.CalculateRaw(content)
	e.logger.Verbose("%s: sha256 %s", name, report.Checksum)

	statements := Split(string(content))
	report.Total = len(statements)

	for i, stmt := range statements {
		e.logger.Verbose("%s: executing statement %d/%d", name, i+1, len(statements))

		_, execErr := tx.ExecContext(ctx, stmt)
		if execErr == nil {
			report.Executed++
			continue
		}

		failure := newExecError(name, stmt, execErr)
		if failure.Kind == KindFatal {
			e.logger.Error("Fatal error in %s: %v", name, execErr)
			return report, failure
		}

		e.logger.Error("SQL error in %s:", name)
		e.logger.Error("  code: %s", failure.Code)
		e.logger.Error("  message: %v", execErr)
		e.logger.Error("  statement: %s", preview(stmt))
		e.logger.Info("Continuing with next statement")
		report.EngineErrors = append(report.EngineErrors, failure)
	}

	committing = true
	if err = tx.Commit(); err != nil {
		e.logger.Error("Commit of %s failed: %v", name, err)
		return report, &ExecError{Kind: KindFatal, File: name, Code: "n/a", Err: fmt.Errorf("commit failed: %w", err)}
	}

	report.Committed = true
	e.logger.Info("File %s executed successfully", name)
	return report, nil
}
