package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/K3nZo20/DbMetaTool/internal/config"
	"github.com/K3nZo20/DbMetaTool/internal/db/manager"
	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/internal/logging"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

const (
	logFormatConsole = "console"
	logFormatJSON    = "json"
)

// Dependencies of the commands; tests replace them with fakes.
var (
	projectDir       = "."
	connectorFactory = services.NewStandardConnectorFactory
	newCreator       = func() dbmeta.DatabaseCreator { return manager.New() }
	newFileSystem    = func() filesystem.FileSystemProvider { return filesystem.NewOSFileSystem() }
)

// commandEnv is what every command resolves before doing any work.
type commandEnv struct {
	project *config.ProjectConfig
	opts    dbmeta.RunOptions
	logger  dbmeta.Logger
	flush   func()
}

func (e *commandEnv) close() {
	if e.flush != nil {
		e.flush()
	}
}

// prepareCommand loads .env and dbmeta.yaml, resolves the shared run options
// and builds the logger.
func prepareCommand(cmd *cobra.Command) (*commandEnv, error) {
	project, err := loadProjectConfig(projectDir)
	if err != nil {
		return nil, err
	}

	opts, err := resolveRunOptions(cmd, project)
	if err != nil {
		return nil, err
	}

	logger, flush, err := newLogger(rootFlags.logFormat, rootFlags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &commandEnv{project: project, opts: opts, logger: logger, flush: flush}, nil
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if dbmeta.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveRunOptions applies flag > dbmeta.yaml > default for the timeout and
// retry count.
func resolveRunOptions(cmd *cobra.Command, project *config.ProjectConfig) (dbmeta.RunOptions, error) {
	opts := dbmeta.RunOptions{
		Timeout:        rootFlags.timeout,
		ConnectRetries: rootFlags.connectRetries,
		Verbose:        rootFlags.verbose,
	}
	if project == nil {
		return opts, nil
	}

	if !flagChanged(cmd, "timeout") {
		timeout, err := project.TimeoutDuration()
		if err != nil {
			return dbmeta.RunOptions{}, fmt.Errorf("%w: %w", dbmeta.ErrInvalidConfig, err)
		}
		opts.Timeout = timeout
	}
	if !flagChanged(cmd, "connect-retries") {
		opts.ConnectRetries = project.ConnectRetries
	}
	return opts, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// newLogger selects the logger for --log-format. The returned func flushes
// buffered entries.
func newLogger(format string, verbose bool, errOut io.Writer) (dbmeta.Logger, func(), error) {
	switch format {
	case logFormatConsole, "":
		return logging.NewConsoleLoggerTo(errOut, verbose), func() {}, nil
	case logFormatJSON:
		logger, err := logging.NewZapLogger(verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize json logger: %w", err)
		}
		return logger, logger.Sync, nil
	default:
		return nil, nil, fmt.Errorf("invalid --log-format %q: must be %s or %s: %w",
			format, logFormatConsole, logFormatJSON, dbmeta.ErrUsage)
	}
}

// commandContext returns a context cancelled on Ctrl+C or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
