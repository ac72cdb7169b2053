package dbmeta

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig represents parsed Firebird connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string // database file path or alias on the server
	Username string
	Password string
	Charset  string

	// RawDSN, when set, is handed to the driver verbatim and the other
	// fields are informational only.
	RawDSN string

	// AdditionalParams are appended to the driver DSN query string.
	AdditionalParams map[string]string
}

// NewConnectionConfig returns a ConnectionConfig populated with defaults.
func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Host:             DefaultHost,
		Port:             DefaultPort,
		Username:         DefaultUser,
		Password:         DefaultPassword,
		Charset:          DefaultCharset,
		AdditionalParams: make(map[string]string),
	}
}

// ExecMode selects how the script executor applies statements.
type ExecMode int

const (
	// ModePlain executes statements directly on the connection and stops at the first error.
	ModePlain ExecMode = iota
	// ModeTransactional wraps each script file in a transaction and tolerates engine errors.
	ModeTransactional
)

// String returns a human-readable string representation of the ExecMode.
func (m ExecMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeTransactional:
		return "transactional"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// RunOptions holds settings shared by all three operations.
type RunOptions struct {
	// Timeout bounds the whole operation. Zero means no timeout.
	Timeout time.Duration

	// ConnectRetries is the number of extra connection attempts on transient failures.
	ConnectRetries int

	// Verbose enables detailed logging
	Verbose bool
}

func (o RunOptions) validate() []error {
	var errs []error
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}
	if o.ConnectRetries < 0 {
		errs = append(errs, fmt.Errorf("connect retries cannot be negative: %w", ErrInvalidConfig))
	}
	return errs
}

// BuildConfig contains all parameters needed for build-db.
type BuildConfig struct {
	// DatabaseDir receives database.fdb; created when missing.
	DatabaseDir string

	// ScriptsDir holds domains.sql, tables.sql, procedures.sql and optionally metadata.json.
	ScriptsDir string

	// Connection carries server and credentials. Database is derived from DatabaseDir.
	Connection *ConnectionConfig

	RunOptions
}

// Validate checks if the BuildConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *BuildConfig) Validate() error {
	var errs []error

	if c.DatabaseDir == "" {
		errs = append(errs, fmt.Errorf("DatabaseDir is required: %w", ErrInvalidConfig))
	}
	if c.ScriptsDir == "" {
		errs = append(errs, fmt.Errorf("ScriptsDir is required: %w", ErrInvalidConfig))
	}
	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}
	errs = append(errs, c.RunOptions.validate()...)

	return errors.Join(errs...)
}

// ExportConfig contains all parameters needed for export-scripts.
type ExportConfig struct {
	Connection *ConnectionConfig

	// OutputDir receives the three scripts and metadata.json; created when missing.
	OutputDir string

	RunOptions
}

// Validate checks if the ExportConfig has all required fields and valid values.
func (c *ExportConfig) Validate() error {
	var errs []error

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}
	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}
	errs = append(errs, c.RunOptions.validate()...)

	return errors.Join(errs...)
}

// UpdateConfig contains all parameters needed for update-db.
type UpdateConfig struct {
	Connection *ConnectionConfig
	ScriptsDir string

	RunOptions
}

// Validate checks if the UpdateConfig has all required fields and valid values.
func (c *UpdateConfig) Validate() error {
	var errs []error

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}
	if c.ScriptsDir == "" {
		errs = append(errs, fmt.Errorf("ScriptsDir is required: %w", ErrInvalidConfig))
	}
	errs = append(errs, c.RunOptions.validate()...)

	return errors.Join(errs...)
}
