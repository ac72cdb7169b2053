package dbmeta

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := updater.Update(ctx, config)
//	if errors.Is(err, dbmeta.ErrScriptFailed) {
//	    // a script file was rolled back
//	}
var (
	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database connection could not be opened.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDatabaseCreate indicates a new database file could not be created.
	ErrDatabaseCreate = errors.New("database creation failed")

	// ErrCatalogRead indicates a catalog query failed during export.
	ErrCatalogRead = errors.New("catalog read failed")

	// ErrScriptFailed indicates a script file could not be applied.
	ErrScriptFailed = errors.New("script execution failed")
)

// cobraUsagePatterns match the argument and flag errors cobra reports
// before a command's RunE is reached.
var cobraUsagePatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"required flag",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
}

// ExitCodeForError returns the process exit code for an error.
// Usage errors exit with ExitUsageError, every other failure with ExitFailure.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrUsage) {
		return ExitUsageError
	}

	msg := err.Error()
	for _, pattern := range cobraUsagePatterns {
		if strings.HasPrefix(msg, pattern) {
			return ExitUsageError
		}
	}

	return ExitFailure
}
