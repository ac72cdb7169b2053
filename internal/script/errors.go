package script

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"regexp"
	"strings"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// ErrorKind tags a statement failure with the policy that applies to it.
type ErrorKind int

const (
	// KindEngine is an error reported by the database engine for one statement.
	// In transactional mode it is logged and execution continues.
	KindEngine ErrorKind = iota
	// KindFatal is any failure without an engine status: driver protocol,
	// connection state, I/O or cancellation.
	// It always aborts the current file and every file after it.
	KindFatal
)

// String returns a human-readable string representation of the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindEngine:
		return "engine"
	case KindFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ExecError describes a failed statement or script file.
type ExecError struct {
	Kind      ErrorKind
	File      string
	Statement string
	// Code is the engine SQL error code when the message carries one, otherwise "n/a".
	Code string
	Err  error
}

func (e *ExecError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v (statement: %s)", e.File, e.Err, preview(e.Statement))
}

func (e *ExecError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries a fatal ExecError.
func IsFatal(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr) && execErr.Kind == KindFatal
}

// Classify decides whether a statement error came from the engine or from
// the infrastructure around it. Only errors that carry a Firebird status
// vector are engine errors; driver protocol, connection state, I/O and
// cancellation failures, and anything unrecognised, are fatal.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindEngine
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindFatal
	case errors.Is(err, sql.ErrTxDone), errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return KindFatal
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.ErrClosedPipe):
		return KindFatal
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindFatal
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindFatal
	}

	if hasEngineStatus(err.Error()) {
		return KindEngine
	}
	return KindFatal
}

// engineStatusPrefixes are leading status vector messages from the Firebird
// message catalogue that the engine reports for a rejected statement.
var engineStatusPrefixes = []string{
	"dynamic sql error",
	"unsuccessful metadata update",
	"violation of primary or unique key constraint",
	"violation of foreign key constraint",
	"attempt to store duplicate value",
	"validation error for column",
	"operation violates check constraint",
	"arithmetic exception",
	"conversion error from string",
	"no permission for",
	"lock conflict on no wait transaction",
	"update conflicts with concurrent update",
	"table unknown",
	"column unknown",
	"exception ",
}

func hasEngineStatus(message string) bool {
	if sqlCodePattern.MatchString(message) {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, prefix := range engineStatusPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Firebird status vectors render the SQLCODE as "SQL error code = -104";
// some drivers prefix it as "SQLCODE: -104".
var sqlCodePattern = regexp.MustCompile(`(?i)(?:SQL error code\s*=|SQLCODE:?)\s*(-?\d+)`)

// EngineCode extracts the SQL error code from an engine error message.
func EngineCode(err error) string {
	if err == nil {
		return "n/a"
	}
	if m := sqlCodePattern.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return "n/a"
}

func newExecError(file, statement string, err error) *ExecError {
	kind := Classify(err)
	code := "n/a"
	if kind == KindEngine {
		code = EngineCode(err)
	}
	return &ExecError{Kind: kind, File: file, Statement: statement, Code: code, Err: err}
}

func preview(statement string) string {
	r := []rune(statement)
	if len(r) <= dbmeta.MaxErrorPreviewLength {
		return statement
	}
	return string(r[:dbmeta.MaxErrorPreviewLength]) + "..."
}
