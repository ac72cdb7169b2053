package dbmeta_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, dbmeta.ExitSuccess},
		{"wrapped usage sentinel", fmt.Errorf("no command given: %w", dbmeta.ErrUsage), dbmeta.ExitUsageError},
		{"unknown command", errors.New(`unknown command "drop-db" for "dbmetatool"`), dbmeta.ExitUsageError},
		{"unknown flag", errors.New("unknown flag: --foo"), dbmeta.ExitUsageError},
		{"required flag", errors.New(`required flag(s) "db-dir" not set`), dbmeta.ExitUsageError},
		{"flag needs argument", errors.New("flag needs an argument: --scripts-dir"), dbmeta.ExitUsageError},
		{"connection failed", fmt.Errorf("open: %w", dbmeta.ErrConnectionFailed), dbmeta.ExitFailure},
		{"script failed", dbmeta.ErrScriptFailed, dbmeta.ExitFailure},
		{"general error", errors.New("something went wrong"), dbmeta.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dbmeta.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		dbmeta.ErrUsage,
		dbmeta.ErrInvalidConfig,
		dbmeta.ErrConnectionFailed,
		dbmeta.ErrDatabaseCreate,
		dbmeta.ErrCatalogRead,
		dbmeta.ErrScriptFailed,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
