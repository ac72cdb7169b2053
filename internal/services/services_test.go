package services_test

import (
	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	testhelpers "github.com/K3nZo20/DbMetaTool/internal/testing"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func newMemFS() *filesystem.MemoryFileSystem {
	return filesystem.NewMemoryFileSystem("/work")
}

func serverConfig() *dbmeta.ConnectionConfig {
	return dbmeta.NewConnectionConfig()
}

func catalogRows(values ...[]any) func([]any) (*testhelpers.FakeRows, error) {
	return func([]any) (*testhelpers.FakeRows, error) {
		return testhelpers.NewFakeRows(values...), nil
	}
}

// catalogConn serves a small schema: one domain, one table using it, one
// procedure and one procedure without source.
func catalogConn() *testhelpers.FakeConn {
	router := &testhelpers.QueryRouter{Routes: []testhelpers.Route{
		{Contains: "FROM RDB$FIELDS", Rows: catalogRows(
			[]any{"D_ID", int64(8), int64(4), nil},
		)},
		{Contains: "FROM RDB$RELATIONS", Rows: catalogRows(
			[]any{"CUSTOMERS"},
		)},
		{Contains: "FROM RDB$RELATION_FIELDS", Rows: catalogRows(
			[]any{"ID", "D_ID", int64(8), int64(4), nil},
			[]any{"NAME", "RDB$1", int64(37), int64(160), int64(40)},
			[]any{"BLOB_COL", "RDB$2", int64(261), int64(8), nil},
		)},
		{Contains: "FROM RDB$PROCEDURES", Rows: catalogRows(
			[]any{"P_TOUCH", "AS BEGIN END"},
			[]any{"P_EXTERNAL", nil},
		)},
	}}
	return &testhelpers.FakeConn{QueryFunc: router.Query}
}
