package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/internal/testinfra"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

var (
	testContainerOnce sync.Once
	testContainer     *testinfra.FirebirdContainer
	testContainerErr  error
)

func getOrStartTestContainer() (*testinfra.FirebirdContainer, error) {
	testContainerOnce.Do(func() {
		testContainer, testContainerErr = testinfra.StartFirebird(context.Background())
	})
	return testContainer, testContainerErr
}

// GetTestServer returns connection parameters of a Firebird server for tests.
// DatabaseDir is the server-side directory where test databases may be created.
// Priority: DBMETA_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestServer(t *testing.T) (conn *dbmeta.ConnectionConfig, databaseDir string) {
	t.Helper()

	if connString := os.Getenv("DBMETA_TEST_CONN"); connString != "" {
		cfg, err := db.ParseConnectionString(connString)
		if err != nil {
			t.Fatalf("invalid DBMETA_TEST_CONN: %v", err)
		}
		dir := os.Getenv("DBMETA_TEST_DATA_DIR")
		if dir == "" {
			dir = t.TempDir()
		}
		return cfg, dir
	}

	ctr, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("DBMETA_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return ctr.Connection(), testinfra.FirebirdDataDir
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireFirebird combines SkipIfShort and GetTestServer for convenience.
func RequireFirebird(t *testing.T) (*dbmeta.ConnectionConfig, string) {
	t.Helper()

	SkipIfShort(t)
	return GetTestServer(t)
}
