package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/internal/files/filesystem"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	testhelpers "github.com/K3nZo20/DbMetaTool/internal/testing"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// cliHarness replaces every external dependency of the commands.
type cliHarness struct {
	fs        *filesystem.MemoryFileSystem
	conn      *testhelpers.FakeConn
	connector *testhelpers.FakeConnector
	creator   *testhelpers.FakeCreator
	configs   []*dbmeta.ConnectionConfig
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	dir       string
}

var resolverEnvVars = []string{
	"DBMETA_CONNECTION_STRING",
	"DBMETA_HOST",
	"DBMETA_PORT",
	"ISC_USER",
	"ISC_PASSWORD",
	"DBMETA_CHARSET",
	"NO_COLOR",
	"CI",
}

func setupCLI(t *testing.T) *cliHarness {
	t.Helper()

	for _, name := range resolverEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	h := &cliHarness{
		fs:     filesystem.NewMemoryFileSystem("/work"),
		conn:   &testhelpers.FakeConn{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		dir:    t.TempDir(),
	}
	h.connector = &testhelpers.FakeConnector{Conn: h.conn}
	h.creator = &testhelpers.FakeCreator{OnCreate: func(cfg *dbmeta.ConnectionConfig) {
		h.fs.AddFile(cfg.Database, "")
	}}

	origDir, origFactory, origCreator, origFS := projectDir, connectorFactory, newCreator, newFileSystem
	projectDir = h.dir
	connectorFactory = func(dbmeta.Logger) services.ConnectorFactory { return h.connector.Factory(&h.configs) }
	newCreator = func() dbmeta.DatabaseCreator { return h.creator }
	newFileSystem = func() filesystem.FileSystemProvider { return h.fs }

	rootFlags = rootFlagValues{logFormat: logFormatConsole}
	buildDbFlags = buildDbFlagValues{}
	exportScriptsFlags = exportScriptsFlagValues{}
	updateDbFlags = updateDbFlagValues{}

	rootCmd.SetOut(h.stdout)
	rootCmd.SetErr(h.stderr)

	t.Cleanup(func() {
		projectDir, connectorFactory, newCreator, newFileSystem = origDir, origFactory, origCreator, origFS
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return h
}

func (h *cliHarness) writeProjectFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, name), []byte(content), 0o644))
}

// markFlag sets a persistent flag as if it was given on the command line.
func markFlag(t *testing.T, name, value string) {
	t.Helper()
	f := rootCmd.PersistentFlags().Lookup(name)
	require.NotNil(t, f)
	require.NoError(t, rootCmd.PersistentFlags().Set(name, value))
	t.Cleanup(func() {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
