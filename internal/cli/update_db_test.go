package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func TestUpdateDb_ReportsSkippedStatements(t *testing.T) {
	h := setupCLI(t)
	h.fs.AddFile("/work/scripts/domains.sql", "A; DUP; C;")
	h.conn.ExecFunc = func(q string) error {
		if q == "DUP" {
			return errors.New("attempt to store duplicate value\nSQL error code = -803")
		}
		return nil
	}
	updateDbFlags.connectionString = adoConnectionString
	updateDbFlags.scriptsDir = "/work/scripts"

	require.NoError(t, runUpdateDb(updateDbCmd, nil))

	assert.Equal(t, "Database updated successfully.\n", h.stdout.String())
	assert.Equal(t, []string{"A", "C"}, h.conn.Committed())
	assert.Contains(t, h.stderr.String(), "[ERROR] SQL error in domains.sql:")
	assert.Contains(t, h.stderr.String(), "code: -803")
	assert.Contains(t, h.stderr.String(), "1 statement(s) were rejected by the engine and skipped")
}

func TestUpdateDb_FatalErrorFails(t *testing.T) {
	h := setupCLI(t)
	h.fs.AddFile("/work/scripts/domains.sql", "A;")
	h.fs.SetReadError("/work/scripts/domains.sql", errors.New("input/output error"))
	updateDbFlags.connectionString = adoConnectionString
	updateDbFlags.scriptsDir = "/work/scripts"

	err := runUpdateDb(updateDbCmd, nil)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "update-db failed")
	assert.Equal(t, dbmeta.ExitFailure, dbmeta.ExitCodeForError(err))
	assert.Contains(t, h.stderr.String(), "Rolled back changes for domains.sql")
	assert.Empty(t, h.stdout.String())
}

func TestUpdateDb_ConnectionFailure(t *testing.T) {
	h := setupCLI(t)
	h.connector.Err = errors.New("connection refused")
	updateDbFlags.connectionString = adoConnectionString
	updateDbFlags.scriptsDir = "/work/scripts"

	err := runUpdateDb(updateDbCmd, nil)

	assert.Error(t, err)
	assert.Equal(t, dbmeta.ExitFailure, dbmeta.ExitCodeForError(err))
}
