package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/internal/services"
	testhelpers "github.com/K3nZo20/DbMetaTool/internal/testing"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func updateConfig() dbmeta.UpdateConfig {
	return dbmeta.UpdateConfig{
		Connection: serverConfig(),
		ScriptsDir: "/work/scripts",
	}
}

func TestUpdater_Update_TransactionPerFile(t *testing.T) {
	mfs := newMemFS()
	mfs.AddFile("/work/scripts/domains.sql", "A; B;")
	mfs.AddFile("/work/scripts/procedures.sql", "SET TERM ^^ ;\nP1 ^^\nSET TERM ; ^^\n")
	conn := &testhelpers.FakeConn{}
	connector := &testhelpers.FakeConnector{Conn: conn}

	report, err := services.NewUpdater(connector.Factory(nil), mfs, &testhelpers.RecordingLogger{}).
		Update(context.Background(), updateConfig())
	require.NoError(t, err)

	assert.Equal(t, dbmeta.ModeTransactional, report.Mode)
	require.Len(t, conn.Txs, 2)
	assert.Equal(t, []string{"A", "B", "P1"}, conn.Committed())
	assert.Empty(t, conn.Executed)
	assert.True(t, conn.Closed)
}

func TestUpdater_Update_EngineErrorsAreReported(t *testing.T) {
	mfs := newMemFS()
	mfs.AddFile("/work/scripts/tables.sql", "A; DUP; C;")
	conn := &testhelpers.FakeConn{ExecFunc: func(q string) error {
		if q == "DUP" {
			return errors.New("unsuccessful metadata update\nTable T already exists\nSQL error code = -607")
		}
		return nil
	}}
	connector := &testhelpers.FakeConnector{Conn: conn}
	logger := &testhelpers.RecordingLogger{}

	report, err := services.NewUpdater(connector.Factory(nil), mfs, logger).
		Update(context.Background(), updateConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, conn.Committed())
	require.Len(t, report.Files, 3)
	assert.Len(t, report.Files[1].EngineErrors, 1)
}

func TestUpdater_Update_ConnectFailure(t *testing.T) {
	connErr := errors.New("Your user name and password are not defined")
	connector := &testhelpers.FakeConnector{Err: connErr}

	report, err := services.NewUpdater(connector.Factory(nil), newMemFS(), &testhelpers.RecordingLogger{}).
		Update(context.Background(), updateConfig())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, connErr)
}

func TestUpdater_Update_InvalidConfig(t *testing.T) {
	connector := &testhelpers.FakeConnector{Conn: &testhelpers.FakeConn{}}

	_, err := services.NewUpdater(connector.Factory(nil), newMemFS(), &testhelpers.RecordingLogger{}).
		Update(context.Background(), dbmeta.UpdateConfig{})

	assert.ErrorIs(t, err, dbmeta.ErrInvalidConfig)
	assert.Zero(t, connector.Connects)
}
