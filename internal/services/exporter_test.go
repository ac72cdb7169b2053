package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/internal/checksum"
	"github.com/K3nZo20/DbMetaTool/internal/ddl"
	"github.com/K3nZo20/DbMetaTool/internal/services"
	testhelpers "github.com/K3nZo20/DbMetaTool/internal/testing"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func exportConfig() dbmeta.ExportConfig {
	return dbmeta.ExportConfig{
		Connection: serverConfig(),
		OutputDir:  "/work/out",
	}
}

func TestExporter_Export_WritesScriptsAndMetadata(t *testing.T) {
	mfs := newMemFS()
	conn := catalogConn()
	connector := &testhelpers.FakeConnector{Conn: conn}
	logger := &testhelpers.RecordingLogger{}

	result, err := services.NewExporter(connector.Factory(nil), mfs, logger).
		Export(context.Background(), exportConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/work/out/domains.sql",
		"/work/out/tables.sql",
		"/work/out/procedures.sql",
		"/work/out/metadata.json",
	}, result.Files)
	assert.Equal(t, 1, result.Domains)
	assert.Equal(t, 1, result.Tables)
	assert.Equal(t, 1, result.Procedures, "procedure without source is dropped")

	domains, err := mfs.ReadFile("/work/out/domains.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE DOMAIN \"D_ID\" AS INTEGER;\n", string(domains))

	tables, err := mfs.ReadFile("/work/out/tables.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE \"CUSTOMERS\" (\n"+
		"  \"ID\" \"D_ID\",\n"+
		"  \"NAME\" VARCHAR(40),\n"+
		"  \"BLOB_COL\" UNKNOWN\n"+
		");\n", string(tables))

	procedures, err := mfs.ReadFile("/work/out/procedures.sql")
	require.NoError(t, err)
	assert.Equal(t, "SET TERM ^^ ;\n"+
		"CREATE OR ALTER PROCEDURE \"P_TOUCH\"\n"+
		"AS BEGIN END ^^\n"+
		"SET TERM ; ^^\n", string(procedures))
	assert.NotContains(t, string(procedures), "P_EXTERNAL")

	raw, err := mfs.ReadFile("/work/out/metadata.json")
	require.NoError(t, err)
	var metadata ddl.Metadata
	require.NoError(t, json.Unmarshal(raw, &metadata))
	require.Len(t, metadata.Tables, 1)
	assert.Equal(t, "CUSTOMERS", metadata.Tables[0].Name)
	assert.Len(t, metadata.Tables[0].Columns, 3)
	require.Len(t, metadata.Procedures, 1)
	assert.Equal(t, "AS BEGIN END", metadata.Procedures[0].Source)

	require.Len(t, result.Checksums, 4)
	assert.Equal(t, checksum.New().CalculateNormalized(tables), result.Checksums["tables.sql"])

	assert.True(t, conn.Closed)
	assert.Empty(t, conn.Executed, "export never executes statements")
}

func TestExporter_Export_WarnsOnUnknownTypes(t *testing.T) {
	logger := &testhelpers.RecordingLogger{}
	connector := &testhelpers.FakeConnector{Conn: catalogConn()}

	result, err := services.NewExporter(connector.Factory(nil), newMemFS(), logger).
		Export(context.Background(), exportConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"column CUSTOMERS.BLOB_COL"}, result.UnknownTypes)
	assert.True(t, logger.Contains("Warning: unsupported field type for column CUSTOMERS.BLOB_COL, exported as UNKNOWN"))
}

func TestExporter_Export_CatalogFailureWritesNothing(t *testing.T) {
	mfs := newMemFS()
	catalogErr := errors.New("no permission for read access to RDB$FIELDS")
	conn := &testhelpers.FakeConn{QueryFunc: func(string, []any) (*testhelpers.FakeRows, error) {
		return nil, catalogErr
	}}
	connector := &testhelpers.FakeConnector{Conn: conn}

	result, err := services.NewExporter(connector.Factory(nil), mfs, &testhelpers.RecordingLogger{}).
		Export(context.Background(), exportConfig())
	require.Error(t, err)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbmeta.ErrCatalogRead)
	assert.ErrorIs(t, err, catalogErr)
	assert.Empty(t, mfs.Files())
	assert.True(t, conn.Closed)
}

func TestExporter_Export_EmptyDatabase(t *testing.T) {
	mfs := newMemFS()
	connector := &testhelpers.FakeConnector{Conn: &testhelpers.FakeConn{}}

	result, err := services.NewExporter(connector.Factory(nil), mfs, &testhelpers.RecordingLogger{}).
		Export(context.Background(), exportConfig())
	require.NoError(t, err)

	assert.Len(t, result.Files, 4)
	domains, err := mfs.ReadFile("/work/out/domains.sql")
	require.NoError(t, err)
	assert.Empty(t, domains)

	raw, err := mfs.ReadFile("/work/out/metadata.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Domains": [], "Tables": [], "Procedures": []}`, string(raw))
}

func TestExporter_Export_ConnectFailure(t *testing.T) {
	connErr := errors.New("connection refused")
	connector := &testhelpers.FakeConnector{Err: connErr}

	_, err := services.NewExporter(connector.Factory(nil), newMemFS(), &testhelpers.RecordingLogger{}).
		Export(context.Background(), exportConfig())

	assert.ErrorIs(t, err, connErr)
}

func TestExporter_Export_InvalidConfig(t *testing.T) {
	connector := &testhelpers.FakeConnector{Conn: &testhelpers.FakeConn{}}

	_, err := services.NewExporter(connector.Factory(nil), newMemFS(), &testhelpers.RecordingLogger{}).
		Export(context.Background(), dbmeta.ExportConfig{})

	assert.ErrorIs(t, err, dbmeta.ErrInvalidConfig)
	assert.Zero(t, connector.Connects)
}
