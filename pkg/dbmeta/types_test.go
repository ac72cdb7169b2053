package dbmeta_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func TestBuildConfig_Validate(t *testing.T) {
	valid := dbmeta.BuildConfig{
		DatabaseDir: "db",
		ScriptsDir:  "scripts",
		Connection:  dbmeta.NewConnectionConfig(),
	}
	require.NoError(t, valid.Validate())

	empty := dbmeta.BuildConfig{RunOptions: dbmeta.RunOptions{Timeout: -time.Second}}
	err := empty.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbmeta.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "DatabaseDir is required")
	assert.Contains(t, err.Error(), "ScriptsDir is required")
	assert.Contains(t, err.Error(), "Connection is required")
	assert.Contains(t, err.Error(), "timeout cannot be negative")
}

func TestExportConfig_Validate(t *testing.T) {
	cfg := dbmeta.ExportConfig{Connection: dbmeta.NewConnectionConfig(), OutputDir: "out"}
	require.NoError(t, cfg.Validate())

	cfg.OutputDir = ""
	cfg.ConnectRetries = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OutputDir is required")
	assert.Contains(t, err.Error(), "connect retries cannot be negative")
}

func TestUpdateConfig_Validate(t *testing.T) {
	cfg := dbmeta.UpdateConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbmeta.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "ScriptsDir is required")
}

func TestNewConnectionConfig_Defaults(t *testing.T) {
	cfg := dbmeta.NewConnectionConfig()
	assert.Equal(t, dbmeta.DefaultHost, cfg.Host)
	assert.Equal(t, dbmeta.DefaultPort, cfg.Port)
	assert.Equal(t, dbmeta.DefaultUser, cfg.Username)
	assert.Equal(t, dbmeta.DefaultPassword, cfg.Password)
	assert.Equal(t, dbmeta.DefaultCharset, cfg.Charset)
	assert.NotNil(t, cfg.AdditionalParams)
}

func TestExecMode_String(t *testing.T) {
	assert.Equal(t, "plain", dbmeta.ModePlain.String())
	assert.Equal(t, "transactional", dbmeta.ModeTransactional.String())
	assert.Equal(t, "Unknown(7)", dbmeta.ExecMode(7).String())
}

func TestExecutionOrder(t *testing.T) {
	assert.Equal(t, []string{"domains.sql", "tables.sql", "procedures.sql"}, dbmeta.ExecutionOrder)
}
