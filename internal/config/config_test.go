package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `server:
  host: fbhost
  port: 3051
  user: builder
  password: secret
  charset: WIN1250

connection_string: "User=SYSDBA;Password=masterkey;Database=/data/app.fdb;DataSource=fbhost"
timeout: 10m
connect_retries: 4
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ServerConfig{Host: "fbhost", Port: 3051, User: "builder", Password: "secret", Charset: "WIN1250"}, cfg.Server)
	assert.Contains(t, cfg.ConnectionString, "Database=/data/app.fdb")
	assert.Equal(t, 4, cfg.ConnectRetries)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  host: db\n"))
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Server.Host)
	assert.Zero(t, cfg.Server.Port)
	assert.Empty(t, cfg.ConnectionString)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, timeout)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
	assert.Contains(t, err.Error(), ConfigFileName)
}

func TestLoad_NegativeRetries(t *testing.T) {
	_, err := Load(writeConfig(t, "connect_retries: -1\n"))
	assert.ErrorContains(t, err, "connect_retries")
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{timeout: "", want: 0},
		{timeout: "30s", want: 30 * time.Second},
		{timeout: "soon", wantErr: true},
		{timeout: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			got, err := (&ProjectConfig{Timeout: tt.timeout}).TimeoutDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var nilConfig *ProjectConfig
	got, err := nilConfig.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, got)
}
