package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/K3nZo20/DbMetaTool/internal/config"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// ConnectionStringEnvVar is the fallback for --connection-string.
const ConnectionStringEnvVar = "DBMETA_CONNECTION_STRING"

// ServerFlags holds the build-db server flags. Zero values mean "not given".
type ServerFlags struct {
	Host     string
	Port     int
	User     string
	Password string
	Charset  string
}

// EnvVars holds the environment variables consulted during resolution.
// ISC_USER and ISC_PASSWORD are the standard Firebird client variables.
type EnvVars struct {
	ConnectionString string // DBMETA_CONNECTION_STRING
	Host             string // DBMETA_HOST
	Port             string // DBMETA_PORT
	ISCUser          string // ISC_USER
	ISCPassword      string // ISC_PASSWORD
	Charset          string // DBMETA_CHARSET
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		ConnectionString: os.Getenv(ConnectionStringEnvVar),
		Host:             os.Getenv("DBMETA_HOST"),
		Port:             os.Getenv("DBMETA_PORT"),
		ISCUser:          os.Getenv("ISC_USER"),
		ISCPassword:      os.Getenv("ISC_PASSWORD"),
		Charset:          os.Getenv("DBMETA_CHARSET"),
	}
}

// ResolveConnectionString returns the connection for export-scripts and
// update-db. Precedence: flag > DBMETA_CONNECTION_STRING > dbmeta.yaml.
func ResolveConnectionString(flag string, env *EnvVars, project *config.ProjectConfig) (*dbmeta.ConnectionConfig, error) {
	connStr := flag
	if connStr == "" && env != nil {
		connStr = env.ConnectionString
	}
	if connStr == "" && project != nil {
		connStr = project.ConnectionString
	}
	if connStr == "" {
		return nil, fmt.Errorf("no connection string: pass --connection-string or set %s: %w",
			ConnectionStringEnvVar, dbmeta.ErrUsage)
	}

	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	return cfg, nil
}

// ResolveServerConfig builds the build-db connection for databasePath.
// Precedence for each parameter: flag > environment > dbmeta.yaml > default.
func ResolveServerConfig(flags *ServerFlags, env *EnvVars, project *config.ProjectConfig, databasePath string) (*dbmeta.ConnectionConfig, error) {
	if flags == nil {
		flags = &ServerFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var sc config.ServerConfig
	if project != nil {
		sc = project.Server
	}

	cfg := dbmeta.NewConnectionConfig()
	cfg.Database = databasePath

	cfg.Host = firstNonEmpty(flags.Host, env.Host, sc.Host, dbmeta.DefaultHost)
	cfg.Username = firstNonEmpty(flags.User, env.ISCUser, sc.User, dbmeta.DefaultUser)
	cfg.Password = firstNonEmpty(flags.Password, env.ISCPassword, sc.Password, dbmeta.DefaultPassword)
	cfg.Charset = firstNonEmpty(flags.Charset, env.Charset, sc.Charset, dbmeta.DefaultCharset)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.Port != "":
		port, err := strconv.Atoi(env.Port)
		if err != nil {
			return nil, fmt.Errorf("invalid $DBMETA_PORT value '%s': must be an integer: %w", env.Port, dbmeta.ErrInvalidConfig)
		}
		cfg.Port = port
	case sc.Port != 0:
		cfg.Port = sc.Port
	default:
		cfg.Port = dbmeta.DefaultPort
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
