package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// dsnScheme is the scheme the firebirdsql driver prepends before parsing a DSN.
const dsnScheme = "firebird://"

// ParseConnectionString parses a Firebird connection string in either the
// ADO.NET key=value form or the native driver DSN form.
//
// Supported formats:
//   - ADO.NET: User=SYSDBA;Password=masterkey;Database=/data/app.fdb;DataSource=localhost;Port=3050;Charset=UTF8
//   - DSN: SYSDBA:masterkey@localhost:3050//data/app.fdb?charset=UTF8
//
// A DSN is passed to the driver unchanged; its parsed fields are informational.
func ParseConnectionString(connStr string) (*dbmeta.ConnectionConfig, error) {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return nil, fmt.Errorf("connection string is empty: %w", dbmeta.ErrInvalidConfig)
	}

	switch {
	case strings.HasPrefix(connStr, dsnScheme):
		return parseDSN(connStr)
	case looksLikeADONET(connStr):
		return parseADONET(connStr)
	case strings.Contains(connStr, "@"):
		return parseDSN(connStr)
	}

	return nil, fmt.Errorf("unrecognized connection string format: %w", dbmeta.ErrInvalidConfig)
}

// looksLikeADONET reports whether the first segment is a known ADO.NET key.
func looksLikeADONET(connStr string) bool {
	first, _, _ := strings.Cut(connStr, ";")
	key, _, ok := strings.Cut(first, "=")
	if !ok {
		return false
	}
	_, known := adoKeys[normalizeKey(key)]
	return known
}

type adoField int

const (
	adoUser adoField = iota
	adoPassword
	adoDatabase
	adoHost
	adoPort
	adoCharset
)

var adoKeys = map[string]adoField{
	"user":           adoUser,
	"userid":         adoUser,
	"username":       adoUser,
	"uid":            adoUser,
	"password":       adoPassword,
	"pwd":            adoPassword,
	"database":       adoDatabase,
	"initialcatalog": adoDatabase,
	"datasource":     adoHost,
	"server":         adoHost,
	"host":           adoHost,
	"port":           adoPort,
	"charset":        adoCharset,
	"characterset":   adoCharset,
}

// normalizeKey lowercases and drops spaces so "User ID" matches "userid".
func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", ""))
}

// parseADONET parses the FbConnectionStringBuilder form. Unknown keys are
// forwarded to the driver as DSN parameters.
func parseADONET(connStr string) (*dbmeta.ConnectionConfig, error) {
	config := dbmeta.NewConnectionConfig()

	for _, part := range strings.Split(connStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid segment %q in connection string: %w", part, dbmeta.ErrInvalidConfig)
		}
		value = strings.TrimSpace(value)

		field, known := adoKeys[normalizeKey(key)]
		if !known {
			config.AdditionalParams[strings.ToLower(strings.TrimSpace(key))] = value
			continue
		}

		switch field {
		case adoUser:
			config.Username = value
		case adoPassword:
			config.Password = value
		case adoDatabase:
			config.Database = value
		case adoHost:
			config.Host = value
		case adoPort:
			port, err := parsePort(value)
			if err != nil {
				return nil, err
			}
			config.Port = port
		case adoCharset:
			config.Charset = value
		}
	}

	if config.Database == "" {
		return nil, fmt.Errorf("connection string has no Database: %w", dbmeta.ErrInvalidConfig)
	}
	return config, nil
}

// parseDSN extracts informational fields from a driver DSN.
// Format: user:password@host[:port]/path[?param=value&...]
func parseDSN(connStr string) (*dbmeta.ConnectionConfig, error) {
	raw := strings.TrimPrefix(connStr, dsnScheme)

	u, err := url.Parse(dsnScheme + raw)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w: %w", err, dbmeta.ErrInvalidConfig)
	}

	config := dbmeta.NewConnectionConfig()
	config.RawDSN = raw

	if u.Hostname() != "" {
		config.Host = u.Hostname()
	}
	if u.Port() != "" {
		port, err := parsePort(u.Port())
		if err != nil {
			return nil, err
		}
		config.Port = port
	}
	if u.User != nil {
		config.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			config.Password = pass
		}
	}
	config.Database = strings.TrimPrefix(u.Path, "/")
	if config.Database == "" {
		return nil, fmt.Errorf("DSN has no database path: %w", dbmeta.ErrInvalidConfig)
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		if strings.EqualFold(key, "charset") {
			config.Charset = values[0]
			continue
		}
		config.AdditionalParams[key] = values[0]
	}

	return config, nil
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q: %w", value, dbmeta.ErrInvalidConfig)
	}
	return port, nil
}

// BuildDSN renders config as a firebirdsql driver DSN. RawDSN wins when set.
func BuildDSN(config *dbmeta.ConnectionConfig) string {
	if config.RawDSN != "" {
		return config.RawDSN
	}

	host := config.Host
	if host == "" {
		host = dbmeta.DefaultHost
	}
	port := config.Port
	if port == 0 {
		port = dbmeta.DefaultPort
	}

	u := &url.URL{
		Scheme: "firebird",
		Host:   fmt.Sprintf("%s:%d", host, port),
		// The driver strips one leading slash, so absolute paths keep theirs.
		Path: "/" + config.Database,
	}
	if config.Username != "" {
		u.User = url.UserPassword(config.Username, config.Password)
	}

	query := url.Values{}
	if config.Charset != "" {
		query.Set("charset", config.Charset)
	}
	for key, value := range config.AdditionalParams {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	return strings.TrimPrefix(u.String(), dsnScheme)
}

// Redact returns a printable description of config without the password.
func Redact(config *dbmeta.ConnectionConfig) string {
	port := config.Port
	if port == 0 {
		port = dbmeta.DefaultPort
	}
	return fmt.Sprintf("%s@%s:%d/%s", config.Username, config.Host, port, config.Database)
}
