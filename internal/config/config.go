package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ServerConfig holds build-db connection defaults for the Firebird server.
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password,omitempty"`
	Charset  string `yaml:"charset"`
}

type ProjectConfig struct {
	Server ServerConfig `yaml:"server"`
	// ConnectionString is the default for export-scripts and update-db.
	ConnectionString string `yaml:"connection_string,omitempty"`
	Timeout          string `yaml:"timeout"`
	ConnectRetries   int    `yaml:"connect_retries"`
}

const ConfigFileName = "dbmeta.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	if cfg.ConnectRetries < 0 {
		return nil, fmt.Errorf("invalid %s: connect_retries cannot be negative", ConfigFileName)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in %s: %w", c.Timeout, ConfigFileName, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q in %s: cannot be negative", c.Timeout, ConfigFileName)
	}
	return d, nil
}
