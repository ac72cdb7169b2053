package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

const (
	FirebirdImage    = "jacobalberty/firebird:v4.0"
	FirebirdPassword = "masterkey"
	FirebirdPort     = "3050/tcp"

	// FirebirdDataDir is the database directory inside the container.
	FirebirdDataDir = "/firebird/data"
)

type FirebirdContainer struct {
	testcontainers.Container
	Host string
	Port int
}

// StartFirebird starts a disposable Firebird server with SYSDBA/masterkey credentials.
func StartFirebird(ctx context.Context) (*FirebirdContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        FirebirdImage,
		ExposedPorts: []string{FirebirdPort},
		Env: map[string]string{
			"ISC_PASSWORD":      FirebirdPassword,
			"FIREBIRD_DATABASE": "placeholder.fdb",
		},
		WaitingFor: wait.ForListeningPort(FirebirdPort).WithStartupTimeout(90 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start firebird: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, FirebirdPort)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &FirebirdContainer{Container: ctr, Host: host, Port: port.Int()}, nil
}

// Connection returns connection parameters for the container without a database set.
func (c *FirebirdContainer) Connection() *dbmeta.ConnectionConfig {
	cfg := dbmeta.NewConnectionConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.Password = FirebirdPassword
	return cfg
}
