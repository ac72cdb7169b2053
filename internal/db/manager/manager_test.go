package manager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K3nZo20/DbMetaTool/internal/db"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// createDriver records the DSNs it was opened with.
type createDriver struct {
	mu     sync.Mutex
	err    error
	dsns   []string
	closed int
}

func (d *createDriver) Open(name string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dsns = append(d.dsns, name)
	if d.err != nil {
		return nil, d.err
	}
	return &createConn{d: d}, nil
}

type createConn struct{ d *createDriver }

func (c *createConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *createConn) Begin() (driver.Tx, error) { return nil, errors.New("not supported") }
func (c *createConn) Close() error {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.closed++
	return nil
}

var seq atomic.Int64

func newTestManager(d *createDriver) *Manager {
	name := fmt.Sprintf("createdb-%d", seq.Add(1))
	sql.Register(name, d)
	return &Manager{driverName: name}
}

func testConfig() *dbmeta.ConnectionConfig {
	cfg := dbmeta.NewConnectionConfig()
	cfg.Database = "/firebird/data/database.fdb"
	return cfg
}

func TestNew_UsesCreateDriver(t *testing.T) {
	assert.Equal(t, db.CreateDriverName, New().driverName)
}

func TestManager_Create(t *testing.T) {
	d := &createDriver{}
	mgr := newTestManager(d)

	require.NoError(t, mgr.Create(context.Background(), testConfig()))

	assert.Equal(t, []string{"SYSDBA:masterkey@localhost:3050//firebird/data/database.fdb?charset=UTF8"}, d.dsns)
	assert.Equal(t, 1, d.closed, "the attach connection is released")
}

func TestManager_Create_ServerError(t *testing.T) {
	serverErr := errors.New("I/O error during \"create\" operation for file \"/firebird/data/database.fdb\"")
	mgr := newTestManager(&createDriver{err: serverErr})

	err := mgr.Create(context.Background(), testConfig())
	require.Error(t, err)

	assert.ErrorIs(t, err, dbmeta.ErrDatabaseCreate)
	assert.ErrorIs(t, err, serverErr)
	assert.Contains(t, err.Error(), "/firebird/data/database.fdb")
}

func TestManager_Create_RequiresPath(t *testing.T) {
	mgr := newTestManager(&createDriver{})

	for _, cfg := range []*dbmeta.ConnectionConfig{nil, dbmeta.NewConnectionConfig()} {
		err := mgr.Create(context.Background(), cfg)
		assert.ErrorIs(t, err, dbmeta.ErrDatabaseCreate)
		assert.ErrorIs(t, err, dbmeta.ErrInvalidConfig)
	}
}

func TestManager_Create_UnknownDriver(t *testing.T) {
	mgr := &Manager{driverName: "no-such-driver"}

	err := mgr.Create(context.Background(), testConfig())
	assert.ErrorIs(t, err, dbmeta.ErrDatabaseCreate)
}
