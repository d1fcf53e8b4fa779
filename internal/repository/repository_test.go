package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/config"
)

// txLog 记录事务驱动收到的提交和回滚
type txLog struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

type txDriver struct{ log *txLog }

func (d txDriver) Open(string) (driver.Conn, error) { return txConn(d), nil }

type txConn struct{ log *txLog }

func (c txConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("不支持预编译语句") }
func (c txConn) Close() error                        { return nil }
func (c txConn) Begin() (driver.Tx, error)           { return fakeTx(c), nil }

type fakeTx struct{ log *txLog }

func (t fakeTx) Commit() error {
	t.log.mu.Lock()
	defer t.log.mu.Unlock()
	t.log.commits++
	return nil
}

func (t fakeTx) Rollback() error {
	t.log.mu.Lock()
	defer t.log.mu.Unlock()
	t.log.rollbacks++
	return nil
}

func newTestRepository(t *testing.T) (*Repository, *txLog) {
	t.Helper()

	log := &txLog{}
	db := sql.OpenDB(connector{log: log})
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 3
	cfg.Database.TransactionTimeout = 7
	return NewRepository(cfg, db), log
}

type connector struct{ log *txLog }

func (c connector) Connect(context.Context) (driver.Conn, error) { return txConn(c), nil }
func (c connector) Driver() driver.Driver                        { return txDriver(c) }

func TestQueryContextUsesQueryTimeout(t *testing.T) {
	repo, _ := newTestRepository(t)

	ctx, cancel := repo.queryContext()
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(3*time.Second), deadline, time.Second)
}

func TestWithTxCommits(t *testing.T) {
	repo, log := newTestRepository(t)

	called := false
	err := repo.withTx(func(ctx context.Context, tx *sql.Tx) error {
		called = true
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(7*time.Second), deadline, time.Second)
		return nil
	})
	require.NoError(t, err)

	assert.True(t, called)
	assert.Equal(t, 1, log.commits)
	assert.Zero(t, log.rollbacks)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	repo, log := newTestRepository(t)

	boom := errors.New("写入失败")
	err := repo.withTx(func(context.Context, *sql.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Zero(t, log.commits)
	assert.Equal(t, 1, log.rollbacks)
}
