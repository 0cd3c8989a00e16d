package sessionpool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/achen-dev/gopool/pool"
	"github.com/achen-dev/gopool/sessionpool"
)

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()
	factory, err := sessionpool.NewSQLiteFactory(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { factory.Close() })

	cfg := pool.DefaultConfig()
	cfg.MaxTotal = 2
	cfg.TestOnBorrow = true
	p := pool.NewPool(factory, cfg)
	t.Cleanup(p.Close)
	return p
}

func TestSessionPoolBorrowReturn(t *testing.T) {
	p := newTestPool(t)

	obj, err := p.Borrow()
	require.NoError(t, err)
	session, ok := obj.(*sessionpool.Session)
	require.True(t, ok)
	require.NotNil(t, session.Conn)

	require.NoError(t, p.Return(obj))
	require.Equal(t, 1, p.GetNumIdle())
	require.Equal(t, 0, p.GetNumActive())
}

func TestSessionPoolRespectsMaxTotal(t *testing.T) {
	p := newTestPool(t)
	p.Config.BlockWhenExhausted = false

	first, err := p.Borrow()
	require.NoError(t, err)
	second, err := p.Borrow()
	require.NoError(t, err)

	_, err = p.Borrow()
	require.Error(t, err)

	require.NoError(t, p.Return(first))
	require.NoError(t, p.Return(second))
}

func TestSessionPoolInvalidateDeadSession(t *testing.T) {
	p := newTestPool(t)

	obj, err := p.Borrow()
	require.NoError(t, err)
	session := obj.(*sessionpool.Session)
	require.NoError(t, session.Conn.Close()) // simulate a dead underlying connection

	require.NoError(t, p.InvalidateObject(obj))
	require.Equal(t, 1, p.GetDestroyedCount())
}
