package browserpool_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/achen-dev/gopool/browserpool"
	"github.com/achen-dev/gopool/pool"
)

func TestBrowserPoolBorrowReturn(t *testing.T) {
	debugURL := os.Getenv("CHROME_DEBUG_URL")
	if debugURL == "" {
		t.Skip("CHROME_DEBUG_URL not set; skipping test that needs a running Chrome with --remote-debugging-port")
	}

	factory := browserpool.NewFactory(context.Background(), debugURL)
	t.Cleanup(factory.Close)

	cfg := pool.DefaultConfig()
	cfg.MaxTotal = 1
	cfg.TestOnBorrow = true
	p := pool.NewPool(factory, cfg)
	t.Cleanup(p.Close)

	obj, err := p.Borrow()
	require.NoError(t, err)
	_, ok := obj.(*browserpool.Tab)
	require.True(t, ok)
	require.NoError(t, p.Return(obj))
}
