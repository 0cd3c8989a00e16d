package messagingpool_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/achen-dev/gopool/messagingpool"
	"github.com/achen-dev/gopool/pool"
)

func echoServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMessagingPoolBorrowReturn(t *testing.T) {
	srv := echoServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	factory := messagingpool.NewFactory(nil, url, nil)
	cfg := pool.DefaultConfig()
	cfg.MaxTotal = 2
	p := pool.NewPool(factory, cfg)
	t.Cleanup(p.Close)

	obj, err := p.Borrow()
	require.NoError(t, err)
	session, ok := obj.(*messagingpool.Session)
	require.True(t, ok)

	require.NoError(t, session.Conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	_, msg, err := session.Conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "hello", string(msg))

	require.NoError(t, p.Return(obj))
	require.Equal(t, 1, p.GetNumIdle())
}
