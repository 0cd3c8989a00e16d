// Package messagingpool adapts long-lived websocket connections to
// pool.Factory, so a pool.Pool can lend and recycle messaging sessions
// instead of dialing fresh on every request. See SPEC_FULL.md §4.11.
package messagingpool

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session is the resource type this factory hands to the pool: one open
// websocket connection. ID distinguishes Sessions in pool.DebugDump's
// output, since *websocket.Conn itself prints uninformatively.
type Session struct {
	ID   uuid.UUID
	Conn *websocket.Conn
}

// String implements fmt.Stringer so pool.DebugDump identifies a Session by
// its ID rather than a raw pointer.
func (s *Session) String() string {
	return fmt.Sprintf("session/%s", s.ID)
}

// Factory dials url with dialer for every new Session.
type Factory struct {
	dialer      *websocket.Dialer
	url         string
	header      http.Header
	pingTimeout time.Duration
}

// NewFactory returns a Factory that dials url on demand using dialer. A
// nil dialer uses websocket.DefaultDialer.
func NewFactory(dialer *websocket.Dialer, url string, header http.Header) *Factory {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Factory{dialer: dialer, url: url, header: header, pingTimeout: 5 * time.Second}
}

// MakeObject implements pool.Factory.
func (f *Factory) MakeObject() (interface{}, error) {
	conn, _, err := f.dialer.Dial(f.url, f.header)
	if err != nil {
		return nil, err
	}
	return &Session{ID: uuid.New(), Conn: conn}, nil
}

// DestroyObject implements pool.Factory: it sends a close frame on a
// best-effort basis and closes the socket.
func (f *Factory) DestroyObject(obj interface{}) error {
	session := obj.(*Session)
	deadline := time.Now().Add(f.pingTimeout)
	_ = session.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return session.Conn.Close()
}

// ValidateObject implements pool.Factory by round-tripping a ping/pong
// control frame.
func (f *Factory) ValidateObject(obj interface{}) (bool, error) {
	session := obj.(*Session)
	pong := make(chan struct{}, 1)
	session.Conn.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})
	if err := session.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(f.pingTimeout)); err != nil {
		return false, err
	}
	_ = session.Conn.SetReadDeadline(time.Now().Add(f.pingTimeout))
	if _, _, err := session.Conn.ReadMessage(); err != nil {
		select {
		case <-pong:
			return true, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// ActivateObject implements pool.Factory by clearing the read deadline that
// PassivateObject set.
func (f *Factory) ActivateObject(obj interface{}) error {
	return obj.(*Session).Conn.SetReadDeadline(time.Time{})
}

// PassivateObject implements pool.Factory by setting a read deadline
// pingTimeout from now. It does not read or drain pending messages.
func (f *Factory) PassivateObject(obj interface{}) error {
	session := obj.(*Session)
	return session.Conn.SetReadDeadline(time.Now().Add(f.pingTimeout))
}
