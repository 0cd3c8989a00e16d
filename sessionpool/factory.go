// Package sessionpool adapts database/sql connections to pool.Factory, so a
// pool.Pool can lend and recycle individual driver sessions instead of
// relying on database/sql's own (coarser) connection pooling. See
// SPEC_FULL.md §4.9.
package sessionpool

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Session is the resource type this factory hands to the pool: one
// checked-out driver connection. ID distinguishes Sessions in
// pool.DebugDump's output, since *sql.Conn itself prints uninformatively.
type Session struct {
	ID   uuid.UUID
	Conn *sql.Conn
}

// String implements fmt.Stringer so pool.DebugDump identifies a Session by
// its ID rather than a raw pointer.
func (s *Session) String() string {
	return fmt.Sprintf("session/%s", s.ID)
}

// Factory opens and validates Sessions against a shared *sql.DB handle.
// The underlying driver is irrelevant to the factory; NewFactory only
// needs a registered driver name and a data source name.
type Factory struct {
	db *sql.DB
}

// NewFactory opens db via driverName/dsn and returns a Factory over it.
// Closing the returned Factory closes the underlying *sql.DB; do this only
// after the owning pool.Pool has been closed.
func NewFactory(driverName, dsn string) (*Factory, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sessionpool: open %s: %w", driverName, err)
	}
	return &Factory{db: db}, nil
}

// Close closes the underlying *sql.DB.
func (f *Factory) Close() error {
	return f.db.Close()
}

// MakeObject implements pool.Factory.
func (f *Factory) MakeObject() (interface{}, error) {
	conn, err := f.db.Conn(context.Background())
	if err != nil {
		return nil, err
	}
	return &Session{ID: uuid.New(), Conn: conn}, nil
}

// DestroyObject implements pool.Factory.
func (f *Factory) DestroyObject(obj interface{}) error {
	return obj.(*Session).Conn.Close()
}

// ValidateObject implements pool.Factory by pinging the connection.
func (f *Factory) ValidateObject(obj interface{}) (bool, error) {
	err := obj.(*Session).Conn.PingContext(context.Background())
	return err == nil, err
}

// ActivateObject implements pool.Factory. database/sql connections have no
// native activate hook, so this is a no-op.
func (f *Factory) ActivateObject(obj interface{}) error {
	return nil
}

// PassivateObject implements pool.Factory. database/sql connections have
// no native passivate hook, so this is a no-op; a driver-specific factory
// could reset session state here (e.g. "RESET ALL" on Postgres).
func (f *Factory) PassivateObject(obj interface{}) error {
	return nil
}
