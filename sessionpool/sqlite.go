package sessionpool

import (
	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteFactory returns a Factory backed by mattn/go-sqlite3. Pass
// ":memory:" to get a process-local in-memory database, handy for tests
// and for the CLI demo that ships with this module.
func NewSQLiteFactory(dsn string) (*Factory, error) {
	return NewFactory("sqlite3", dsn)
}
