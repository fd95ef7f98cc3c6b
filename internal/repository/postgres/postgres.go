// Package postgres implements the prayer repository on an external managed
// Postgres database reached through a connection string (DATABASE_URL).
//
// The pgx driver is used through database/sql so the pool is bounded and
// shared across requests rather than reconstructed per request.
package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// DB wraps the sql.DB pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens a bounded pool against the connection string and creates the
// schema if it does not exist. A missing or invalid URL surfaces here on
// the first Ping, not at process start.
func New(connString string) (*DB, error) {
	conn, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS prayers (
			id         TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			name       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_prayers_created_at ON prayers(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating prayers table: %w", err)
	}
	return nil
}
