package database

import (
	"database/sql"
	"fmt"
	"time"

	"launchpad-core/internal/config"

	_ "github.com/lib/pq"
)

// DB holds the shared Postgres pool the repositories run their queries on
type DB struct {
	conn *sql.DB
}

// NewConnection opens the pool described by the config and verifies it is
// reachable before handing it out
func NewConnection(cfg *config.DatabaseConfig) (*DB, error) {
	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxConns)
	conn.SetMaxIdleConns(cfg.MinConns)
	conn.SetConnMaxLifetime(time.Hour)

	// sql.Open is lazy; fail at startup rather than on the first query
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetConnection exposes the raw pool for the persistence layer
func (db *DB) GetConnection() *sql.DB {
	return db.conn
}

// Ping reports whether the database is still reachable
func (db *DB) Ping() error {
	return db.conn.Ping()
}
