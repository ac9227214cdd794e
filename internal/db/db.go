package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN names a private in-memory database. It lives as long as the one
// connection the pool is allowed to hold.
const MemoryDSN = ":memory:"

// Open opens a session database. The pool is pinned to a single connection:
// an in-memory database is per connection, and it also serializes every
// transaction the ledgers run.
func Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// OpenSession opens a database and applies all migrations.
func OpenSession() (*sql.DB, error) {
	sqldb, err := Open()
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}
