// Package db is jotlist's on-disk store: a SQLite file holding a single
// key-value table. The todo list is kept as one JSON record in that table.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	driver = "sqlite3"
	// WAL lets `jotlist list` read while the TUI holds the file open.
	dsnParams = "_journal_mode=WAL&_busy_timeout=5000"
)

// DB is the key-value record store behind the todo repository. Get and
// Put address rows of the kv table by key.
type DB struct {
	*sql.DB
}

// Open opens the store at path, creating the file and its directory on
// first use, and brings the kv schema up to date.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open(driver, fmt.Sprintf("file:%s?%s", path, dsnParams))
	if err != nil {
		return nil, fmt.Errorf("failed to open todo store: %w", err)
	}
	// one writer; the whole list is rewritten on every change
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	store := &DB{DB: conn}
	if err := store.init(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// init checks the connection and applies the embedded kv migrations.
func (db *DB) init() error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to todo store: %w", err)
	}

	// goose output would corrupt the TUI
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate todo store: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
