package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Open creates the parent directory, opens the SQLite history database with
// the connection pragmas and runs migrations.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Initialize opens path and installs it as the package database
func Initialize(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Close closes the package database and clears it
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		file_name TEXT,
		file_path TEXT,
		strategy TEXT NOT NULL DEFAULT 'primary',
		pages INTEGER DEFAULT 0,
		size_bytes INTEGER DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'succeeded',
		error_kind TEXT,
		error_message TEXT,
		duration_ms INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(status IN ('succeeded', 'failed')),
		CHECK(strategy IN ('primary', 'sections', 'fallback'))
	);

	CREATE TABLE IF NOT EXISTS export_warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		export_id INTEGER NOT NULL,
		message TEXT NOT NULL,
		FOREIGN KEY (export_id) REFERENCES exports(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
	CREATE INDEX IF NOT EXISTS idx_exports_status ON exports(status);
	CREATE INDEX IF NOT EXISTS idx_export_warnings_export_id ON export_warnings(export_id);
	`

	_, err := db.Exec(schema)
	return err
}
