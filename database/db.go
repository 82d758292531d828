package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteOptions are appended to every SQLite DSN. Foreign keys must be
// enabled per connection for ON DELETE CASCADE to fire.
const sqliteOptions = "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

type DB struct {
	*sql.DB
	dialect Dialect
}

// New opens a database for the given driver ("sqlite3" or "pgx").
// For SQLite the dsn is a file path whose directory is created on demand.
func New(driver, dsn string) (*DB, error) {
	dialect, ok := ParseDialect(driver)
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if dialect == DialectSQLite {
		var err error
		if dsn, err = prepareSQLite(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if dialect == DialectSQLite && inMemory(dsn) {
		// Every in-memory connection is its own database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

func prepareSQLite(dsn string) (string, error) {
	path, query, _ := strings.Cut(dsn, "?")
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if query == "" {
		return path + "?" + sqliteOptions, nil
	}
	return path + "?" + query + "&" + sqliteOptions, nil
}

func inMemory(dsn string) bool {
	path, query, _ := strings.Cut(dsn, "?")
	return path == ":memory:" || path == "file::memory:" || strings.Contains(query, "mode=memory")
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

// WaitReady pings the database until it answers or attempts run out.
func (db *DB) WaitReady(ctx context.Context, attempts uint, logger *slog.Logger) error {
	if attempts == 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("failed ping to database",
				"driver", string(db.dialect),
				"attempt", attempt+1,
				"error", err,
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	queries := sqliteSchema
	if db.dialect == DialectPostgres {
		queries = postgresSchema
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS blocks (
		id TEXT PRIMARY KEY,
		note_id TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('text', 'todo', 'table', 'calendar')),
		position INTEGER NOT NULL,
		data TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_blocks_note_position ON blocks(note_id, position)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS blocks (
		id TEXT PRIMARY KEY,
		note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		type TEXT NOT NULL CHECK (type IN ('text', 'todo', 'table', 'calendar')),
		position INTEGER NOT NULL,
		data JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_blocks_note_position ON blocks(note_id, position)`,
}
