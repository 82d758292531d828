package database

import (
	"context"
	"database/sql"
	"time"
)

type Repository struct {
	db  *DB
	now func() time.Time
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, now: utcNow}
}

// WithClock replaces the timestamp source. Intended for tests.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// utcNow is truncated to microseconds so timestamps survive a round trip
// through either backend unchanged.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// RunInTx executes f as a single unit of work.
func (r *Repository) RunInTx(ctx context.Context, f func(context.Context) error) error {
	return r.db.RunInTx(ctx, f)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.conn(ctx).ExecContext(ctx, r.db.Dialect().Rebind(query), args...)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.conn(ctx).QueryContext(ctx, r.db.Dialect().Rebind(query), args...)
}

func (r *Repository) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.conn(ctx).QueryRowContext(ctx, r.db.Dialect().Rebind(query), args...)
}

type rowScanner interface {
	Scan(dest ...any) error
}
