package database

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repository.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txCtxKey struct{}

func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx
}

func NewTxContext(parent context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(parent, txCtxKey{}, tx)
}

// RunInTx runs f inside a transaction carried by the context. A transaction
// already present in ctx is reused and left for the outer caller to finish.
func (db *DB) RunInTx(ctx context.Context, f func(context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return f(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	ctx = NewTxContext(ctx, tx)

	defer func() {
		if v := recover(); v != nil {
			if err := tx.Rollback(); err != nil {
				v = fmt.Sprintf("%v: rolling back transaction: %v", v, err)
			}
			panic(v)
		}
	}()

	if err := f(ctx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (db *DB) conn(ctx context.Context) querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.DB
}
