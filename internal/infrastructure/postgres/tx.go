package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

type txKey struct{}

// TxManager carries a pgx transaction through ctx so repositories
// join it without changing their signatures.
type TxManager struct {
	pool Pool
}

func NewTxManager(pool Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx begins a transaction, runs fn, and commits on success or rolls
// back on error or panic. Nested calls reuse the outer transaction.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()
	return fn(context.WithValue(ctx, txKey{}, tx))
}

// conn returns the transaction stored in ctx, or db when there is none.
func conn(ctx context.Context, db DB) DB {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// dbErr maps driver errors onto repository sentinels.
func dbErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return fmt.Errorf("db error: %w", err)
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation (code 23505).
func isUniqueViolation(err error) bool {
	_, ok := violatedConstraint(err)
	return ok
}

// violatedConstraint names the unique constraint err tripped, if any.
func violatedConstraint(err error) (string, bool) {
	var pge *pgconn.PgError
	if errors.As(err, &pge) && pge.Code == "23505" {
		return pge.ConstraintName, true
	}
	return "", false
}

var _ repository.TxManager = (*TxManager)(nil)
