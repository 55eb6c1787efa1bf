package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

type txKey struct{}

// WithTx makes Storage calls made with the returned context run inside tx.
// A nil tx leaves ctx as is.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// Atomic runs fn with a context bound to a new transaction and commits when
// fn returns nil. Nested calls reuse the outer transaction.
func (s *Storage) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.closed.Load() {
		return kv.ErrClosed
	}
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin kv transaction: %w", err)
	}
	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit kv transaction: %w", err)
	}
	return nil
}
