package pg

import (
	"context"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

var _ kv.Storage = (*Storage)(nil)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage keeps every key as one row of kv_entries.
type Storage struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

// NewStorage wraps pool. The pool stays owned by the caller.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	q, err := s.querier(ctx, key)
	if err != nil {
		return "", false, err
	}

	var value string
	err = q.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if IsNotFoundError(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	q, err := s.querier(ctx, key)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	q, err := s.querier(ctx, key)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key)
	return err
}

// Close marks the storage closed. The pool is left open.
func (s *Storage) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Storage) querier(ctx context.Context, key string) (querier, error) {
	if s.closed.Load() {
		return nil, kv.ErrClosed
	}
	if key == "" {
		return nil, kv.ErrEmptyKey
	}
	if tx, ok := txFrom(ctx); ok {
		return tx, nil
	}
	return s.pool, nil
}
