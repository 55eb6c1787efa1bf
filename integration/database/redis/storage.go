package redis

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

var _ kv.Storage = (*Storage)(nil)

// Storage stores each key as a Redis string.
type Storage struct {
	client     redis.UniversalClient
	prefix     string
	ownsClient bool
	closed     atomic.Bool
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithPrefix namespaces every key.
func WithPrefix(prefix string) StorageOption {
	return func(s *Storage) { s.prefix = prefix }
}

// WithOwnedClient makes Close also close the client.
func WithOwnedClient() StorageOption {
	return func(s *Storage) { s.ownsClient = true }
}

// NewStorage wraps client.
func NewStorage(client redis.UniversalClient, opts ...StorageOption) *Storage {
	s := &Storage{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.check(key); err != nil {
		return "", false, err
	}
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.check(key); err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.check(key); err != nil {
		return err
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Close marks the storage closed and closes the client if owned.
func (s *Storage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

func (s *Storage) check(key string) error {
	if s.closed.Load() {
		return kv.ErrClosed
	}
	if key == "" {
		return kv.ErrEmptyKey
	}
	return nil
}
