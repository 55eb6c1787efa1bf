package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	KeyIsLoggedIn  = "isLoggedIn"
	KeyProducts    = "products"
	KeyUsers       = "users"
	KeyCurrentLang = "currentLang"
)

var (
	// ErrMalformedValue is returned when a stored value cannot be decoded.
	ErrMalformedValue = errors.New("kv: malformed value")
	// ErrClosed is returned by operations on a closed storage.
	ErrClosed = errors.New("kv: storage is closed")
	// ErrEmptyKey is returned for operations with an empty key.
	ErrEmptyKey = errors.New("kv: key is required")
)

// Storage is a string key-value store.
type Storage interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the storage.
	Close() error
}

// GetJSON reads key and decodes it into T.
func GetJSON[T any](ctx context.Context, s Storage, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, true, fmt.Errorf("%w: key %q: %v", ErrMalformedValue, key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON[T any](ctx context.Context, s Storage, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode key %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
