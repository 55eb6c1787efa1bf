// Package kvtest holds the behavioral contract every kv.Storage backend must
// satisfy. Backend test files call Run with a factory.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

// Factory returns a fresh, empty storage. Cleanup is registered by the factory.
type Factory func(t *testing.T) kv.Storage

// Run executes the storage contract against storages built by newStorage.
func Run(t *testing.T, newStorage Factory) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := newStorage(t)
		v, ok, err := s.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, kv.KeyIsLoggedIn, "true"))
		v, ok, err := s.Get(ctx, kv.KeyIsLoggedIn)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "true", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, kv.KeyCurrentLang, "en"))
		require.NoError(t, s.Set(ctx, kv.KeyCurrentLang, "ar"))
		v, _, err := s.Get(ctx, kv.KeyCurrentLang)
		require.NoError(t, err)
		assert.Equal(t, "ar", v)
	})

	t.Run("empty value is distinct from absent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "blank", ""))
		v, ok, err := s.Get(ctx, "blank")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, kv.KeyUsers, "[]"))
		require.NoError(t, s.Delete(ctx, kv.KeyUsers))
		_, ok, err := s.Get(ctx, kv.KeyUsers)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Delete(ctx, kv.KeyUsers), "deleting a missing key is a no-op")
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, kv.KeyProducts, `[{"id":1}]`))
		require.NoError(t, s.Set(ctx, kv.KeyUsers, `[]`))
		require.NoError(t, s.Delete(ctx, kv.KeyUsers))

		v, ok, err := s.Get(ctx, kv.KeyProducts)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, v)
	})

	t.Run("json round trip", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		type record struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		in := []record{{Username: "admin", Password: "admin"}}
		require.NoError(t, kv.SetJSON(ctx, s, kv.KeyUsers, in))

		out, ok, err := kv.GetJSON[[]record](ctx, s, kv.KeyUsers)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("malformed json", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, kv.KeyProducts, "{not json"))
		_, ok, err := kv.GetJSON[[]int](ctx, s, kv.KeyProducts)
		assert.True(t, ok)
		assert.ErrorIs(t, err, kv.ErrMalformedValue)
	})
}
