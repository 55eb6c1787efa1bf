package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv/kvtest"
	"github.com/Chrissankov/gymshark-ecommerce/core/users"
)

var admin = users.Record{Username: "admin", Password: "admin"}

func TestRegistry_SignUp(t *testing.T) {
	t.Parallel()

	t.Run("appends and persists", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := kv.NewMemory()
		reg := users.New(storage)

		rec, err := reg.SignUp(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, users.Record{Username: "alice", Password: "secret"}, rec)

		stored, ok, err := kv.GetJSON[[]users.Record](ctx, storage, kv.KeyUsers)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []users.Record{rec}, stored)
	})

	t.Run("duplicate username leaves registry unchanged", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := kvtest.NewRecorder(kv.NewMemory())
		reg := users.New(storage, users.WithSeed(admin))

		before, err := reg.Count(ctx)
		require.NoError(t, err)
		storage.Reset()

		_, err = reg.SignUp(ctx, "admin", "x")
		assert.ErrorIs(t, err, users.ErrDuplicateUsername)

		after, err := reg.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Zero(t, storage.WritesTo(kv.KeyUsers))
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		reg := users.New(kv.NewMemory(), users.WithSeed(admin))

		_, err := reg.SignUp(ctx, "Admin", "x")
		require.NoError(t, err)

		n, err := reg.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		reg := users.New(kv.NewMemory())

		_, err := reg.SignUp(ctx, "", "x")
		assert.ErrorIs(t, err, users.ErrInvalidInput)
		_, err = reg.SignUp(ctx, "bob", "")
		assert.ErrorIs(t, err, users.ErrInvalidInput)
	})
}

func TestRegistry_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := users.New(kv.NewMemory(), users.WithSeed(admin))
	_, err := reg.SignUp(ctx, "alice", "secret")
	require.NoError(t, err)

	rec, err := reg.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)

	_, err = reg.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)

	_, err = reg.Authenticate(ctx, "alice", "SECRET")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
	_, err = reg.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestRegistry_Seed(t *testing.T) {
	t.Parallel()

	t.Run("installed only when absent", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := kv.NewMemory()
		require.NoError(t, kv.SetJSON(ctx, storage, kv.KeyUsers, []users.Record{{Username: "bob", Password: "b"}}))

		reg := users.New(storage, users.WithSeed(admin))
		records, err := reg.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []users.Record{{Username: "bob", Password: "b"}}, records)
	})

	t.Run("malformed registry falls back to seed", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := kv.NewMemory()
		require.NoError(t, storage.Set(ctx, kv.KeyUsers, "not-json"))

		reg := users.New(storage, users.WithSeed(admin))
		records, err := reg.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []users.Record{admin}, records)

		_, err = reg.Authenticate(ctx, "admin", "admin")
		assert.NoError(t, err)
	})
}

func TestRegistry_Find(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := users.New(kv.NewMemory(), users.WithSeed(admin))

	rec, err := reg.Find(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin, rec)

	_, err = reg.Find(ctx, "ghost")
	assert.ErrorIs(t, err, users.ErrNotFound)
}
