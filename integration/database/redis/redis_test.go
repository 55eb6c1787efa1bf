package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv/kvtest"
	"github.com/Chrissankov/gymshark-ecommerce/integration/database/redis"
)

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost:6379"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}

func TestStorage_Contract(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, redis.Healthcheck(client)(ctx))

	kvtest.Run(t, func(t *testing.T) kv.Storage {
		prefix := "test:" + uuid.NewString() + ":"
		s := redis.NewStorage(client, redis.WithPrefix(prefix))
		t.Cleanup(func() { _ = s.Close() })
		return s
	})

	t.Run("closed storage", func(t *testing.T) {
		s := redis.NewStorage(client)
		require.NoError(t, s.Close())
		_, _, err := s.Get(ctx, kv.KeyUsers)
		assert.ErrorIs(t, err, kv.ErrClosed)
	})
}
