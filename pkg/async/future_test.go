package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns computed value", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		v, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		future := async.Async(context.Background(), "x", func(context.Context, string) (string, error) {
			return "", boom
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("skips work for canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		future := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called = true
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		future := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 1, nil
		})

		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.False(t, future.IsComplete())
	})
}

func TestResolvedAndFailed(t *testing.T) {
	t.Parallel()

	v, err := async.Resolved("ok").Await()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	boom := errors.New("boom")
	_, err = async.Failed[string](boom).Await()
	assert.ErrorIs(t, err, boom)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps argument order", func(t *testing.T) {
		t.Parallel()

		values, err := async.WaitAll(async.Resolved(1), async.Resolved(2), async.Resolved(3))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, values)
	})

	t.Run("returns first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := async.WaitAll(async.Resolved(1), async.Failed[int](boom))
		assert.ErrorIs(t, err, boom)
	})
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()

		idx, _, err := async.WaitAny[int]()
		assert.ErrorIs(t, err, async.ErrNoFutures)
		assert.Equal(t, -1, idx)
	})

	t.Run("returns completed future", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		slow := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 0, nil
		})

		idx, v, err := async.WaitAny(slow, async.Resolved(9))
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
		assert.Equal(t, 9, v)
	})
}
