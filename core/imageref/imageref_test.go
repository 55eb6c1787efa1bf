package imageref_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
)

// Minimal PNG signature plus IHDR chunk header; enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDataURIEncoder(t *testing.T) {
	t.Parallel()

	t.Run("encodes png", func(t *testing.T) {
		t.Parallel()

		ref, err := imageref.NewDataURIEncoder().Encode(context.Background(), imageref.Upload{Filename: "a.png", Data: pngBytes})
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), ref)
	})

	t.Run("rejects non images", func(t *testing.T) {
		t.Parallel()

		_, err := imageref.NewDataURIEncoder().Encode(context.Background(), imageref.Upload{Data: []byte("hello")})
		assert.ErrorIs(t, err, imageref.ErrNotImage)
	})

	t.Run("accepts declared svg", func(t *testing.T) {
		t.Parallel()

		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
		ref, err := imageref.NewDataURIEncoder().Encode(context.Background(),
			imageref.Upload{ContentType: "image/svg+xml", Data: svg})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "data:image/svg+xml;base64,"))
	})

	t.Run("rejects empty and oversized", func(t *testing.T) {
		t.Parallel()

		enc := imageref.NewDataURIEncoder(imageref.WithMaxBytes(8))
		_, err := enc.Encode(context.Background(), imageref.Upload{})
		assert.ErrorIs(t, err, imageref.ErrEmptyUpload)

		_, err = enc.Encode(context.Background(), imageref.Upload{Data: pngBytes})
		assert.ErrorIs(t, err, imageref.ErrTooLarge)
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := imageref.NewDataURIEncoder().Encode(ctx, imageref.Upload{Data: pngBytes})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// gatedEncoder returns "ref:<filename>" once the gate for that filename opens.
type gatedEncoder struct {
	gates map[string]chan struct{}
}

func newGatedEncoder(names ...string) *gatedEncoder {
	g := &gatedEncoder{gates: make(map[string]chan struct{})}
	for _, n := range names {
		g.gates[n] = make(chan struct{})
	}
	return g
}

func (g *gatedEncoder) Encode(ctx context.Context, u imageref.Upload) (string, error) {
	select {
	case <-g.gates[u.Filename]:
		return "ref:" + u.Filename, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gatedEncoder) open(name string) { close(g.gates[name]) }

func TestSlot_Select(t *testing.T) {
	t.Parallel()

	t.Run("keeps prior value until resolved", func(t *testing.T) {
		t.Parallel()

		enc := newGatedEncoder("new.png")
		slot := imageref.NewSlot(enc, imageref.WithInitial("old"))

		future := slot.Select(context.Background(), imageref.Upload{Filename: "new.png"})
		assert.Equal(t, "old", slot.Value())
		assert.True(t, slot.Pending())

		enc.open("new.png")
		ref, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, "ref:new.png", ref)
		assert.Equal(t, "ref:new.png", slot.Value())
		assert.False(t, slot.Pending())
	})

	t.Run("late stale result is discarded", func(t *testing.T) {
		t.Parallel()

		enc := newGatedEncoder("first.png", "second.png")
		slot := imageref.NewSlot(enc, imageref.WithInitial("old"))

		first := slot.Select(context.Background(), imageref.Upload{Filename: "first.png"})
		second := slot.Select(context.Background(), imageref.Upload{Filename: "second.png"})

		enc.open("second.png")
		ref, err := second.Await()
		require.NoError(t, err)
		assert.Equal(t, "ref:second.png", ref)

		enc.open("first.png")
		_, err = first.Await()
		assert.ErrorIs(t, err, imageref.ErrSuperseded)

		assert.Equal(t, "ref:second.png", slot.Value())
		assert.False(t, slot.Pending())
	})

	t.Run("early stale result is discarded", func(t *testing.T) {
		t.Parallel()

		enc := newGatedEncoder("first.png", "second.png")
		slot := imageref.NewSlot(enc)

		first := slot.Select(context.Background(), imageref.Upload{Filename: "first.png"})
		second := slot.Select(context.Background(), imageref.Upload{Filename: "second.png"})

		enc.open("first.png")
		_, err := first.Await()
		assert.ErrorIs(t, err, imageref.ErrSuperseded)
		assert.Empty(t, slot.Value())
		assert.True(t, slot.Pending())

		enc.open("second.png")
		_, err = second.Await()
		require.NoError(t, err)
		assert.Equal(t, "ref:second.png", slot.Value())
	})

	t.Run("commit failure keeps value", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("write failed")
		slot := imageref.NewSlot(imageref.NewDataURIEncoder(),
			imageref.WithInitial("old"),
			imageref.WithCommit(func(context.Context, string) error { return boom }),
		)

		_, err := slot.Select(context.Background(), imageref.Upload{Data: pngBytes}).AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "old", slot.Value())
		assert.False(t, slot.Pending())
	})

	t.Run("commit and subscribers see accepted value", func(t *testing.T) {
		t.Parallel()

		var committed []string
		slot := imageref.NewSlot(imageref.NewDataURIEncoder(),
			imageref.WithCommit(func(_ context.Context, ref string) error {
				committed = append(committed, ref)
				return nil
			}),
		)
		t.Cleanup(slot.Close)

		var seen []string
		slot.Subscribe(func(v string) { seen = append(seen, v) })

		ref, err := slot.Select(context.Background(), imageref.Upload{Data: pngBytes}).AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, []string{ref}, committed)
		assert.Equal(t, []string{"", ref}, seen)
	})

	t.Run("canceled selection resolves", func(t *testing.T) {
		t.Parallel()

		enc := newGatedEncoder("x.png")
		slot := imageref.NewSlot(enc, imageref.WithInitial("old"))

		ctx, cancel := context.WithCancel(context.Background())
		future := slot.Select(ctx, imageref.Upload{Filename: "x.png"})
		cancel()

		_, err := future.AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "old", slot.Value())
		assert.False(t, slot.Pending())
	})
}
