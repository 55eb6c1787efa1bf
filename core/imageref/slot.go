package imageref

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/async"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

// CommitFunc persists a resolved reference. It runs before the slot value
// changes; an error leaves the slot unchanged.
type CommitFunc func(ctx context.Context, ref string) error

// Slot holds the image reference of one field.
type Slot struct {
	mu       sync.Mutex
	encoder  Encoder
	commit   CommitFunc
	issued   uint64
	resolved uint64
	value    *broadcast.Subject[string]
	logger   *slog.Logger
}

// SlotOption configures a Slot.
type SlotOption func(*slotOptions)

type slotOptions struct {
	initial string
	commit  CommitFunc
	logger  *slog.Logger
}

// WithInitial sets the value held before any selection resolves.
func WithInitial(ref string) SlotOption {
	return func(o *slotOptions) { o.initial = ref }
}

// WithCommit persists every accepted reference.
func WithCommit(fn CommitFunc) SlotOption {
	return func(o *slotOptions) { o.commit = fn }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) SlotOption {
	return func(o *slotOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewSlot creates a slot backed by encoder.
func NewSlot(encoder Encoder, opts ...SlotOption) *Slot {
	o := &slotOptions{logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return &Slot{
		encoder: encoder,
		commit:  o.commit,
		value:   broadcast.NewSubject(o.initial),
		logger:  o.logger,
	}
}

// Select starts encoding u and returns without waiting. The future resolves
// to the new reference, or to ErrSuperseded if a later Select was made first.
func (s *Slot) Select(ctx context.Context, u Upload) *async.Future[string] {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	// The encoder observes cancellation; the future itself always runs so the
	// selection is accounted as resolved.
	return async.Async(context.WithoutCancel(ctx), u, func(_ context.Context, u Upload) (string, error) {
		ref, err := s.encoder.Encode(ctx, u)

		defer s.value.Flush()
		s.mu.Lock()
		defer s.mu.Unlock()

		if seq != s.issued {
			s.logger.DebugContext(ctx, "stale image discarded",
				logger.Component("imageref"), slog.String("filename", u.Filename))
			if seq > s.resolved {
				s.resolved = seq
			}
			return "", ErrSuperseded
		}
		s.resolved = seq
		if err != nil {
			return "", err
		}
		if s.commit != nil {
			if err := s.commit(ctx, ref); err != nil {
				return "", err
			}
		}
		s.value.Queue(ref)
		return ref, nil
	})
}

// Value returns the current reference.
func (s *Slot) Value() string {
	return s.value.Value()
}

// Pending reports whether the latest selection has not resolved yet.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved < s.issued
}

// Subscribe receives the current reference and every accepted change.
func (s *Slot) Subscribe(fn func(string)) *broadcast.Subscription {
	return s.value.Subscribe(fn)
}

// Close detaches subscribers. In-flight selections still resolve.
func (s *Slot) Close() {
	s.value.Close()
}
