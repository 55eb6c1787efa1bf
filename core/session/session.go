package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

const loggedInValue = "true"

// Store is the persisted, observable authenticated flag.
type Store struct {
	mu      sync.Mutex
	storage kv.Storage
	state   *broadcast.Subject[bool]
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store initialized from the persisted flag.
func New(ctx context.Context, storage kv.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	loggedIn, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	s.state = broadcast.NewSubject(loggedIn, broadcast.WithPanicHandler(func(err error) {
		s.logger.Warn("session subscriber failed", logger.Component("session"), logger.Error(err))
	}))
	return s, nil
}

// Login persists the flag as true and notifies subscribers. Subscribers run
// after the store lock is released and may call back into the store.
func (s *Store) Login(ctx context.Context) error {
	defer s.state.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, kv.KeyIsLoggedIn, loggedInValue); err != nil {
		return errors.Join(ErrSaveState, err)
	}
	s.logger.DebugContext(ctx, "session logged in", logger.Component("session"), logger.Event("login"))
	s.state.Queue(true)
	return nil
}

// Logout clears the persisted flag and notifies subscribers with false.
func (s *Store) Logout(ctx context.Context) error {
	defer s.state.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, kv.KeyIsLoggedIn); err != nil {
		return errors.Join(ErrSaveState, err)
	}
	s.logger.DebugContext(ctx, "session logged out", logger.Component("session"), logger.Event("logout"))
	s.state.Queue(false)
	return nil
}

// CurrentValue returns the flag without blocking on storage.
func (s *Store) CurrentValue() bool {
	return s.state.Value()
}

// Subscribe delivers the current value immediately, then every change until
// the returned subscription is closed.
func (s *Store) Subscribe(fn func(loggedIn bool)) *broadcast.Subscription {
	return s.state.Subscribe(fn)
}

// Reload re-reads the persisted flag and notifies subscribers if it differs
// from the in-memory value.
func (s *Store) Reload(ctx context.Context) error {
	defer s.state.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	loggedIn, err := s.read(ctx)
	if err != nil {
		return err
	}
	if loggedIn != s.state.Value() {
		s.state.Queue(loggedIn)
	}
	return nil
}

// Close detaches every subscriber. The storage is owned by the caller.
func (s *Store) Close() {
	s.state.Close()
}

func (s *Store) read(ctx context.Context) (bool, error) {
	v, ok, err := s.storage.Get(ctx, kv.KeyIsLoggedIn)
	if err != nil {
		return false, errors.Join(ErrLoadState, err)
	}
	return ok && v == loggedInValue, nil
}
