package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
)

// Record is a registered user.
type Record struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Registry reads and writes user records.
type Registry struct {
	mu      sync.Mutex
	storage kv.Storage
	seed    []Record
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithSeed installs records when the registry has never been persisted.
func WithSeed(records ...Record) Option {
	return func(r *Registry) {
		r.seed = append(r.seed, records...)
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a registry over storage.
func New(storage kv.Storage, opts ...Option) *Registry {
	r := &Registry{storage: storage, logger: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load installs the seed records if the registry key is absent and returns
// the persisted list.
func (r *Registry) Load(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// SignUp appends a new record and persists the full list.
func (r *Registry) SignUp(ctx context.Context, username, password string) (Record, error) {
	rec := Record{Username: username, Password: password}
	if err := rec.Validate(); err != nil {
		return Record{}, errors.Join(ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return Record{}, err
	}

	if slices.ContainsFunc(records, func(existing Record) bool { return existing.Username == username }) {
		r.logger.DebugContext(ctx, "sign up rejected",
			logger.Component("users"), logger.Username(username), logger.Error(ErrDuplicateUsername))
		return Record{}, ErrDuplicateUsername
	}

	records = append(records, rec)
	if err := r.save(ctx, records); err != nil {
		return Record{}, err
	}

	r.logger.InfoContext(ctx, "user signed up",
		logger.Component("users"), logger.Username(username), logger.Count("users", len(records)))
	return rec, nil
}

// Authenticate returns the record matching both fields exactly.
func (r *Registry) Authenticate(ctx context.Context, username, password string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return Record{}, err
	}

	for _, rec := range records {
		if rec.Username == username && rec.Password == password {
			return rec, nil
		}
	}
	return Record{}, ErrInvalidCredentials
}

// Find returns the record for username.
func (r *Registry) Find(ctx context.Context, username string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return Record{}, err
	}

	i := slices.IndexFunc(records, func(rec Record) bool { return rec.Username == username })
	if i < 0 {
		return Record{}, ErrNotFound
	}
	return records[i], nil
}

// Count returns the number of registered users.
func (r *Registry) Count(ctx context.Context) (int, error) {
	records, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// load must be called with r.mu held.
func (r *Registry) load(ctx context.Context) ([]Record, error) {
	records, ok, err := kv.GetJSON[[]Record](ctx, r.storage, kv.KeyUsers)
	switch {
	case errors.Is(err, kv.ErrMalformedValue):
		r.logger.WarnContext(ctx, "malformed user registry, reinstalling seed",
			logger.Component("users"), logger.Key(kv.KeyUsers), logger.Error(err))
		return r.install(ctx)
	case err != nil:
		return nil, errors.Join(ErrStorage, err)
	case !ok:
		return r.install(ctx)
	}
	return records, nil
}

func (r *Registry) install(ctx context.Context) ([]Record, error) {
	records := slices.Clone(r.seed)
	if records == nil {
		records = []Record{}
	}
	if err := r.save(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Registry) save(ctx context.Context, records []Record) error {
	if err := kv.SetJSON(ctx, r.storage, kv.KeyUsers, records); err != nil {
		return errors.Join(ErrStorage, fmt.Errorf("persist users: %w", err))
	}
	return nil
}
