package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/cart"
	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/guard"
	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/locale"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/loginflow"
	"github.com/Chrissankov/gymshark-ecommerce/core/session"
	"github.com/Chrissankov/gymshark-ecommerce/core/users"
	"github.com/Chrissankov/gymshark-ecommerce/integration/storage/s3"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/ratelimiter"
)

// App owns every storefront service. Services are constructed once in New and
// released by Close; handlers reach them only through the App.
type App struct {
	config  Config
	logger  *slog.Logger
	backend *Backend
	encoder imageref.Encoder
	checks  []func(context.Context) error

	session *session.Store
	guard   *guard.Guard
	users   *users.Registry
	catalog *catalog.Store
	cart    *cart.Cart
	flow    *loginflow.Flow
	locale  *locale.Store

	attempts     *ratelimiter.MemoryStore
	loginLimiter ratelimiter.RateLimiter

	mu    sync.Mutex
	slots map[int64]*imageref.Slot

	subs      []*broadcast.Subscription
	router    http.Handler
	done      chan struct{}
	closeOnce sync.Once
}

// AppOption customizes New.
type AppOption func(*App) error

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// WithStorage bypasses STORAGE_DRIVER and uses s. The App closes it.
func WithStorage(s kv.Storage) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("storage cannot be nil")
		}
		a.backend = &Backend{Storage: s}
		return nil
	}
}

// WithEncoder overrides the product image encoder.
func WithEncoder(e imageref.Encoder) AppOption {
	return func(a *App) error {
		if e == nil {
			return errors.New("encoder cannot be nil")
		}
		a.encoder = e
		return nil
	}
}

// WithHealthChecks adds readiness checks besides the storage driver's.
func WithHealthChecks(checks ...func(context.Context) error) AppOption {
	return func(a *App) error {
		a.checks = append(a.checks, checks...)
		return nil
	}
}

// New wires the storefront. On failure everything opened so far is closed.
func New(ctx context.Context, cfg Config, opts ...AppOption) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger.Nop(),
		slots:  make(map[int64]*imageref.Slot),
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if err := a.init(ctx); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	var err error

	if a.backend == nil {
		if a.backend, err = OpenBackend(ctx, a.config, a.logger); err != nil {
			return err
		}
	}
	a.checks = append(append([]func(context.Context) error{}, a.backend.Checks...), a.checks...)
	storage := a.backend.Storage

	if a.encoder == nil {
		if a.encoder, err = a.defaultEncoder(ctx); err != nil {
			return err
		}
	}

	if a.session, err = session.New(ctx, storage, session.WithLogger(a.logger)); err != nil {
		return err
	}
	a.guard = guard.New(a.session)

	var seed []users.Record
	if a.config.AdminUsername != "" && a.config.AdminPassword != "" {
		seed = append(seed, users.Record{Username: a.config.AdminUsername, Password: a.config.AdminPassword})
	}
	a.users = users.New(storage, users.WithSeed(seed...), users.WithLogger(a.logger))
	if _, err := a.users.Load(ctx); err != nil {
		return err
	}

	a.catalog = catalog.New(storage, catalog.WithLogger(a.logger))
	if _, err := a.catalog.Load(ctx); err != nil {
		return err
	}

	a.cart = cart.New()
	a.flow = loginflow.New(a.users, a.session, loginflow.WithLogger(a.logger))

	localeOpts := append(locale.FromConfig(a.config.Locale), locale.WithLogger(a.logger))
	if a.locale, err = locale.New(ctx, storage, localeOpts...); err != nil {
		return err
	}

	a.subs = append(a.subs,
		a.catalog.Subscribe(func(c catalog.Change) {
			if c.Kind == catalog.ChangeDeleted {
				a.dropSlot(c.Product.ID)
			}
		}),
		a.flow.OnSuccess(func(s loginflow.Success) {
			a.logger.Info("user logged in",
				logger.Component("storefront"),
				logger.Username(s.Username),
				slog.String("via", s.From.String()))
		}),
	)

	if a.config.LoginRateCapacity > 0 {
		a.attempts = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(a.logger))
		a.loginLimiter, err = ratelimiter.NewBucket(a.attempts, ratelimiter.Config{
			Capacity:       a.config.LoginRateCapacity,
			RefillRate:     a.config.LoginRateCapacity,
			RefillInterval: a.config.LoginRateInterval,
		})
		if err != nil {
			return err
		}
	}

	a.router = a.routes()
	return nil
}

// Run performs background upkeep until ctx is canceled. It fits errgroup.Go.
func (a *App) Run(ctx context.Context) func() error {
	if a.attempts == nil {
		return func() error {
			<-ctx.Done()
			return nil
		}
	}
	return a.attempts.Run(ctx)
}

func (a *App) defaultEncoder(ctx context.Context) (imageref.Encoder, error) {
	if !a.config.S3.Enabled() {
		return imageref.NewDataURIEncoderFromConfig(a.config.Image), nil
	}
	up, err := s3.New(ctx, a.config.S3)
	if err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "product images upload to s3",
		logger.Component("storefront"), slog.String("bucket", a.config.S3.Bucket))
	return up, nil
}

// Handler returns the HTTP surface.
func (a *App) Handler() http.Handler {
	return a.router
}

// Checks returns the readiness checks of the app.
func (a *App) Checks() []func(context.Context) error {
	return a.checks
}

// Close stops websocket pushes, releases every service and closes the storage.
// Safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.done)

		for _, sub := range a.subs {
			sub.Close()
		}

		a.mu.Lock()
		for id, slot := range a.slots {
			slot.Close()
			delete(a.slots, id)
		}
		a.mu.Unlock()

		if a.flow != nil {
			a.flow.Close()
		}
		if a.cart != nil {
			a.cart.Close()
		}
		if a.catalog != nil {
			a.catalog.Close()
		}
		if a.session != nil {
			a.session.Close()
		}
		if a.locale != nil {
			a.locale.Close()
		}
		if a.backend != nil {
			err = a.backend.Close()
		}
	})
	return err
}

// slot returns the image slot of p, creating it on first use. Accepted
// references are written through catalog.SetImage.
func (a *App) slot(p catalog.Product) *imageref.Slot {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.slots[p.ID]; ok {
		return s
	}

	id := p.ID
	s := imageref.NewSlot(a.encoder,
		imageref.WithInitial(p.Image),
		imageref.WithLogger(a.logger),
		imageref.WithCommit(func(ctx context.Context, ref string) error {
			_, err := a.catalog.SetImage(ctx, id, ref)
			return err
		}),
	)
	a.slots[id] = s
	return s
}

func (a *App) lookupSlot(id int64) (*imageref.Slot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.slots[id]
	return s, ok
}

func (a *App) dropSlot(id int64) {
	a.mu.Lock()
	s, ok := a.slots[id]
	delete(a.slots, id)
	a.mu.Unlock()

	if ok {
		s.Close()
	}
}
