package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

// ChangeKind names a catalog mutation.
type ChangeKind string

const (
	ChangeSeeded  ChangeKind = "seeded"
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change is published after every persisted mutation.
type Change struct {
	Kind    ChangeKind
	Product Product // zero for ChangeSeeded
}

// Store persists the product list.
type Store struct {
	mu      sync.Mutex
	storage kv.Storage
	seed    []Product
	now     func() time.Time
	lastID  int64
	changes *broadcast.Topic[Change]
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSeed replaces the default seed catalog.
func WithSeed(products []Product) Option {
	return func(s *Store) {
		s.seed = slices.Clone(products)
	}
}

// WithClock injects the time source used for id generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a catalog store over storage.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		seed:    DefaultSeed(),
		now:     time.Now,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.changes = broadcast.NewTopic[Change](broadcast.WithPanicHandler(func(err error) {
		s.logger.Warn("catalog subscriber failed", logger.Component("catalog"), logger.Error(err))
	}))
	return s
}

// Subscribe receives every persisted mutation.
func (s *Store) Subscribe(fn func(Change)) *broadcast.Subscription {
	return s.changes.Subscribe(fn)
}

// Load returns the persisted catalog, installing the seed when absent.
func (s *Store) Load(ctx context.Context) ([]Product, error) {
	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(products), nil
}

// Get returns the product with id.
func (s *Store) Get(ctx context.Context, id int64) (Product, error) {
	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	return products[i], nil
}

// Create assigns a fresh id, appends the product and persists the list.
func (s *Store) Create(ctx context.Context, f Fields) (Product, error) {
	if err := f.Validate(); err != nil {
		return Product{}, errors.Join(ErrInvalidProduct, err)
	}

	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	p := Product{ID: s.nextID(products)}.with(f)
	products = append(products, p)
	if err := s.save(ctx, products); err != nil {
		return Product{}, err
	}

	s.logger.InfoContext(ctx, "product created", logger.Component("catalog"), logger.ProductID(p.ID))
	s.changes.Queue(Change{Kind: ChangeCreated, Product: p})
	return p, nil
}

// Update replaces every mutable field of the product with id.
func (s *Store) Update(ctx context.Context, id int64, f Fields) (Product, error) {
	if err := f.Validate(); err != nil {
		return Product{}, errors.Join(ErrInvalidProduct, err)
	}

	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	i := indexOf(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	products[i] = products[i].with(f)
	if err := s.save(ctx, products); err != nil {
		return Product{}, err
	}

	s.logger.InfoContext(ctx, "product updated", logger.Component("catalog"), logger.ProductID(id))
	s.changes.Queue(Change{Kind: ChangeUpdated, Product: products[i]})
	return products[i], nil
}

// SetImage replaces only the image reference of the product with id.
func (s *Store) SetImage(ctx context.Context, id int64, image string) (Product, error) {
	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	i := indexOf(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	f := products[i].Fields()
	f.Image = image
	if err := f.Validate(); err != nil {
		return Product{}, errors.Join(ErrInvalidProduct, err)
	}
	products[i] = products[i].with(f)
	if err := s.save(ctx, products); err != nil {
		return Product{}, err
	}

	s.logger.InfoContext(ctx, "product image updated", logger.Component("catalog"), logger.ProductID(id))
	s.changes.Queue(Change{Kind: ChangeUpdated, Product: products[i]})
	return products[i], nil
}

// Delete removes the product with id. Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	defer s.changes.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(products, id)
	var removed Product
	if i >= 0 {
		removed = products[i]
		products = slices.Delete(products, i, i+1)
	}
	if err := s.save(ctx, products); err != nil {
		return err
	}

	if i >= 0 {
		s.logger.InfoContext(ctx, "product deleted", logger.Component("catalog"), logger.ProductID(id))
		s.changes.Queue(Change{Kind: ChangeDeleted, Product: removed})
	}
	return nil
}

// Close detaches change subscribers. The storage is owned by the caller.
func (s *Store) Close() {
	s.changes.Close()
}

// load must be called with s.mu held. Changes it queues are delivered by the
// caller's deferred Flush.
func (s *Store) load(ctx context.Context) ([]Product, error) {
	products, ok, err := kv.GetJSON[[]Product](ctx, s.storage, kv.KeyProducts)
	switch {
	case errors.Is(err, kv.ErrMalformedValue):
		s.logger.WarnContext(ctx, "malformed catalog, reinstalling seed",
			logger.Component("catalog"), logger.Key(kv.KeyProducts), logger.Error(err))
		return s.install(ctx)
	case err != nil:
		return nil, errors.Join(ErrStorage, err)
	case !ok:
		return s.install(ctx)
	}
	return products, nil
}

func (s *Store) install(ctx context.Context) ([]Product, error) {
	products := slices.Clone(s.seed)
	if products == nil {
		products = []Product{}
	}
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "catalog seeded", logger.Component("catalog"), logger.Count("products", len(products)))
	s.changes.Queue(Change{Kind: ChangeSeeded})
	return products, nil
}

func (s *Store) save(ctx context.Context, products []Product) error {
	if err := kv.SetJSON(ctx, s.storage, kv.KeyProducts, products); err != nil {
		return errors.Join(ErrStorage, fmt.Errorf("persist catalog: %w", err))
	}
	return nil
}

// nextID returns a millisecond timestamp bumped above every id issued by this
// store and every id present in products.
func (s *Store) nextID(products []Product) int64 {
	floor := s.lastID
	for _, p := range products {
		floor = max(floor, p.ID)
	}
	id := max(s.now().UnixMilli(), floor+1)
	s.lastID = id
	return id
}

func indexOf(products []Product, id int64) int {
	return slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
}
