package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Chrissankov/gymshark-ecommerce/core/config"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/integration/database/mongo"
	"github.com/Chrissankov/gymshark-ecommerce/integration/database/pg"
	"github.com/Chrissankov/gymshark-ecommerce/integration/database/redis"
	"github.com/Chrissankov/gymshark-ecommerce/integration/database/sqlite"
)

// ErrUnknownDriver is returned for unsupported STORAGE_DRIVER values.
var ErrUnknownDriver = errors.New("storefront: unknown storage driver")

const disconnectTimeout = 5 * time.Second

// Backend is an opened storage driver together with its readiness checks
// and the connections it owns.
type Backend struct {
	Storage kv.Storage
	Checks  []func(context.Context) error
	closers []func() error
}

// Close closes the storage, then the underlying connections.
func (b *Backend) Close() error {
	errs := []error{b.Storage.Close()}
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// OpenBackend opens the storage selected by cfg.StorageDriver.
func OpenBackend(ctx context.Context, cfg Config, log *slog.Logger) (*Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	log = log.With(logger.Component("storage"), slog.String("driver", driver))

	switch driver {
	case DriverMemory, "":
		return &Backend{Storage: kv.NewMemory()}, nil

	case DriverFile:
		f, err := kv.OpenFile(cfg.StorageFile)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "file storage opened", slog.String("path", f.Path()))
		return &Backend{Storage: f}, nil

	case DriverSQLite:
		var sc sqlite.Config
		if err := config.Parse(&sc); err != nil {
			return nil, err
		}
		st, err := sqlite.Open(ctx, sc.Path)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "sqlite storage opened", slog.String("path", sc.Path))
		return &Backend{Storage: st, Checks: []func(context.Context) error{st.Healthcheck}}, nil

	case DriverRedis:
		var rc redis.Config
		if err := config.Parse(&rc); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "redis storage connected")
		return &Backend{
			Storage: redis.NewStorage(client, redis.WithPrefix(rc.KeyPrefix), redis.WithOwnedClient()),
			Checks:  []func(context.Context) error{redis.Healthcheck(client)},
		}, nil

	case DriverPostgres:
		var pc pg.Config
		if err := config.Parse(&pc); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pc)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, pc, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.InfoContext(ctx, "postgres storage connected")
		return &Backend{
			Storage: pg.NewStorage(pool),
			Checks:  []func(context.Context) error{pg.Healthcheck(pool)},
			closers: []func() error{func() error { pool.Close(); return nil }},
		}, nil

	case DriverMongo:
		var mc mongo.Config
		if err := config.Parse(&mc); err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, mc)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "mongo storage connected", slog.String("database", mc.Database))
		return &Backend{
			Storage: mongo.NewStorage(client.Database(mc.Database).Collection(mc.Collection)),
			Checks:  []func(context.Context) error{mongo.Healthcheck(client)},
			closers: []func() error{func() error {
				ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
				defer cancel()
				return client.Disconnect(ctx)
			}},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
}
