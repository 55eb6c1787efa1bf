// Package pg connects to PostgreSQL through a pgx pool, applies the embedded
// schema with goose and exposes a kv.Storage backed by a single table.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, logger); err != nil {
//		return err
//	}
//	storage := pg.NewStorage(pool)
//
// Storage calls join the transaction carried by the context (see WithTx).
// Atomic wraps several writes in one transaction:
//
//	err := storage.Atomic(ctx, func(ctx context.Context) error {
//		if err := storage.Set(ctx, kv.KeyProducts, raw); err != nil {
//			return err
//		}
//		return storage.Delete(ctx, kv.KeyIsLoggedIn)
//	})
//
// Configuration:
//
//	PG_CONN_URL            (required)
//	PG_MAX_OPEN_CONNS      (default 10)
//	PG_MAX_IDLE_CONNS      (default 5)
//	PG_HEALTHCHECK_PERIOD  (default 1m)
//	PG_MAX_CONN_IDLE_TIME  (default 10m)
//	PG_MAX_CONN_LIFETIME   (default 30m)
//	PG_RETRY_ATTEMPTS      (default 3)
//	PG_RETRY_INTERVAL      (default 5s)
//	PG_MIGRATIONS_TABLE    (default schema_migrations)
package pg
