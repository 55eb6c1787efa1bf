// Package redis connects to Redis and exposes it as a kv.Storage.
//
// Connect parses a redis:// or rediss:// URL, retries the initial ping with
// backoff and returns a ready client. Healthcheck wraps the client for the
// readiness check. Storage maps storefront keys onto plain Redis strings
// under an optional prefix, so several storefronts can share one database.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	storage := redis.NewStorage(client, redis.WithPrefix("storefront:"))
//	defer storage.Close()
//
// Configuration:
//
//	REDIS_URL             (required, default redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS  (default 3)
//	REDIS_RETRY_INTERVAL  (default 5s)
//	REDIS_CONNECT_TIMEOUT (default 30s)
//	REDIS_KEY_PREFIX      (default "storefront:")
package redis
