// Package mongo connects to MongoDB and exposes one collection as a
// kv.Storage, with each key stored as a document whose _id is the key.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	storage := mongo.NewStorage(client.Database(cfg.Database).Collection(cfg.Collection))
//
// Configuration:
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default storefront)
//	MONGODB_COLLECTION          (default kv_entries)
//	MONGODB_CONNECT_TIMEOUT     (default 10s)
//	MONGODB_MAX_POOL_SIZE       (default 100)
//	MONGODB_MIN_POOL_SIZE       (default 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default 300s)
//	MONGODB_RETRY_WRITES        (default true)
//	MONGODB_RETRY_READS         (default true)
//	MONGODB_RETRY_ATTEMPTS      (default 3)
//	MONGODB_RETRY_INTERVAL      (default 5s)
//
// New verifies the connection with a ping before returning.
package mongo
