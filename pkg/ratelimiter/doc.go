// Package ratelimiter provides token bucket rate limiting with pluggable
// storage backends.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes tokens; a request that would overdraw
// the bucket is denied and consumes nothing, so repeated denied attempts do
// not extend the lockout.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, "login:"+ip)
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		// retry after result.RetryAfter()
//	}
//
// # Memory store lifecycle
//
// MemoryStore drops buckets unused for an hour. The cleanup loop runs under
// Start or, for errgroup based lifecycles, Run:
//
//	g.Go(store.Run(ctx))
package ratelimiter
