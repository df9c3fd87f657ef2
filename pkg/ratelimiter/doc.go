// Package ratelimiter implements a token bucket limiter with pluggable storage.
//
// Each key owns a bucket of Capacity tokens that regains RefillRate tokens
// every RefillInterval. A request consumes one token; it is denied once the
// bucket is empty.
//
// MemoryStore serves a single process. RedisStore keeps the buckets in Redis
// so that every replica draws from the same budget.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	res, err := limiter.Allow(ctx, clientip.FromContext(ctx))
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
package ratelimiter
