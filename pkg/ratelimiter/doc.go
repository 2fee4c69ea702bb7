// Package ratelimiter implements a token bucket limiter with pluggable
// storage.
//
// A Bucket holds Capacity tokens per key and regains RefillRate tokens every
// RefillInterval. AllowN takes tokens; a negative Remaining in the Result
// means the caller is over the limit. Peek reports the state without taking
// anything, which suits limiters that only charge for failures:
//
//	limiter, _ := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	if res, _ := limiter.Peek(ctx, email); res.Exhausted() {
//		ratelimiter.SetHeaders(w.Header(), res, time.Now())
//		// reject
//	}
//	// on failure:
//	_, _ = limiter.Allow(ctx, email)
//	// on success:
//	_ = limiter.Reset(ctx, email)
package ratelimiter
