package service

import (
	"sync"
	"time"
)

// staleAfter is how long an untouched bucket is kept before pruning.
const staleAfter = 10 * time.Minute

// TokenBucket throttles repeated login and recovery attempts per username.
// Each attempt consumes a token; tokens refill at a fixed rate up to the
// bucket capacity. Stale buckets are pruned lazily on access.
type TokenBucket struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens added per second
	capacity  float64 // maximum tokens
	now       func() time.Time
	lastPrune time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a limiter that allows up to capacity attempts per
// key, refilling at the given rate (tokens per second).
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		now:      time.Now,
	}
}

// NewAttemptLimiter creates a limiter allowing burst attempts per key, with
// one attempt restored every refill interval.
func NewAttemptLimiter(burst int, refill time.Duration) *TokenBucket {
	rate := 0.0
	if refill > 0 {
		rate = 1 / refill.Seconds()
	}
	return NewTokenBucket(rate, float64(burst))
}

// Allow reports whether the given key may attempt again. Each call
// consumes one token. Returns false if the bucket is empty.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	tb.pruneLocked(now)

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Reset forgets the attempts recorded for key, e.g. after a successful login.
func (tb *TokenBucket) Reset(key string) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	delete(tb.buckets, key)
}

func (tb *TokenBucket) pruneLocked(now time.Time) {
	if now.Sub(tb.lastPrune) < staleAfter {
		return
	}
	tb.lastPrune = now
	cutoff := now.Add(-staleAfter)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
