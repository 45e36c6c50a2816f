package config

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per browser session for actions that hit
// the marketplace API on the user's behalf (send, start conversation).
// Buckets live as long as the session's messenger; the messaging service
// calls Forget when it drops one.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(cfg *AppConfig) *RateLimiter {
	burst := cfg.SendRateBurst
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(cfg.SendRateLimitPerSec),
		burst:   burst,
	}
}

func (rl *RateLimiter) bucket(sessionID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[sessionID]
	if !ok {
		b = rate.NewLimiter(rl.limit, rl.burst)
		rl.buckets[sessionID] = b
	}
	return b
}

// Allow takes a token from the session's bucket. When the bucket is empty it
// returns false and how long until the next token.
func (rl *RateLimiter) Allow(sessionID string) (bool, time.Duration) {
	now := time.Now()
	reservation := rl.bucket(sessionID).ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}

	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) Forget(sessionID string) {
	rl.mu.Lock()
	delete(rl.buckets, sessionID)
	rl.mu.Unlock()
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
