package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key. Each bucket holds
// maxRequests tokens and refills one every window/maxRequests.
type RateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	limit       rate.Limit
	clients     map[string]*clientEntry
	lastSweep   time.Time
	now         func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows maxRequests requests per window for each client key.
// A non-positive maxRequests disables limiting.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		clients:     make(map[string]*clientEntry),
		now:         time.Now,
	}
	if maxRequests > 0 && window > 0 {
		rl.limit = rate.Every(window / time.Duration(maxRequests))
	}
	return rl
}

// Allow takes a token for key. When the request is refused it also returns
// how long until a token is available.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.maxRequests <= 0 || rl.window <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepLocked(now)

	entry, ok := rl.clients[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rl.limit, rl.maxRequests)}
		rl.clients[key] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		// Refused requests must not consume the token they would have waited for.
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweepLocked drops clients idle for a full window at most once per window.
// An idle bucket has refilled completely by then, so dropping it loses nothing.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for key, entry := range rl.clients {
		if now.Sub(entry.lastSeen) >= rl.window {
			delete(rl.clients, key)
		}
	}
}

// Tracked returns the number of clients holding a bucket.
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
