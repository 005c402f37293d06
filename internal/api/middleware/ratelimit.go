package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/storekeep/adminapi/internal/config"
)

// SessionRateLimiter keeps one token bucket per session so one aggressive
// dashboard tab cannot starve the others. Unauthenticated requests share a
// bucket per client IP. Entries idle past the configured TTL are evicted by
// a background sweep; IP keys are cheap for a caller to mint, so the map
// must not grow without bound.
type SessionRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	entryTTL time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewSessionRateLimiter(cfg config.RateLimitConfig) *SessionRateLimiter {
	rl := &SessionRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		entryTTL: cfg.EntryTTL,
		now:      time.Now,
	}

	// Start background cleanup goroutine
	go rl.cleanupLoop(cfg.CleanupInterval)

	return rl
}

func (rl *SessionRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

// cleanupLoop periodically removes limiters that have gone quiet.
func (rl *SessionRateLimiter) cleanupLoop(interval time.Duration) {
	if interval <= 0 || rl.entryTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

// cleanup removes entries that haven't been used within the entry TTL.
func (rl *SessionRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

func (rl *SessionRateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware rejects requests that exceed the per-session budget.
func (rl *SessionRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := GetSessionID(c)
		if !ok {
			key = "ip:" + c.ClientIP()
		}

		if !rl.getLimiter(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
