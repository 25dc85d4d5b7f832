// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a lightweight, in-memory, token-bucket rate limiter
// with per-client buckets and opportunistic garbage collection. It is
// process-local: for horizontally scaled deployments prefer a distributed
// limiter to enforce global limits.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds a single rate limiter and the last time it was seen, so
// idle buckets can be evicted.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-client token-bucket rate limiter keyed by
// client IP. Buckets are created on demand in a mutex-guarded map; idle
// buckets are evicted after a TTL during lookups to bound memory.
//
// Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter replenishing rps tokens per
// second with the given burst size (values <= 0 are coerced to 1).
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns (and refreshes) the limiter for key, creating it if
// absent, and opportunistically evicts idle buckets.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	// Sweep roughly every 256 lookups.
	rl.cleanupN++
	if rl.cleanupN%256 == 0 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) > rl.ttl {
				delete(rl.visitors, k)
			}
		}
	}
	return v.limiter
}

// Handler returns the limiter as Gin middleware. Requests that exceed the
// budget are rejected with 429 and the standard error envelope.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor("ip:" + c.ClientIP()).Allow() {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"request_id": asString(rid),
				"code":       "too_many_requests",
				"message":    "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
