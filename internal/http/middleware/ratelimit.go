// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// RateLimiter is an in-memory token bucket per client key built on
// golang.org/x/time/rate. It is process-local: each replica enforces its own
// budget. Idle buckets are evicted opportunistically so memory stays bounded
// under churn.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit response headers.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// rateLimitedCode matches handlers.ErrCodeRateLimited.
	rateLimitedCode = "too_many_requests"

	visitorTTL   = 10 * time.Minute
	gcEveryCalls = 5000
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by the client address as resolved by Gin
// (trusted proxies honored), e.g. "ip:203.0.113.7".
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter. It is safe for
// concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
	cleanupN uint64

	exemptMu sync.RWMutex
	exempt   map[string]struct{}
}

// NewRateLimiter builds a limiter refilling rps tokens per second with room
// for burst. burst <= 0 becomes 1; a nil keyFn keys by client IP.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = KeyByClientIP()
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      visitorTTL,
		exempt:   map[string]struct{}{},
	}
}

// Exempt excludes the given request paths from limiting. It returns rl so
// it can be chained at construction time.
func (rl *RateLimiter) Exempt(paths ...string) *RateLimiter {
	rl.exemptMu.Lock()
	defer rl.exemptMu.Unlock()
	for _, p := range paths {
		rl.exempt[p] = struct{}{}
	}
	return rl
}

func (rl *RateLimiter) isExempt(path string) bool {
	rl.exemptMu.RLock()
	defer rl.exemptMu.RUnlock()
	_, ok := rl.exempt[path]
	return ok
}

// getVisitor returns the limiter for key, creating it if absent. Every
// gcEveryCalls lookups, buckets idle for at least ttl are dropped first, so
// a stale bucket is replaced rather than refreshed.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= gcEveryCalls {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// retryAfter is the whole number of seconds until one token is back.
func (rl *RateLimiter) retryAfter() int {
	if rl.rps <= 0 {
		return 60
	}
	return max(1, int(math.Ceil(1/float64(rl.rps))))
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay that should not consume tokens.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the per-key limits. Exempt paths and replays pass
// through untouched. Limited requests get 429 with Retry-After and the
// standard error envelope:
//
//	{ "request_id": "...", "code": "too_many_requests", "message": "rate limit exceeded" }
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	limit := strconv.Itoa(rl.burst)
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.isExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		lim := rl.getVisitor(rl.keyFn(c))
		allowed := lim.Allow()

		c.Header(HeaderRateLimit, limit)
		c.Header(HeaderRateRemaining, strconv.Itoa(max(0, int(lim.Tokens()))))
		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(rl.retryAfter()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       rateLimitedCode,
			"message":    "rate limit exceeded",
		})
	}
}
