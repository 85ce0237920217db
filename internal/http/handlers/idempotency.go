// Idempotency support for POST handlers.
//
// When a request carries an Idempotency-Key and a still-valid record exists
// for (scope, key), the handler answers with the stored resource and sets
// `Idempotency-Replayed: true`. Otherwise the fresh result is recorded, best
// effort, so the next retry can be replayed.
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/http/middleware"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
)

// idempotencyKey prefers the key validated by middleware and falls back to
// the raw header when no validator is installed.
func idempotencyKey(c *gin.Context) string {
	if k, ok := middleware.GetIdempotencyKey(c); ok {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}

// replayedResource returns the resource id stored for this request's
// idempotency key, if any.
func (h *Handlers) replayedResource(c *gin.Context) (string, bool) {
	key := idempotencyKey(c)
	db := h.storeDB()
	if key == "" || db == nil {
		return "", false
	}
	rec, err := repo.GetIdempotency(c.Request.Context(), db, middleware.IdempotencyScope(c), key, time.Now().UTC())
	if err != nil || rec == nil {
		return "", false
	}
	return rec.ResourceID, true
}

// rememberResource records resourceID under this request's idempotency key.
// Failures are logged and otherwise ignored.
func (h *Handlers) rememberResource(c *gin.Context, resourceID string, status int) {
	key := idempotencyKey(c)
	db := h.storeDB()
	if key == "" || db == nil {
		return
	}
	ttl := h.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if _, err := repo.CreateIdempotency(c.Request.Context(), db, middleware.IdempotencyScope(c), key, resourceID, status, ttl); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("key", key).Msg("store idempotency record")
	}
}

func markReplayed(c *gin.Context) {
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
}
