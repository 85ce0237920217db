// Package handlers – response helpers.
//
// Every failure leaves through fail (or failErr), so the envelope is the same
// across endpoints:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "Idea not found"
//	}
//
// Codes are stable and listed in errors.go. Messages are safe to show to
// users; internal causes are logged, never echoed.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-idea-prototyper/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with an error envelope. 5xx responses are logged
// at error level, 4xx at debug.
func fail(c *gin.Context, status int, code, msg string) {
	failErr(c, status, code, msg, nil)
}

// failErr is fail with an internal cause attached to the log line only.
func failErr(c *gin.Context, status int, code, msg string, cause error) {
	reqID := middleware.RequestIDFrom(c)
	if reqID == "" {
		reqID = c.Writer.Header().Get("X-Request-ID")
	}

	var ev *zerolog.Event
	lg := middleware.LoggerFrom(c)
	if status >= http.StatusInternalServerError {
		ev = lg.Error()
	} else {
		ev = lg.Debug()
	}
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Int("status", status).
		Str("code", code).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("api error")

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// notModified answers a conditional GET whose ETag still matches.
func notModified(c *gin.Context) {
	c.Status(http.StatusNotModified)
}

// conditionalGET sets etag on the response and reports whether the request's
// If-None-Match already names it, in which case 304 has been written.
// Weak comparison is used; "*" matches any current representation.
func conditionalGET(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	inm := c.GetHeader("If-None-Match")
	if inm == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(inm, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
			notModified(c)
			return true
		}
	}
	return false
}
