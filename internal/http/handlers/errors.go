// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them instead of
// on messages. mapServiceError translates service sentinels into a status and
// a code so every handler reports the same failure the same way.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "Idea not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeStorageUnavailable = "storage_unavailable"
	ErrCodeInvalidID          = "invalid_id"
	ErrCodeInvalidSiteType    = "invalid_site_type"
	ErrCodeMissingIdeaInput   = "missing_idea_input"
	ErrCodeGenerateFailed     = "generate_failed"
)

// mapServiceError writes the error envelope matching err. Unknown errors are
// reported as 500 with fallbackCode.
func mapServiceError(c *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, services.ErrStorageUnavailable):
		fail(c, http.StatusInternalServerError, ErrCodeStorageUnavailable, "Database not available")
	case errors.Is(err, services.ErrInvalidID):
		fail(c, http.StatusBadRequest, ErrCodeInvalidID, "Invalid ID format")
	case errors.Is(err, services.ErrIdeaNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Idea not found")
	case errors.Is(err, services.ErrVersionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Version not found")
	case errors.Is(err, services.ErrEmptyIdeaText):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Idea text is required")
	case errors.Is(err, services.ErrEmptySearchQuery):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Query parameter q is required")
	case errors.Is(err, services.ErrMissingIdeaInput):
		fail(c, http.StatusBadRequest, ErrCodeMissingIdeaInput, "Provide idea_id or text")
	case errors.Is(err, services.ErrInvalidSiteType):
		fail(c, http.StatusBadRequest, ErrCodeInvalidSiteType, "Invalid site_type")
	case errors.Is(err, services.ErrVersionConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, "Could not allocate a version number, retry")
	default:
		failErr(c, http.StatusInternalServerError, fallbackCode, "Internal server error", err)
	}
}
