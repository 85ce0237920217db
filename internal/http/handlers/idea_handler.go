// Idea HTTP handlers.
//
// This file exposes REST endpoints for idea resources:
//   - POST   /ideas        (create, Idempotency-Key aware)
//   - GET    /ideas        (list, paginated, ETag support)
//   - GET    /ideas/{id}   (fetch one)
package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/repo"
	"github.com/tbourn/go-idea-prototyper/internal/utils"
)

// CreateIdeaRequest is the JSON payload for creating an idea.
type CreateIdeaRequest struct {
	// Text is the raw idea as typed by the user.
	Text *string `json:"text" example:"Sell courses online to busy teachers"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListIdeasResponse wraps a page of ideas and pagination information.
type ListIdeasResponse struct {
	Ideas      []IdeaDTO  `json:"ideas"`
	Pagination Pagination `json:"pagination"`
}

// clampPagination reads page and page_size from the query string. Missing or
// unparsable values fall back to 1 and 20; page_size is capped at 100.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.IntParam(c.Query("page"), defaultPage, 1, math.MaxInt32)
	pageSize = utils.IntParam(c.Query("page_size"), defaultPageSize, 1, maxPageSize)
	return
}

// CreateIdea godoc
// @ID          createIdea
// @Summary     Submit an idea
// @Description Stores the idea text and returns its id. Supports idempotency via the Idempotency-Key header.
// @Tags        Ideas
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateIdeaRequest  true  "Idea payload"
//
// @Success     200  {object}  handlers.CreateIdeaResponse
// @Header      200  {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /ideas [post]
func (h *Handlers) CreateIdea(c *gin.Context) {
	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: text is required")
		return
	}

	if id, found := h.replayedResource(c); found {
		markReplayed(c)
		ok(c, http.StatusOK, CreateIdeaResponse{IdeaID: id})
		return
	}

	idea, err := h.ideaSvc.Create(c.Request.Context(), *req.Text)
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	h.rememberResource(c, idea.ID, http.StatusOK)
	ok(c, http.StatusOK, CreateIdeaResponse{IdeaID: idea.ID})
}

// GetIdea godoc
// @ID          getIdea
// @Summary     Fetch an idea
// @Tags        Ideas
// @Produce     json
//
// @Param       id  path  string  true  "Idea ID (ULID)"  example(01J9Z3M6Q4T8V2X5B7C9D1F3GH)
//
// @Success     200  {object}  handlers.IdeaDTO
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404  {object}  handlers.ErrorResponse  "Idea not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /ideas/{id} [get]
func (h *Handlers) GetIdea(c *gin.Context) {
	idea, err := h.ideaSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, toIdeaDTO(idea))
}

// ListIdeas godoc
// @ID          listIdeas
// @Summary     List ideas (paginated)
// @Description Returns a page of ideas, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Ideas
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"ideas:3:1714557600:1:20\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListIdeasResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ideas [get]
func (h *Handlers) ListIdeas(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if db := h.storeDB(); db != nil {
		count, maxTS, err := repo.IdeasStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"ideas:%d:%d:%d:%d"`, count, ts, page, pageSize)
			if conditionalGET(c, etag) {
				return
			}
		}
	}

	items, total, err := h.ideaSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListIdeasResponse{
		Ideas: toIdeaDTOs(items),
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
