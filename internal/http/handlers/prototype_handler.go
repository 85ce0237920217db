// Viability and generation HTTP handlers.
//
//   - POST /validate   (score an idea, no storage)
//   - POST /generate   (render and store the next prototype version)
//
// Generate accepts an existing idea id or raw text; text without an id
// creates the idea first. It honors Idempotency-Key: a replay returns the
// version produced by the first request instead of generating another one.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/services"
)

// ValidateRequest is the JSON payload for POST /validate.
type ValidateRequest struct {
	Text *string `json:"text" example:"An AI assistant for enterprise teams"`
}

// GenerateRequest is the JSON payload for POST /generate.
type GenerateRequest struct {
	// IdeaID selects an existing idea; it wins over Text.
	IdeaID string `json:"idea_id,omitempty" example:"01J9Z3M6Q4T8V2X5B7C9D1F3GH"`
	// Text creates a new idea when IdeaID is empty.
	Text string `json:"text,omitempty" example:"Sell courses online"`
	// SiteType is one of landing, dashboard, ecommerce, blog.
	SiteType string `json:"site_type" example:"dashboard" enums:"landing,dashboard,ecommerce,blog"`
	// Notes are stored with the version as-is.
	Notes *string `json:"notes,omitempty"`
}

// ValidateIdea godoc
// @ID          validateIdea
// @Summary     Score an idea
// @Description Runs the keyword heuristics over the text and returns scores, risks, opportunities and fixed recommendations. Works without storage.
// @Tags        Ideas
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ValidateRequest  true  "Idea text"
//
// @Success     200  {object}  scoring.Assessment
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /validate [post]
func (h *Handlers) ValidateIdea(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: text is required")
		return
	}
	ok(c, http.StatusOK, services.Assess(c.Request.Context(), *req.Text))
}

// GeneratePrototype godoc
// @ID          generatePrototype
// @Summary     Generate a prototype version
// @Description Renders a single-file Tailwind page for the idea and stores it as the idea's next version (previous highest + 1).
// @Tags        Versions
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.GenerateRequest  true  "Generation request"
//
// @Success     200  {object}  handlers.GenerateResponse
// @Header      200  {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request, missing idea input, invalid site_type or malformed id"
// @Failure     404  {object}  handlers.ErrorResponse  "Idea not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Version number contention"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /generate [post]
func (h *Handlers) GeneratePrototype(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	site, err := domain.ParseSiteType(req.SiteType)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidSiteType, "site_type must be one of landing, dashboard, ecommerce, blog")
		return
	}

	ctx := c.Request.Context()
	if id, found := h.replayedResource(c); found {
		if prev, err := h.protoSvc.GetVersion(ctx, id); err == nil {
			markReplayed(c)
			ok(c, http.StatusOK, toGenerateResponse(prev))
			return
		}
	}

	v, err := h.protoSvc.Generate(ctx, services.GenerateInput{
		IdeaID:   req.IdeaID,
		Text:     req.Text,
		SiteType: site,
		Notes:    req.Notes,
	})
	if err != nil {
		mapServiceError(c, err, ErrCodeGenerateFailed)
		return
	}
	h.rememberResource(c, v.ID, http.StatusOK)
	ok(c, http.StatusOK, toGenerateResponse(v))
}
