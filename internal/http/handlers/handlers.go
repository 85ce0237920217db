// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate input, call application
// services, and translate results (and service errors) into HTTP responses.
package handlers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/services"
)

// IdeaService defines idea operations consumed by HTTP handlers.
type IdeaService interface {
	// Create stores a new idea.
	Create(ctx context.Context, text string) (*domain.Idea, error)
	// Get returns a single idea.
	Get(ctx context.Context, id string) (*domain.Idea, error)
	// ListPage returns a page of ideas, newest first, and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Idea, int64, error)
	// Search ranks stored ideas by similarity to a query.
	Search(ctx context.Context, query string, k int) ([]services.IdeaMatch, error)
}

// PrototypeService defines generation and version retrieval.
type PrototypeService interface {
	// Generate renders and stores the next version for an idea.
	Generate(ctx context.Context, in services.GenerateInput) (*domain.PrototypeVersion, error)
	// ListVersions returns all versions of an idea, highest first.
	ListVersions(ctx context.Context, ideaID string) ([]domain.PrototypeVersion, error)
	// GetVersion returns a single version.
	GetVersion(ctx context.Context, id string) (*domain.PrototypeVersion, error)
}

// DiagnosticsService backs GET /test.
type DiagnosticsService interface {
	Check(ctx context.Context) services.DiagnosticsReport
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	ideaSvc  IdeaService
	protoSvc PrototypeService
	diagSvc  DiagnosticsService

	// IdempotencyTTL is how long a stored POST result can be replayed.
	IdempotencyTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(ideaSvc IdeaService, protoSvc PrototypeService, diagSvc DiagnosticsService) *Handlers {
	return &Handlers{
		ideaSvc:        ideaSvc,
		protoSvc:       protoSvc,
		diagSvc:        diagSvc,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// storeDB returns the database behind the concrete services, used for ETag
// stats and idempotency records. Nil when storage is unavailable or the
// services are fakes.
func (h *Handlers) storeDB() *gorm.DB {
	if svc, ok := h.ideaSvc.(*services.IdeaService); ok && svc.DB != nil {
		return svc.DB
	}
	if svc, ok := h.protoSvc.(*services.PrototypeService); ok && svc.DB != nil {
		return svc.DB
	}
	return nil
}
