// Package services – IdeaService
//
// This file implements IdeaService, which stores and retrieves ideas. Ideas
// are immutable once created. Identifiers are validated before any storage
// access so malformed ids never reach the database.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/idcodec"
	"github.com/tbourn/go-idea-prototyper/internal/observability"
)

// IdeaRepo defines the repository contract required by IdeaService.
type IdeaRepo interface {
	// CreateIdea inserts a new idea row.
	CreateIdea(ctx context.Context, db *gorm.DB, text string) (*domain.Idea, error)

	// GetIdea fetches an idea by id.
	GetIdea(ctx context.Context, db *gorm.DB, id string) (*domain.Idea, error)

	// CountIdeas returns the total number of ideas for pagination.
	CountIdeas(ctx context.Context, db *gorm.DB) (int64, error)

	// ListIdeasPage returns a page of ideas, newest first.
	ListIdeasPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Idea, error)
}

// IdeaService provides idea-level operations. A nil DB means storage is
// unavailable and every method returns ErrStorageUnavailable.
type IdeaService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the idea repository used by this service.
	Repo IdeaRepo
}

// NewIdeaService constructs an IdeaService.
func NewIdeaService(db *gorm.DB, r IdeaRepo) *IdeaService {
	return &IdeaService{DB: db, Repo: r}
}

// Create stores text as a new idea. The text is kept exactly as submitted;
// only blank text is rejected.
func (s *IdeaService) Create(ctx context.Context, text string) (*domain.Idea, error) {
	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyIdeaText
	}
	idea, err := s.Repo.CreateIdea(ctx, s.DB, text)
	if err != nil {
		return nil, err
	}
	observability.IdeasCreated.WithLabelValues("api").Inc()
	return idea, nil
}

// Get returns the idea identified by id.
func (s *IdeaService) Get(ctx context.Context, id string) (*domain.Idea, error) {
	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}
	id, err := idcodec.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	idea, err := s.Repo.GetIdea(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIdeaNotFound
	}
	return idea, err
}

// ListPage returns a page of ideas (newest first) and the total count.
// It applies defaults for invalid page/pageSize.
func (s *IdeaService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Idea, int64, error) {
	if s.DB == nil {
		return nil, 0, ErrStorageUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountIdeas(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Idea{}, 0, nil
	}

	items, err := s.Repo.ListIdeasPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}
