package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/observability"
	"github.com/tbourn/go-idea-prototyper/internal/search"
)

// Search limits.
const (
	// SearchWindow is how many of the newest ideas are indexed per query.
	SearchWindow = 500
	// DefaultSearchLimit applies when the caller asks for k <= 0.
	DefaultSearchLimit = 5
	// MaxSearchLimit caps k.
	MaxSearchLimit = 20
)

// IdeaMatch is one search hit.
type IdeaMatch struct {
	Idea  domain.Idea
	Score float64
}

// Search returns the stored ideas most similar to query, best first. Only
// the newest SearchWindow ideas are considered.
func (s *IdeaService) Search(ctx context.Context, query string, k int) ([]IdeaMatch, error) {
	ctx, span := observability.Tracer("IdeaService").Start(ctx, "Search",
		trace.WithAttributes(attribute.Int("search.k", k)),
	)
	defer span.End()

	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptySearchQuery
	}
	switch {
	case k <= 0:
		k = DefaultSearchLimit
	case k > MaxSearchLimit:
		k = MaxSearchLimit
	}

	ideas, err := s.Repo.ListIdeasPage(ctx, s.DB, 0, SearchWindow)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	byID := make(map[string]domain.Idea, len(ideas))
	docs := make([]search.Doc, 0, len(ideas))
	for _, it := range ideas {
		byID[it.ID] = it
		docs = append(docs, search.Doc{ID: it.ID, Text: it.Text})
	}

	idx := search.NewIndex(docs, search.WithStopwords(search.DefaultStopwords))
	hits := idx.TopK(query, k)

	out := make([]IdeaMatch, 0, len(hits))
	for _, h := range hits {
		out = append(out, IdeaMatch{Idea: byID[h.ID], Score: h.Score})
	}
	span.SetAttributes(
		attribute.Int("search.indexed", idx.Len()),
		attribute.Int("search.hits", len(out)),
	)
	return out, nil
}
