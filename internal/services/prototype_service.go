// Package services – PrototypeService
//
// PrototypeService turns an idea into a rendered prototype page and stores it
// as the next version for that idea. Version numbers are derived as the
// current maximum plus one. The (idea_id, version) pair is unique in storage,
// so when two generations race for the same number one insert fails with
// repo.ErrDuplicate and is retried against the new maximum.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/idcodec"
	"github.com/tbourn/go-idea-prototyper/internal/observability"
	"github.com/tbourn/go-idea-prototyper/internal/render"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
)

// DefaultMaxAttempts bounds how many times Generate re-reads the maximum
// version after a collision.
const DefaultMaxAttempts = 3

// GenerateInput is the request to produce a new prototype version. Either
// IdeaID or Text must be set; IdeaID wins when both are present.
type GenerateInput struct {
	IdeaID   string
	Text     string
	SiteType domain.SiteType
	Notes    *string
}

// PrototypeService coordinates rendering and versioned persistence.
type PrototypeService struct {
	DB *gorm.DB

	// MaxAttempts caps insert attempts per generation (>= 1).
	MaxAttempts int

	// Render produces the page markup; defaults to render.Render.
	Render func(domain.SiteType, string) string

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

// NewPrototypeService constructs a PrototypeService with default hooks.
func NewPrototypeService(db *gorm.DB, maxAttempts int) *PrototypeService {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &PrototypeService{
		DB:          db,
		MaxAttempts: maxAttempts,
		Render:      render.Render,
		Now:         time.Now,
	}
}

// NextVersion returns the version number the next generation for ideaID
// would receive: the highest stored version plus one, or 1 if none.
// Gaps are not filled: versions {1, 3} yield 4.
func (s *PrototypeService) NextVersion(ctx context.Context, ideaID string) (int, error) {
	if s.DB == nil {
		return 0, ErrStorageUnavailable
	}
	return nextVersion(ctx, s.DB, ideaID)
}

func nextVersion(ctx context.Context, db *gorm.DB, ideaID string) (int, error) {
	highest, err := repo.MaxVersion(ctx, db, ideaID)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// Generate resolves (or creates) the idea, renders the page for in.SiteType
// and stores it as the idea's next version.
func (s *PrototypeService) Generate(ctx context.Context, in GenerateInput) (*domain.PrototypeVersion, error) {
	ctx, span := observability.Tracer("PrototypeService").Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("site.type", string(in.SiteType)),
			attribute.Bool("idea.provided", in.IdeaID != ""),
		),
	)
	defer span.End()

	if !in.SiteType.Valid() {
		return nil, ErrInvalidSiteType
	}
	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}

	ideaID, ideaText, err := s.resolveIdea(ctx, in)
	if err != nil {
		if !isClientError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolve idea")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("idea.id", ideaID))

	now := s.now()
	v := &domain.PrototypeVersion{
		ID:        idcodec.New(),
		IdeaID:    ideaID,
		IdeaText:  ideaText,
		SiteType:  in.SiteType,
		Code:      s.render(in.SiteType, ideaText),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.storeNext(ctx, v)
		if !errors.Is(err, repo.ErrDuplicate) {
			break
		}
		observability.VersionConflicts.Inc()
		log.Ctx(ctx).Warn().
			Str("idea_id", ideaID).
			Int("version", v.Version).
			Int("attempt", attempt).
			Msg("version collision, retrying")
	}
	if errors.Is(err, repo.ErrDuplicate) {
		err = ErrVersionConflict
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store version")
		return nil, err
	}

	span.SetAttributes(attribute.Int("version", v.Version))
	observability.PrototypesGenerated.WithLabelValues(string(v.SiteType)).Inc()
	return v, nil
}

// storeNext numbers v as the idea's next version and inserts it. A concurrent
// writer that took the same number makes the insert fail with repo.ErrDuplicate.
func (s *PrototypeService) storeNext(ctx context.Context, v *domain.PrototypeVersion) error {
	n, err := nextVersion(ctx, s.DB, v.IdeaID)
	if err != nil {
		return err
	}
	v.Version = n
	return repo.CreateVersion(ctx, s.DB, v)
}

// resolveIdea returns the id and text of the idea a generation is for,
// creating a new idea from in.Text when no id is given.
func (s *PrototypeService) resolveIdea(ctx context.Context, in GenerateInput) (string, string, error) {
	if strings.TrimSpace(in.IdeaID) != "" {
		id, err := idcodec.Parse(in.IdeaID)
		if err != nil {
			return "", "", ErrInvalidID
		}
		idea, err := repo.GetIdea(ctx, s.DB, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrIdeaNotFound
		}
		if err != nil {
			return "", "", err
		}
		return idea.ID, idea.Text, nil
	}

	if strings.TrimSpace(in.Text) == "" {
		return "", "", ErrMissingIdeaInput
	}
	idea, err := repo.CreateIdea(ctx, s.DB, in.Text)
	if err != nil {
		return "", "", err
	}
	observability.IdeasCreated.WithLabelValues("generate").Inc()
	return idea.ID, idea.Text, nil
}

// ListVersions returns every version of ideaID, highest first. An unknown
// but well-formed id yields an empty list.
func (s *PrototypeService) ListVersions(ctx context.Context, ideaID string) ([]domain.PrototypeVersion, error) {
	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}
	id, err := idcodec.Parse(ideaID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return repo.ListVersions(ctx, s.DB, id)
}

// GetVersion returns a single version by its id.
func (s *PrototypeService) GetVersion(ctx context.Context, versionID string) (*domain.PrototypeVersion, error) {
	if s.DB == nil {
		return nil, ErrStorageUnavailable
	}
	id, err := idcodec.Parse(versionID)
	if err != nil {
		return nil, ErrInvalidID
	}
	v, err := repo.GetVersion(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVersionNotFound
	}
	return v, err
}

func (s *PrototypeService) render(site domain.SiteType, text string) string {
	if s.Render != nil {
		return s.Render(site, text)
	}
	return render.Render(site, text)
}

func (s *PrototypeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// isClientError reports whether err is caused by the request rather than the service.
func isClientError(err error) bool {
	return errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrIdeaNotFound) ||
		errors.Is(err, ErrMissingIdeaInput) ||
		errors.Is(err, ErrInvalidSiteType)
}
