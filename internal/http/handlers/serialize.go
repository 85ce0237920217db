// Package handlers – document serialization.
//
// Stored records are never written to the wire directly. The DTOs below
// rename the storage key to `id`, render timestamps as ISO-8601 (RFC 3339,
// UTC) and fix the JSON field names clients depend on.
package handlers

import (
	"time"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/services"
)

// IdeaDTO is the wire form of an idea.
type IdeaDTO struct {
	ID        string `json:"id" example:"01J9Z3M6Q4T8V2X5B7C9D1F3GH"`
	Text      string `json:"text" example:"Sell courses online"`
	CreatedAt string `json:"created_at" example:"2024-05-01T10:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-05-01T10:00:00Z"`
}

// VersionDTO is the wire form of a prototype version.
type VersionDTO struct {
	ID        string  `json:"id" example:"01J9Z3N0A1B2C3D4E5F6G7H8J9"`
	IdeaID    string  `json:"idea_id" example:"01J9Z3M6Q4T8V2X5B7C9D1F3GH"`
	IdeaText  string  `json:"idea_text" example:"Sell courses online"`
	SiteType  string  `json:"site_type" example:"dashboard" enums:"landing,dashboard,ecommerce,blog"`
	Version   int     `json:"version" example:"2"`
	Code      string  `json:"code"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"created_at" example:"2024-05-01T10:00:00Z"`
	UpdatedAt string  `json:"updated_at" example:"2024-05-01T10:00:00Z"`
}

// GenerateResponse is returned by POST /generate.
type GenerateResponse struct {
	VersionID string `json:"version_id" example:"01J9Z3N0A1B2C3D4E5F6G7H8J9"`
	IdeaID    string `json:"idea_id" example:"01J9Z3M6Q4T8V2X5B7C9D1F3GH"`
	Version   int    `json:"version" example:"1"`
	SiteType  string `json:"site_type" example:"landing"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at" example:"2024-05-01T10:00:00Z"`
}

// CreateIdeaResponse is returned by POST /ideas.
type CreateIdeaResponse struct {
	IdeaID string `json:"idea_id" example:"01J9Z3M6Q4T8V2X5B7C9D1F3GH"`
}

// ListVersionsResponse wraps the versions of one idea, highest first.
type ListVersionsResponse struct {
	Count int          `json:"count" example:"2"`
	Items []VersionDTO `json:"items"`
}

// SearchHit is one ranked idea in a search response.
type SearchHit struct {
	Idea  IdeaDTO `json:"idea"`
	Score float64 `json:"score" example:"0.5"`
}

// SearchIdeasResponse is returned by GET /search.
type SearchIdeasResponse struct {
	Query string      `json:"query" example:"plant shop"`
	Count int         `json:"count" example:"1"`
	Items []SearchHit `json:"items"`
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toIdeaDTO(i *domain.Idea) IdeaDTO {
	return IdeaDTO{
		ID:        i.ID,
		Text:      i.Text,
		CreatedAt: isoTime(i.CreatedAt),
		UpdatedAt: isoTime(i.UpdatedAt),
	}
}

func toSearchHits(matches []services.IdeaMatch) []SearchHit {
	out := make([]SearchHit, 0, len(matches))
	for i := range matches {
		out = append(out, SearchHit{Idea: toIdeaDTO(&matches[i].Idea), Score: matches[i].Score})
	}
	return out
}

func toIdeaDTOs(items []domain.Idea) []IdeaDTO {
	out := make([]IdeaDTO, 0, len(items))
	for i := range items {
		out = append(out, toIdeaDTO(&items[i]))
	}
	return out
}

func toVersionDTO(v *domain.PrototypeVersion) VersionDTO {
	return VersionDTO{
		ID:        v.ID,
		IdeaID:    v.IdeaID,
		IdeaText:  v.IdeaText,
		SiteType:  v.SiteType.String(),
		Version:   v.Version,
		Code:      v.Code,
		Notes:     v.Notes,
		CreatedAt: isoTime(v.CreatedAt),
		UpdatedAt: isoTime(v.UpdatedAt),
	}
}

func toVersionDTOs(items []domain.PrototypeVersion) []VersionDTO {
	out := make([]VersionDTO, 0, len(items))
	for i := range items {
		out = append(out, toVersionDTO(&items[i]))
	}
	return out
}

func toGenerateResponse(v *domain.PrototypeVersion) GenerateResponse {
	return GenerateResponse{
		VersionID: v.ID,
		IdeaID:    v.IdeaID,
		Version:   v.Version,
		SiteType:  v.SiteType.String(),
		Code:      v.Code,
		CreatedAt: isoTime(v.CreatedAt),
	}
}
