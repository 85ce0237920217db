// Package domain defines the persistence models for ideas and their generated
// prototype versions. These types are mapped with GORM and form the core data
// layer of the prototyper service.
package domain

import (
	"time"
)

// Idea is a free-text product idea submitted by a client. Ideas are created
// once and never updated or deleted by the service.
//
// Fields:
//   - ID: opaque ULID primary key (char(26)).
//   - Text: the raw idea text exactly as submitted.
//   - CreatedAt / UpdatedAt: UTC timestamps, equal at creation.
type Idea struct {
	ID        string    `json:"id"         gorm:"type:char(26);primaryKey"`
	Text      string    `json:"text"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_ideas_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Idea.
func (Idea) TableName() string { return "ideas" }

// PrototypeVersion is one generated prototype page for an idea. Versions are
// numbered per owning idea starting at 1; the (idea_id, version) pair is unique
// so two concurrent generations can never store the same number twice.
//
// IdeaID is deliberately not a foreign key: versions are looked up by owner id
// and the owner row is only consulted when the request names it.
//
// Fields:
//   - ID: opaque ULID primary key (char(26)).
//   - IdeaID: owning idea identifier.
//   - IdeaText: snapshot of the idea text at generation time.
//   - SiteType: archetype used to render Code.
//   - Version: per-idea sequence number (>= 1).
//   - Code: the rendered single-file HTML document.
//   - Notes: optional free-text notes supplied with the request.
//   - CreatedAt / UpdatedAt: UTC timestamps, equal at creation.
type PrototypeVersion struct {
	ID        string    `json:"id"         gorm:"type:char(26);primaryKey"`
	IdeaID    string    `json:"idea_id"    gorm:"type:char(26);not null;uniqueIndex:ux_idea_version,priority:1"`
	IdeaText  string    `json:"idea_text"  gorm:"type:text;not null"`
	SiteType  SiteType  `json:"site_type"  gorm:"type:varchar(16);not null;check:site_type IN ('landing','dashboard','ecommerce','blog')"`
	Version   int       `json:"version"    gorm:"not null;check:version >= 1;uniqueIndex:ux_idea_version,priority:2"`
	Code      string    `json:"code"       gorm:"type:text;not null"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for PrototypeVersion.
func (PrototypeVersion) TableName() string { return "prototype_versions" }
