// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Idea model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - When an idea is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound).
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/idcodec"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateIdea inserts a new Idea with a fresh ULID and equal UTC timestamps.
func CreateIdea(ctx context.Context, db *gorm.DB, text string) (*domain.Idea, error) {
	now := time.Now().UTC()
	idea := &domain.Idea{
		ID:        idcodec.New(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

// GetIdea fetches a single idea by id, or ErrNotFound if missing.
func GetIdea(ctx context.Context, db *gorm.DB, id string) (*domain.Idea, error) {
	var idea domain.Idea
	if err := db.WithContext(ctx).Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// CountIdeas returns the total number of stored ideas.
func CountIdeas(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Idea{}).Count(&total).Error
	return total, err
}

// ListIdeasPage returns a page of ideas, newest first. IDs break ties so
// ideas created within the same clock tick keep a stable order.
func ListIdeasPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Idea, error) {
	var out []domain.Idea
	err := db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
