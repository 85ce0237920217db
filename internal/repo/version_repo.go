// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PrototypeVersion model.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
)

// MaxVersion returns the highest version number stored for ideaID, or 0 when
// the idea has no versions yet.
func MaxVersion(ctx context.Context, db *gorm.DB, ideaID string) (int, error) {
	var row struct {
		Version int
	}
	// ORDER BY + LIMIT instead of MAX() keeps the integer type under SQLite.
	err := db.WithContext(ctx).
		Model(&domain.PrototypeVersion{}).
		Select("version").
		Where("idea_id = ?", ideaID).
		Order("version desc").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Version, nil
}

// CreateVersion inserts v. A clash on (idea_id, version) is reported as
// ErrDuplicate so callers can re-read the max and try again.
func CreateVersion(ctx context.Context, db *gorm.DB, v *domain.PrototypeVersion) error {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListVersions returns every version of ideaID, highest version first.
// It returns an empty slice when the idea has none.
func ListVersions(ctx context.Context, db *gorm.DB, ideaID string) ([]domain.PrototypeVersion, error) {
	out := []domain.PrototypeVersion{}
	err := db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("version desc").
		Find(&out).Error
	return out, err
}

// GetVersion fetches a single version by id, or ErrNotFound if missing.
func GetVersion(ctx context.Context, db *gorm.DB, id string) (*domain.PrototypeVersion, error) {
	var v domain.PrototypeVersion
	if err := db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// glebarez/sqlite often returns plain-text errors for these.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
