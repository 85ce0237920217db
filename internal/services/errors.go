// Package services defines the business logic for ideas, prototype versions,
// and viability assessments. This file centralizes service-level error values
// so that they can be returned by service methods and checked by callers.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import "errors"

var (
	// ErrStorageUnavailable is returned by every storage-backed operation when
	// the service was started without a usable database handle.
	ErrStorageUnavailable = errors.New("database not available")

	// ErrInvalidID indicates that an identifier is not a well-formed ULID.
	// It is detected before any storage access.
	ErrInvalidID = errors.New("invalid id format")

	// ErrIdeaNotFound indicates that the requested idea does not exist.
	ErrIdeaNotFound = errors.New("idea not found")

	// ErrVersionNotFound indicates that the requested prototype version does not exist.
	ErrVersionNotFound = errors.New("version not found")

	// ErrEmptyIdeaText is returned when an idea is created with blank text.
	ErrEmptyIdeaText = errors.New("idea text is empty")

	// ErrMissingIdeaInput is returned by generation when neither an idea id
	// nor idea text is supplied.
	ErrMissingIdeaInput = errors.New("provide idea_id or text")

	// ErrInvalidSiteType is returned when the site type is not one of the
	// supported archetypes.
	ErrInvalidSiteType = errors.New("invalid site type")

	// ErrEmptySearchQuery is returned by idea search when the query is blank.
	ErrEmptySearchQuery = errors.New("search query is empty")

	// ErrVersionConflict is returned when a version number could not be
	// reserved within the configured number of attempts.
	ErrVersionConflict = errors.New("version number conflict")
)
