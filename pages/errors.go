package pages

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPageRequired              = errors.New("pages: page id required")
	ErrSlugRequired              = errors.New("pages: slug is required")
	ErrSlugInvalid               = errors.New("pages: slug contains invalid characters")
	ErrSlugExists                = errors.New("pages: slug already exists")
	ErrParentNotFound            = errors.New("pages: parent page not found")
	ErrPageParentCycle           = errors.New("pages: parent assignment creates hierarchy cycle")
	ErrCreatorRequired           = errors.New("pages: created_by is required")
	ErrUpdaterRequired           = errors.New("pages: updated_by is required")
	ErrPageHasChildren           = errors.New("pages: page has child pages")
	ErrVersioningDisabled        = errors.New("pages: versioning feature disabled")
	ErrPageVersionRequired       = errors.New("pages: version identifier required")
	ErrVersionConflict           = errors.New("pages: base version mismatch")
	ErrVersionAlreadyPublished   = errors.New("pages: version already published")
	ErrVersionNotFound           = errors.New("pages: version not found")
	ErrPageSoftDeleteUnsupported = errors.New("pages: soft delete not supported")
)

// PageNotFoundError captures a page lookup miss with the key that failed.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return "pages: page not found"
	}
	return fmt.Sprintf("pages: page %q not found", e.Key)
}

// VersionNotFoundError captures a page version lookup miss.
type VersionNotFoundError struct {
	PageID  uuid.UUID
	Version int
}

func (e *VersionNotFoundError) Error() string {
	if e == nil {
		return ErrVersionNotFound.Error()
	}
	return fmt.Sprintf("%s: page=%s version=%d", ErrVersionNotFound.Error(), e.PageID, e.Version)
}

func (e *VersionNotFoundError) Unwrap() error {
	return ErrVersionNotFound
}
