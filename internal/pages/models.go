package pages

import pkpages "github.com/goliatone/go-pagekit/pages"

type (
	Page        = pkpages.Page
	PageVersion = pkpages.PageVersion

	PageNotFoundError    = pkpages.PageNotFoundError
	VersionNotFoundError = pkpages.VersionNotFoundError
)

var (
	ErrPageRequired              = pkpages.ErrPageRequired
	ErrSlugRequired              = pkpages.ErrSlugRequired
	ErrSlugInvalid               = pkpages.ErrSlugInvalid
	ErrSlugExists                = pkpages.ErrSlugExists
	ErrParentNotFound            = pkpages.ErrParentNotFound
	ErrPageParentCycle           = pkpages.ErrPageParentCycle
	ErrCreatorRequired           = pkpages.ErrCreatorRequired
	ErrUpdaterRequired           = pkpages.ErrUpdaterRequired
	ErrPageHasChildren           = pkpages.ErrPageHasChildren
	ErrVersioningDisabled        = pkpages.ErrVersioningDisabled
	ErrPageVersionRequired       = pkpages.ErrPageVersionRequired
	ErrVersionConflict           = pkpages.ErrVersionConflict
	ErrVersionAlreadyPublished   = pkpages.ErrVersionAlreadyPublished
	ErrVersionNotFound           = pkpages.ErrVersionNotFound
	ErrPageSoftDeleteUnsupported = pkpages.ErrPageSoftDeleteUnsupported
)
