package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRepository exposes persistence operations for pages.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	ListByParent(ctx context.Context, parentID *uuid.UUID) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageVersionRepository exposes persistence operations for page versions.
// Versions are append-only snapshots; Update exists solely so publishing can
// stamp PublishedAt/PublishedBy on an existing record.
type PageVersionRepository interface {
	Create(ctx context.Context, version *PageVersion) (*PageVersion, error)
	GetByPageAndVersion(ctx context.Context, pageID uuid.UUID, version int) (*PageVersion, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*PageVersion, error)
	Update(ctx context.Context, version *PageVersion) (*PageVersion, error)
}

// NewPageRecordRepository creates the bun-backed repository for page records.
func NewPageRecordRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord:          func() *Page { return &Page{} },
		GetID:              func(page *Page) uuid.UUID { return page.ID },
		SetID:              func(page *Page, id uuid.UUID) { page.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(page *Page) string { return page.Slug },
	})
}

// NewPageVersionRecordRepository creates the bun-backed repository for page versions.
func NewPageVersionRecordRepository(db *bun.DB) repository.Repository[*PageVersion] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageVersion]{
		NewRecord:          func() *PageVersion { return &PageVersion{} },
		GetID:              func(version *PageVersion) uuid.UUID { return version.ID },
		SetID:              func(version *PageVersion, id uuid.UUID) { version.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(version *PageVersion) string { return version.ID.String() },
	})
}
