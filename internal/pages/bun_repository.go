package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageRepository persists pages through go-repository-bun, optionally
// wrapped with a read-through cache.
type BunPageRepository struct {
	db      *bun.DB
	records repository.Repository[*Page]
}

var _ PageRepository = (*BunPageRepository)(nil)

// NewBunPageRepository constructs the bun backed repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a page repository backed by bun
// with optional repository-cache wrapping.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	return &BunPageRepository{
		db:      db,
		records: wrapWithCache(NewPageRecordRepository(db), cacheService, keySerializer),
	}
}

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	created, err := r.records.Create(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.records.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &PageNotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunPageRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.records.List(ctx)
	return records, err
}

func (r *BunPageRepository) ListByParent(ctx context.Context, parentID *uuid.UUID) ([]*Page, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if parentID == nil {
				return q.Where("?TableAlias.parent_id IS NULL")
			}
			return q.Where("?TableAlias.parent_id = ?", *parentID)
		}),
	)
	return records, err
}

func (r *BunPageRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	updated, err := r.records.Update(ctx, page,
		repository.UpdateByID(page.ID.String()),
		repository.UpdateColumns(
			"parent_id",
			"slug",
			"status",
			"current_version",
			"published_version",
			"updated_by",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, page.ID.String())
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PageVersion)(nil)).
			Where("?TableAlias.page_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page versions: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page delete rows affected: %w", err)
		}
		if affected == 0 {
			return &PageNotFoundError{Key: id.String()}
		}
		return nil
	})
}

// BunPageVersionRepository persists page version snapshots.
type BunPageVersionRepository struct {
	versions repository.Repository[*PageVersion]
}

var _ PageVersionRepository = (*BunPageVersionRepository)(nil)

// NewBunPageVersionRepository constructs the bun backed version repository.
func NewBunPageVersionRepository(db *bun.DB) *BunPageVersionRepository {
	return NewBunPageVersionRepositoryWithCache(db, nil, nil)
}

// NewBunPageVersionRepositoryWithCache adds optional repository-cache wrapping.
func NewBunPageVersionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageVersionRepository {
	return &BunPageVersionRepository{
		versions: wrapWithCache(NewPageVersionRecordRepository(db), cacheService, keySerializer),
	}
}

func (r *BunPageVersionRepository) Create(ctx context.Context, version *PageVersion) (*PageVersion, error) {
	created, err := r.versions.Create(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("create page version: %w", err)
	}
	return created, nil
}

func (r *BunPageVersionRepository) GetByPageAndVersion(ctx context.Context, pageID uuid.UUID, version int) (*PageVersion, error) {
	records, _, err := r.versions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Where("?TableAlias.version = ?", version)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &VersionNotFoundError{PageID: pageID, Version: version}
	}
	return records[0], nil
}

func (r *BunPageVersionRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*PageVersion, error) {
	records, _, err := r.versions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.version ASC")
		}),
	)
	return records, err
}

func (r *BunPageVersionRepository) Update(ctx context.Context, version *PageVersion) (*PageVersion, error) {
	updated, err := r.versions.Update(ctx, version,
		repository.UpdateByID(version.ID.String()),
		repository.UpdateColumns(
			"published_at",
			"published_by",
		),
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Key: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
