package widgets

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

// BunDefinitionRepository persists widget definitions through go-repository-bun.
type BunDefinitionRepository struct {
	records repository.Repository[*Definition]
}

var _ DefinitionRepository = (*BunDefinitionRepository)(nil)

// NewBunDefinitionRepository constructs the bun backed repository without caching.
func NewBunDefinitionRepository(db *bun.DB) *BunDefinitionRepository {
	return NewBunDefinitionRepositoryWithCache(db, nil, nil)
}

// NewBunDefinitionRepositoryWithCache adds optional repository-cache wrapping.
func NewBunDefinitionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunDefinitionRepository {
	return &BunDefinitionRepository{
		records: wrapWithCache(NewDefinitionRecordRepository(db), cacheService, keySerializer),
	}
}

func (r *BunDefinitionRepository) Create(ctx context.Context, definition *Definition) (*Definition, error) {
	created, err := r.records.Create(ctx, definition)
	if err != nil {
		return nil, fmt.Errorf("create widget definition: %w", err)
	}
	return created, nil
}

func (r *BunDefinitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Definition, error) {
	record, err := r.records.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapDefinitionError(err, id.String())
	}
	return record, nil
}

func (r *BunDefinitionRepository) GetByName(ctx context.Context, name string) (*Definition, error) {
	record, err := r.records.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapDefinitionError(err, name)
	}
	return record, nil
}

func (r *BunDefinitionRepository) List(ctx context.Context) ([]*Definition, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC")
		}),
	)
	return records, err
}

func (r *BunDefinitionRepository) Update(ctx context.Context, definition *Definition) (*Definition, error) {
	updated, err := r.records.Update(ctx, definition,
		repository.UpdateByID(definition.ID.String()),
		repository.UpdateColumns(
			"name",
			"description",
			"schema",
			"defaults",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapDefinitionError(err, definition.ID.String())
	}
	return updated, nil
}

func (r *BunDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.records.Delete(ctx, &Definition{ID: id}); err != nil {
		return mapDefinitionError(err, id.String())
	}
	return nil
}

// BunInstanceRepository persists widget instances through go-repository-bun.
type BunInstanceRepository struct {
	records repository.Repository[*Instance]
}

var _ InstanceRepository = (*BunInstanceRepository)(nil)

// NewBunInstanceRepository constructs the bun backed repository without caching.
func NewBunInstanceRepository(db *bun.DB) *BunInstanceRepository {
	return NewBunInstanceRepositoryWithCache(db, nil, nil)
}

// NewBunInstanceRepositoryWithCache adds optional repository-cache wrapping.
func NewBunInstanceRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunInstanceRepository {
	return &BunInstanceRepository{
		records: wrapWithCache(NewInstanceRecordRepository(db), cacheService, keySerializer),
	}
}

func (r *BunInstanceRepository) Create(ctx context.Context, instance *Instance) (*Instance, error) {
	created, err := r.records.Create(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("create widget instance: %w", err)
	}
	return created, nil
}

func (r *BunInstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Instance, error) {
	record, err := r.records.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapInstanceError(err, id.String())
	}
	return record, nil
}

func (r *BunInstanceRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.slot ASC, ?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunInstanceRepository) ListByPageSlot(ctx context.Context, pageID uuid.UUID, slot string) ([]*Instance, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Where("?TableAlias.slot = ?", slot).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunInstanceRepository) ListByType(ctx context.Context, widgetType string) ([]*Instance, error) {
	records, _, err := r.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.widget_type = ?", widgetType).
				OrderExpr("?TableAlias.slot ASC, ?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunInstanceRepository) Update(ctx context.Context, instance *Instance) (*Instance, error) {
	updated, err := r.records.Update(ctx, instance,
		repository.UpdateByID(instance.ID.String()),
		repository.UpdateColumns(
			"slot",
			"configuration",
			"inheritance_behavior",
			"inheritance_level",
			"published",
			"position",
			"updated_by",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapInstanceError(err, instance.ID.String())
	}
	return updated, nil
}

func (r *BunInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.records.Delete(ctx, &Instance{ID: id}); err != nil {
		return mapInstanceError(err, id.String())
	}
	return nil
}

func mapDefinitionError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "widget_definition", Key: key}
	}
	return fmt.Errorf("widget definition repository error: %w", err)
}

func mapInstanceError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "widget_instance", Key: key}
	}
	return fmt.Errorf("widget instance repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
