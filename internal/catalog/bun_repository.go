package catalog

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunCourseRepository struct {
	repo repository.Repository[*Course]
}

func NewBunCourseRepository(db *bun.DB) *BunCourseRepository {
	return NewBunCourseRepositoryWithCache(db, nil, nil)
}

func NewBunCourseRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCourseRepository {
	base := NewCourseRepository(db)
	return &BunCourseRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunCourseRepository) Create(ctx context.Context, record *Course) (*Course, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunCourseRepository) Update(ctx context.Context, record *Course) (*Course, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "course", record.ID.String())
	}
	return updated, nil
}

func (r *BunCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Course{ID: id}); err != nil {
		return mapRepositoryError(err, "course", id.String())
	}
	return nil
}

func (r *BunCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "course", id.String())
	}
	return result, nil
}

func (r *BunCourseRepository) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "course", slug)
	}
	return result, nil
}

func (r *BunCourseRepository) List(ctx context.Context) ([]*Course, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

type BunCampRepository struct {
	repo repository.Repository[*Camp]
}

func NewBunCampRepository(db *bun.DB) *BunCampRepository {
	return NewBunCampRepositoryWithCache(db, nil, nil)
}

func NewBunCampRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCampRepository {
	base := NewCampRepository(db)
	return &BunCampRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunCampRepository) Create(ctx context.Context, record *Camp) (*Camp, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunCampRepository) Update(ctx context.Context, record *Camp) (*Camp, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "camp", record.ID.String())
	}
	return updated, nil
}

func (r *BunCampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Camp{ID: id}); err != nil {
		return mapRepositoryError(err, "camp", id.String())
	}
	return nil
}

func (r *BunCampRepository) GetByID(ctx context.Context, id uuid.UUID) (*Camp, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "camp", id.String())
	}
	return result, nil
}

func (r *BunCampRepository) GetBySlug(ctx context.Context, slug string) (*Camp, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "camp", slug)
	}
	return result, nil
}

func (r *BunCampRepository) List(ctx context.Context) ([]*Camp, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

type BunCategoryRepository struct {
	repo repository.Repository[*Category]
}

func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	return &BunCategoryRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunCategoryRepository) Create(ctx context.Context, record *Category) (*Category, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunCategoryRepository) Update(ctx context.Context, record *Category) (*Category, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "category", record.ID.String())
	}
	return updated, nil
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Category{ID: id}); err != nil {
		return mapRepositoryError(err, "category", id.String())
	}
	return nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context, namespace string) ([]*Category, error) {
	if namespace == "" {
		records, _, err := r.repo.List(ctx)
		return records, err
	}
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("namespace = ?", namespace)
	}))
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
