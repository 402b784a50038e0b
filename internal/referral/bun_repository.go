package referral

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunLinkRepository persists links through the shared repository layer.
type BunLinkRepository struct {
	repo repository.Repository[*Link]
}

// NewBunLinkRepository builds the bun-backed link store.
func NewBunLinkRepository(db *bun.DB) *BunLinkRepository {
	repo := repository.MustNewRepository(db, repository.ModelHandlers[*Link]{
		NewRecord: func() *Link { return &Link{} },
		GetID: func(l *Link) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Link, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Link) string {
			return l.Code
		},
	})
	return &BunLinkRepository{repo: repo}
}

func (r *BunLinkRepository) Create(ctx context.Context, record *Link) (*Link, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunLinkRepository) Update(ctx context.Context, record *Link) (*Link, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "link", record.ID.String())
	}
	return updated, nil
}

func (r *BunLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Link{ID: id}); err != nil {
		return mapRepositoryError(err, "link", id.String())
	}
	return nil
}

func (r *BunLinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*Link, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "link", id.String())
	}
	return result, nil
}

func (r *BunLinkRepository) GetByCode(ctx context.Context, code string) (*Link, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "link", code)
	}
	return result, nil
}

func (r *BunLinkRepository) List(ctx context.Context) ([]*Link, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// BunVisitRepository appends visits through the shared repository layer.
type BunVisitRepository struct {
	db   *bun.DB
	repo repository.Repository[*Visit]
}

// NewBunVisitRepository builds the bun-backed visit log.
func NewBunVisitRepository(db *bun.DB) *BunVisitRepository {
	repo := repository.MustNewRepository(db, repository.ModelHandlers[*Visit]{
		NewRecord: func() *Visit { return &Visit{} },
		GetID: func(v *Visit) uuid.UUID {
			return v.ID
		},
		SetID: func(v *Visit, id uuid.UUID) {
			v.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(v *Visit) string {
			if v == nil {
				return ""
			}
			return v.ID.String()
		},
	})
	return &BunVisitRepository{db: db, repo: repo}
}

func (r *BunVisitRepository) Create(ctx context.Context, record *Visit) (*Visit, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunVisitRepository) CountByLink(ctx context.Context, linkID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().Model((*Visit)(nil)).
		Where("link_id = ?", linkID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("visit repository error: %w", err)
	}
	return count, nil
}

// BunEnrollmentRepository persists enrollments through the shared repository layer.
type BunEnrollmentRepository struct {
	db   *bun.DB
	repo repository.Repository[*Enrollment]
}

// NewBunEnrollmentRepository builds the bun-backed enrollment store.
func NewBunEnrollmentRepository(db *bun.DB) *BunEnrollmentRepository {
	repo := repository.MustNewRepository(db, repository.ModelHandlers[*Enrollment]{
		NewRecord: func() *Enrollment { return &Enrollment{} },
		GetID: func(e *Enrollment) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Enrollment, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(e *Enrollment) string {
			if e == nil {
				return ""
			}
			return e.ID.String()
		},
	})
	return &BunEnrollmentRepository{db: db, repo: repo}
}

func (r *BunEnrollmentRepository) Create(ctx context.Context, record *Enrollment) (*Enrollment, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunEnrollmentRepository) Update(ctx context.Context, record *Enrollment) (*Enrollment, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "enrollment", record.ID.String())
	}
	return updated, nil
}

func (r *BunEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "enrollment", id.String())
	}
	return result, nil
}

func (r *BunEnrollmentRepository) List(ctx context.Context) ([]*Enrollment, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunEnrollmentRepository) CountByLink(ctx context.Context, linkID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().Model((*Enrollment)(nil)).
		Where("link_id = ?", linkID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("enrollment repository error: %w", err)
	}
	return count, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
