package notice

import (
	"context"
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/identity"
)

// MemoryRepository keeps the popup in memory for scaffolding and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	record *Notice
}

// NewMemoryRepository creates an empty in-memory notice store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Upsert(_ context.Context, record *Notice) (*Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.record = &copied
	cloned := copied
	return &cloned, nil
}

func (m *MemoryRepository) Get(_ context.Context) (*Notice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.record == nil {
		return nil, ErrNotConfigured
	}
	copied := *m.record
	return &copied, nil
}

// BunRepository persists the popup through the shared repository layer.
type BunRepository struct {
	repo repository.Repository[*Notice]
}

// NewBunRepository builds the bun-backed notice store.
func NewBunRepository(db *bun.DB) *BunRepository {
	repo := repository.MustNewRepository(db, repository.ModelHandlers[*Notice]{
		NewRecord: func() *Notice { return &Notice{} },
		GetID: func(n *Notice) uuid.UUID {
			return n.ID
		},
		SetID: func(n *Notice, id uuid.UUID) {
			n.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(n *Notice) string {
			if n == nil {
				return ""
			}
			return n.ID.String()
		},
	})
	return &BunRepository{repo: repo}
}

func (r *BunRepository) Upsert(ctx context.Context, record *Notice) (*Notice, error) {
	record.ID = identity.NoticeUUID()
	if _, err := r.repo.GetByID(ctx, record.ID.String()); err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("notice repository error: %w", err)
		}
		return r.repo.Create(ctx, record)
	}
	return r.repo.Update(ctx, record)
}

func (r *BunRepository) Get(ctx context.Context) (*Notice, error) {
	record, err := r.repo.GetByID(ctx, identity.NoticeUUID().String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("notice repository error: %w", err)
	}
	return record, nil
}
