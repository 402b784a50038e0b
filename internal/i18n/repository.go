package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LocaleRepository resolves locales by code and seeds the catalog.
type LocaleRepository interface {
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
	Seed(ctx context.Context, locales []*Locale) error
}

// NotFoundError reports a missing locale.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	if e.Code == "" {
		return "locale not found"
	}
	return fmt.Sprintf("locale %q not found", e.Code)
}

// NewLocaleRepository builds the bun-backed repository for Locale rows.
func NewLocaleRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

// BunLocaleRepository adapts the generic bun repository to LocaleRepository.
type BunLocaleRepository struct {
	repo repository.Repository[*Locale]
}

func NewBunLocaleRepository(db *bun.DB) *BunLocaleRepository {
	return &BunLocaleRepository{repo: NewLocaleRepository(db)}
}

func (r *BunLocaleRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	result, err := r.repo.GetByIdentifier(ctx, NormalizeLocale(code))
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Code: code}
		}
		return nil, fmt.Errorf("locale repository error: %w", err)
	}
	return result, nil
}

func (r *BunLocaleRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// Seed inserts the given locales, skipping codes that already exist.
func (r *BunLocaleRepository) Seed(ctx context.Context, locales []*Locale) error {
	for _, locale := range locales {
		_, err := r.GetByCode(ctx, locale.Code)
		if err == nil {
			continue
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		if _, err := r.repo.Create(ctx, locale); err != nil {
			return fmt.Errorf("locale repository error: %w", err)
		}
	}
	return nil
}

// MemoryLocaleRepository stores locales by code for tests and scaffolding.
type MemoryLocaleRepository struct {
	mu      sync.RWMutex
	locales map[string]*Locale
}

// NewMemoryLocaleRepository constructs an empty in-memory repository.
func NewMemoryLocaleRepository() *MemoryLocaleRepository {
	return &MemoryLocaleRepository{locales: make(map[string]*Locale)}
}

// Put inserts or replaces a locale.
func (m *MemoryLocaleRepository) Put(locale *Locale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *locale
	m.locales[strings.ToLower(locale.Code)] = &copied
}

// GetByCode resolves a locale by code (case-insensitive).
func (m *MemoryLocaleRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locales[NormalizeLocale(code)]
	if !ok {
		return nil, &NotFoundError{Code: code}
	}
	copied := *loc
	return &copied, nil
}

// Seed registers locales that are not already present.
func (m *MemoryLocaleRepository) Seed(_ context.Context, locales []*Locale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, locale := range locales {
		code := strings.ToLower(locale.Code)
		if _, ok := m.locales[code]; ok {
			continue
		}
		copied := *locale
		m.locales[code] = &copied
	}
	return nil
}

// List returns every registered locale.
func (m *MemoryLocaleRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Locale, 0, len(m.locales))
	for _, loc := range m.locales {
		copied := *loc
		out = append(out, &copied)
	}
	return out, nil
}
