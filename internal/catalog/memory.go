package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryCourseRepository is an in-memory implementation for scaffolding and tests.
type MemoryCourseRepository struct {
	mu        sync.RWMutex
	courses   map[uuid.UUID]*Course
	slugIndex map[string]uuid.UUID
}

// NewMemoryCourseRepository creates an empty in-memory course repository.
func NewMemoryCourseRepository() *MemoryCourseRepository {
	return &MemoryCourseRepository{
		courses:   make(map[uuid.UUID]*Course),
		slugIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryCourseRepository) Create(_ context.Context, record *Course) (*Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.courses[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCourseRepository) Update(_ context.Context, record *Course) (*Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.courses[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "course", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := *record
	m.courses[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCourseRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.courses[id]
	if !ok {
		return &NotFoundError{Resource: "course", Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.courses, id)
	return nil
}

func (m *MemoryCourseRepository) GetByID(_ context.Context, id uuid.UUID) (*Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.courses[id]
	if !ok {
		return nil, &NotFoundError{Resource: "course", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryCourseRepository) GetBySlug(_ context.Context, slug string) (*Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "course", Key: slug}
	}
	copied := *m.courses[id]
	return &copied, nil
}

func (m *MemoryCourseRepository) List(_ context.Context) ([]*Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Course, 0, len(m.courses))
	for _, rec := range m.courses {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

// MemoryCampRepository stores camps in-memory.
type MemoryCampRepository struct {
	mu        sync.RWMutex
	camps     map[uuid.UUID]*Camp
	slugIndex map[string]uuid.UUID
}

// NewMemoryCampRepository creates an empty in-memory camp repository.
func NewMemoryCampRepository() *MemoryCampRepository {
	return &MemoryCampRepository{
		camps:     make(map[uuid.UUID]*Camp),
		slugIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryCampRepository) Create(_ context.Context, record *Camp) (*Camp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.camps[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCampRepository) Update(_ context.Context, record *Camp) (*Camp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.camps[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "camp", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := *record
	m.camps[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCampRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.camps[id]
	if !ok {
		return &NotFoundError{Resource: "camp", Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.camps, id)
	return nil
}

func (m *MemoryCampRepository) GetByID(_ context.Context, id uuid.UUID) (*Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.camps[id]
	if !ok {
		return nil, &NotFoundError{Resource: "camp", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryCampRepository) GetBySlug(_ context.Context, slug string) (*Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "camp", Key: slug}
	}
	copied := *m.camps[id]
	return &copied, nil
}

func (m *MemoryCampRepository) List(_ context.Context) ([]*Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Camp, 0, len(m.camps))
	for _, rec := range m.camps {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

// MemoryCategoryRepository stores categories in-memory.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*Category
}

// NewMemoryCategoryRepository creates an empty in-memory category repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[uuid.UUID]*Category),
	}
}

func (m *MemoryCategoryRepository) Create(_ context.Context, record *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.categories[copied.ID] = &copied
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCategoryRepository) Update(_ context.Context, record *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "category", Key: record.ID.String()}
	}
	copied := *record
	m.categories[copied.ID] = &copied
	cloned := copied
	return &cloned, nil
}

func (m *MemoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return &NotFoundError{Resource: "category", Key: id.String()}
	}
	delete(m.categories, id)
	return nil
}

func (m *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.categories[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryCategoryRepository) List(_ context.Context, namespace string) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Category, 0, len(m.categories))
	for _, rec := range m.categories {
		if namespace != "" && rec.Namespace != namespace {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}
