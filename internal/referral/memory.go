package referral

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryLinkRepository stores links in memory for scaffolding and tests.
type MemoryLinkRepository struct {
	mu        sync.RWMutex
	links     map[uuid.UUID]*Link
	codeIndex map[string]uuid.UUID
}

// NewMemoryLinkRepository creates an empty in-memory link repository.
func NewMemoryLinkRepository() *MemoryLinkRepository {
	return &MemoryLinkRepository{
		links:     make(map[uuid.UUID]*Link),
		codeIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryLinkRepository) Create(_ context.Context, record *Link) (*Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.links[copied.ID] = &copied
	m.codeIndex[copied.Code] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryLinkRepository) Update(_ context.Context, record *Link) (*Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.links[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "link", Key: record.ID.String()}
	}
	delete(m.codeIndex, existing.Code)

	copied := *record
	m.links[copied.ID] = &copied
	m.codeIndex[copied.Code] = copied.ID
	cloned := copied
	return &cloned, nil
}

func (m *MemoryLinkRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.links[id]
	if !ok {
		return &NotFoundError{Resource: "link", Key: id.String()}
	}
	delete(m.codeIndex, existing.Code)
	delete(m.links, id)
	return nil
}

func (m *MemoryLinkRepository) GetByID(_ context.Context, id uuid.UUID) (*Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.links[id]
	if !ok {
		return nil, &NotFoundError{Resource: "link", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryLinkRepository) GetByCode(_ context.Context, code string) (*Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codeIndex[code]
	if !ok {
		return nil, &NotFoundError{Resource: "link", Key: code}
	}
	copied := *m.links[id]
	return &copied, nil
}

func (m *MemoryLinkRepository) List(_ context.Context) ([]*Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Link, 0, len(m.links))
	for _, rec := range m.links {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

// MemoryVisitRepository appends visits in memory.
type MemoryVisitRepository struct {
	mu     sync.RWMutex
	visits []*Visit
}

// NewMemoryVisitRepository creates an empty in-memory visit log.
func NewMemoryVisitRepository() *MemoryVisitRepository {
	return &MemoryVisitRepository{}
}

func (m *MemoryVisitRepository) Create(_ context.Context, record *Visit) (*Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.visits = append(m.visits, &copied)
	cloned := copied
	return &cloned, nil
}

func (m *MemoryVisitRepository) CountByLink(_ context.Context, linkID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, visit := range m.visits {
		if visit.LinkID == linkID {
			count++
		}
	}
	return count, nil
}

// MemoryEnrollmentRepository stores enrollments in memory.
type MemoryEnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[uuid.UUID]*Enrollment
}

// NewMemoryEnrollmentRepository creates an empty in-memory enrollment store.
func NewMemoryEnrollmentRepository() *MemoryEnrollmentRepository {
	return &MemoryEnrollmentRepository{
		enrollments: make(map[uuid.UUID]*Enrollment),
	}
}

func (m *MemoryEnrollmentRepository) Create(_ context.Context, record *Enrollment) (*Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.enrollments[copied.ID] = &copied
	cloned := copied
	return &cloned, nil
}

func (m *MemoryEnrollmentRepository) Update(_ context.Context, record *Enrollment) (*Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.enrollments[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "enrollment", Key: record.ID.String()}
	}
	copied := *record
	m.enrollments[copied.ID] = &copied
	cloned := copied
	return &cloned, nil
}

func (m *MemoryEnrollmentRepository) GetByID(_ context.Context, id uuid.UUID) (*Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.enrollments[id]
	if !ok {
		return nil, &NotFoundError{Resource: "enrollment", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryEnrollmentRepository) List(_ context.Context) ([]*Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Enrollment, 0, len(m.enrollments))
	for _, rec := range m.enrollments {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryEnrollmentRepository) CountByLink(_ context.Context, linkID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.enrollments {
		if rec.LinkID != nil && *rec.LinkID == linkID {
			count++
		}
	}
	return count, nil
}
