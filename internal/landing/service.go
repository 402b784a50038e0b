package landing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrSlugRequired  = errors.New("landing: slug is required")
	ErrSlugInvalid   = errors.New("landing: slug contains invalid characters")
	ErrSlugExists    = errors.New("landing: slug already exists")
	ErrStatusInvalid = errors.New("landing: unknown status")
	ErrIDRequired    = errors.New("landing: page id required")
)

// NotFoundError covers missing pages and, on the public path, drafts.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "landing page not found"
	}
	return fmt.Sprintf("landing page %q not found", e.Key)
}

// Service manages landing page persistence and resolution.
type Service interface {
	Save(ctx context.Context, req SaveRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetStatus toggles publication without touching content.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Page, error)
	// ResolvePublished serves the public route. Draft pages are
	// indistinguishable from missing ones.
	ResolvePublished(ctx context.Context, slug string) (*Page, error)
}

// PageRepository abstracts storage for landing pages.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	Update(ctx context.Context, record *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	pages  PageRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs a landing page service.
func NewService(pages PageRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:  pages,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Save(ctx context.Context, req SaveRequest) (*Page, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, ErrStatusInvalid
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = catalog.DeriveSlug(req.Params.CourseName)
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !catalog.IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}

	if existing, err := s.pages.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Page{
		ID:        s.id(),
		Slug:      slug,
		Status:    status,
		Params:    req.Params,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("landing page saved", "slug", created.Slug, "status", string(created.Status))
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.pages.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.pages.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.pages.Delete(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	if !status.Valid() {
		return nil, ErrStatusInvalid
	}

	record, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Status = status
	record.UpdatedAt = s.now()
	return s.pages.Update(ctx, record)
}

func (s *service) ResolvePublished(ctx context.Context, slug string) (*Page, error) {
	record, err := s.pages.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if record.Status != StatusPublished {
		return nil, &NotFoundError{Key: slug}
	}
	return record, nil
}
