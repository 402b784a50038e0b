package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrTitleRequired = errors.New("blog: default locale title is required")
	ErrSlugRequired  = errors.New("blog: slug is required")
	ErrSlugInvalid   = errors.New("blog: slug contains invalid characters")
	ErrSlugExists    = errors.New("blog: slug already exists")
	ErrIDRequired    = errors.New("blog: post id required")
)

// NotFoundError represents missing posts from repository lookups.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "post not found"
	}
	return fmt.Sprintf("post %q not found", e.Key)
}

// Service exposes blog management use cases.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, opts ListOptions) ([]*Post, error)
}

// PostRepository abstracts storage operations for posts.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
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
	posts  PostRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs a blog service.
func NewService(posts PostRepository, opts ...ServiceOption) Service {
	s := &service{
		posts:  posts,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = catalog.DeriveSlug(req.Title.Resolve(i18n.DefaultLocale))
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !catalog.IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}

	if existing, err := s.posts.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Post{
		ID:         s.id(),
		Slug:       slug,
		Title:      i18n.ColumnsOf(req.Title),
		Excerpt:    i18n.ColumnsOf(req.Excerpt),
		Body:       i18n.ColumnsOf(req.Body),
		Category:   strings.TrimSpace(req.Category),
		Author:     strings.TrimSpace(req.Author),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		ShowOnHome: req.ShowOnHome,
		IsActive:   req.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.posts.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("post created", "slug", created.Slug)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if req.ID == uuid.Nil {
		return nil, ErrIDRequired
	}
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	record, err := s.posts.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record.Title = i18n.ColumnsOf(req.Title)
	record.Excerpt = i18n.ColumnsOf(req.Excerpt)
	record.Body = i18n.ColumnsOf(req.Body)
	record.Category = strings.TrimSpace(req.Category)
	record.Author = strings.TrimSpace(req.Author)
	record.ImageURL = strings.TrimSpace(req.ImageURL)
	record.ShowOnHome = req.ShowOnHome
	record.IsActive = req.IsActive
	record.UpdatedAt = s.now()

	return s.posts.Update(ctx, record)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.posts.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.posts.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Post, error) {
	records, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Post, 0, len(records))
	for _, record := range records {
		if opts.ActiveOnly && !record.IsActive {
			continue
		}
		if opts.HomeOnly && !record.ShowOnHome {
			continue
		}
		if opts.Category != "" && opts.Category != record.Category {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
