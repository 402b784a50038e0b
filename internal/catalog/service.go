package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/identity"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

// Service exposes catalog management use cases for courses, camps and
// categories.
type Service interface {
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error)
	UpdateCourse(ctx context.Context, req UpdateCourseRequest) (*Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	GetCourse(ctx context.Context, id uuid.UUID) (*Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*Course, error)
	ListCourses(ctx context.Context, opts ListOptions) ([]*Course, error)
	ToggleCoursePopular(ctx context.Context, id uuid.UUID) (*Course, error)
	ToggleCourseVisibility(ctx context.Context, id uuid.UUID) (*Course, error)
	ToggleCourseActive(ctx context.Context, id uuid.UUID) (*Course, error)

	CreateCamp(ctx context.Context, req CreateCampRequest) (*Camp, error)
	UpdateCamp(ctx context.Context, req UpdateCampRequest) (*Camp, error)
	DeleteCamp(ctx context.Context, id uuid.UUID) error
	GetCamp(ctx context.Context, id uuid.UUID) (*Camp, error)
	GetCampBySlug(ctx context.Context, slug string) (*Camp, error)
	ListCamps(ctx context.Context, opts ListOptions) ([]*Camp, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, namespace string) ([]*Category, error)
}

// CourseRepository abstracts storage operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, record *Course) (*Course, error)
	Update(ctx context.Context, record *Course) (*Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context) ([]*Course, error)
}

// CampRepository abstracts storage operations for camps.
type CampRepository interface {
	Create(ctx context.Context, record *Camp) (*Camp, error)
	Update(ctx context.Context, record *Camp) (*Camp, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Camp, error)
	GetBySlug(ctx context.Context, slug string) (*Camp, error)
	List(ctx context.Context) ([]*Camp, error)
}

// CategoryRepository abstracts storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, record *Category) (*Category, error)
	Update(ctx context.Context, record *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, namespace string) ([]*Category, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
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
	courses    CourseRepository
	camps      CampRepository
	categories CategoryRepository
	now        func() time.Time
	id         IDGenerator
	logger     interfaces.Logger
}

// NewService constructs a catalog service with the required dependencies.
func NewService(courses CourseRepository, camps CampRepository, categories CategoryRepository, opts ...ServiceOption) Service {
	s := &service{
		courses:    courses,
		camps:      camps,
		categories: categories,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	slug, err := s.resolveCourseSlug(ctx, req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Course{
		ID:         s.id(),
		Slug:       slug,
		Title:      i18n.ColumnsOf(req.Title),
		ShortDesc:  i18n.ColumnsOf(req.ShortDesc),
		Desc:       i18n.ColumnsOf(req.Desc),
		Category:   strings.TrimSpace(req.Category),
		Level:      strings.TrimSpace(req.Level),
		Duration:   strings.TrimSpace(req.Duration),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		IsPopular:  req.IsPopular,
		ShowOnHome: req.ShowOnHome,
		IsActive:   req.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.courses.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("course created", "slug", created.Slug)
	return created, nil
}

func (s *service) UpdateCourse(ctx context.Context, req UpdateCourseRequest) (*Course, error) {
	if req.ID == uuid.Nil {
		return nil, ErrIDRequired
	}
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	record, err := s.courses.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record.Title = i18n.ColumnsOf(req.Title)
	record.ShortDesc = i18n.ColumnsOf(req.ShortDesc)
	record.Desc = i18n.ColumnsOf(req.Desc)
	record.Category = strings.TrimSpace(req.Category)
	record.Level = strings.TrimSpace(req.Level)
	record.Duration = strings.TrimSpace(req.Duration)
	record.ImageURL = strings.TrimSpace(req.ImageURL)
	record.IsPopular = req.IsPopular
	record.ShowOnHome = req.ShowOnHome
	record.IsActive = req.IsActive
	record.UpdatedAt = s.now()

	return s.courses.Update(ctx, record)
}

func (s *service) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.courses.Delete(ctx, id)
}

func (s *service) GetCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *service) GetCourseBySlug(ctx context.Context, slug string) (*Course, error) {
	return s.courses.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) ListCourses(ctx context.Context, opts ListOptions) ([]*Course, error) {
	records, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Course, 0, len(records))
	for _, record := range records {
		if opts.matchesFlags(record.IsActive, record.ShowOnHome, record.IsPopular, record.Category) {
			out = append(out, record)
		}
	}
	return out, nil
}

// Toggle operations are read-current-then-update. Two concurrent toggles on
// the same record can lose one silently; last write wins at the row level.
func (s *service) ToggleCoursePopular(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.toggleCourse(ctx, id, func(c *Course) {
		c.IsPopular = !c.IsPopular
	})
}

func (s *service) ToggleCourseVisibility(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.toggleCourse(ctx, id, func(c *Course) {
		c.ShowOnHome = !c.ShowOnHome
	})
}

func (s *service) ToggleCourseActive(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.toggleCourse(ctx, id, func(c *Course) {
		c.IsActive = !c.IsActive
	})
}

func (s *service) toggleCourse(ctx context.Context, id uuid.UUID, flip func(*Course)) (*Course, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	record, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flip(record)
	record.UpdatedAt = s.now()
	return s.courses.Update(ctx, record)
}

func (s *service) CreateCamp(ctx context.Context, req CreateCampRequest) (*Camp, error) {
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = DeriveSlug(req.Title.Resolve(i18n.DefaultLocale))
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}
	if err := s.ensureCampSlugFree(ctx, slug); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Camp{
		ID:         s.id(),
		Slug:       slug,
		Title:      i18n.ColumnsOf(req.Title),
		Desc:       i18n.ColumnsOf(req.Desc),
		Category:   strings.TrimSpace(req.Category),
		AgeGroup:   strings.TrimSpace(req.AgeGroup),
		Location:   strings.TrimSpace(req.Location),
		StartsAt:   cloneTimePtr(req.StartsAt),
		EndsAt:     cloneTimePtr(req.EndsAt),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		IsPopular:  req.IsPopular,
		ShowOnHome: req.ShowOnHome,
		IsActive:   req.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.camps.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("camp created", "slug", created.Slug)
	return created, nil
}

func (s *service) UpdateCamp(ctx context.Context, req UpdateCampRequest) (*Camp, error) {
	if req.ID == uuid.Nil {
		return nil, ErrIDRequired
	}
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}

	record, err := s.camps.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record.Title = i18n.ColumnsOf(req.Title)
	record.Desc = i18n.ColumnsOf(req.Desc)
	record.Category = strings.TrimSpace(req.Category)
	record.AgeGroup = strings.TrimSpace(req.AgeGroup)
	record.Location = strings.TrimSpace(req.Location)
	record.StartsAt = cloneTimePtr(req.StartsAt)
	record.EndsAt = cloneTimePtr(req.EndsAt)
	record.ImageURL = strings.TrimSpace(req.ImageURL)
	record.IsPopular = req.IsPopular
	record.ShowOnHome = req.ShowOnHome
	record.IsActive = req.IsActive
	record.UpdatedAt = s.now()

	return s.camps.Update(ctx, record)
}

func (s *service) DeleteCamp(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.camps.Delete(ctx, id)
}

func (s *service) GetCamp(ctx context.Context, id uuid.UUID) (*Camp, error) {
	return s.camps.GetByID(ctx, id)
}

func (s *service) GetCampBySlug(ctx context.Context, slug string) (*Camp, error) {
	return s.camps.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) ListCamps(ctx context.Context, opts ListOptions) ([]*Camp, error) {
	records, err := s.camps.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Camp, 0, len(records))
	for _, record := range records {
		if opts.matchesFlags(record.IsActive, record.ShowOnHome, record.IsPopular, record.Category) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	namespace := strings.ToLower(strings.TrimSpace(req.Namespace))
	if namespace != NamespaceCourse && namespace != NamespaceBlog {
		return nil, ErrNamespaceInvalid
	}
	if err := i18n.RequireDefault(req.Name); err != nil {
		return nil, ErrNameRequired
	}

	name := req.Name.Resolve(i18n.DefaultLocale)
	id := identity.CategoryUUID(namespace, name)
	if existing, err := s.categories.GetByID(ctx, id); err == nil && existing != nil {
		return nil, ErrCategoryExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &Category{
		ID:        id,
		Namespace: namespace,
		Name:      i18n.ColumnsOf(req.Name),
		CreatedAt: s.now(),
	}
	return s.categories.Create(ctx, record)
}

func (s *service) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*Category, error) {
	if req.ID == uuid.Nil {
		return nil, ErrIDRequired
	}
	if err := i18n.RequireDefault(req.Name); err != nil {
		return nil, ErrNameRequired
	}

	record, err := s.categories.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	record.Name = i18n.ColumnsOf(req.Name)
	return s.categories.Update(ctx, record)
}

// DeleteCategory removes the category record only. Entities referencing the
// category by name keep their string untouched.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.categories.Delete(ctx, id)
}

func (s *service) ListCategories(ctx context.Context, namespace string) ([]*Category, error) {
	return s.categories.List(ctx, strings.ToLower(strings.TrimSpace(namespace)))
}

func (s *service) resolveCourseSlug(ctx context.Context, explicit string, title i18n.Text) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = DeriveSlug(title.Resolve(i18n.DefaultLocale))
	}
	if slug == "" {
		return "", ErrSlugRequired
	}
	if !IsValidSlug(slug) {
		return "", ErrSlugInvalid
	}

	if existing, err := s.courses.GetBySlug(ctx, slug); err == nil && existing != nil {
		return "", ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
	}
	return slug, nil
}

func (s *service) ensureCampSlugFree(ctx context.Context, slug string) error {
	if existing, err := s.camps.GetBySlug(ctx, slug); err == nil && existing != nil {
		return ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
