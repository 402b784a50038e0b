package referral

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/identity"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrCodeRequired  = errors.New("referral: code is required")
	ErrCodeExists    = errors.New("referral: code already exists")
	ErrNameRequired  = errors.New("referral: name is required")
	ErrIDRequired    = errors.New("referral: id required")
	ErrStatusInvalid = errors.New("referral: unknown enrollment status")
)

// NotFoundError represents missing referral records.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Service manages referral links, visit attribution and enrollments.
type Service interface {
	CreateLink(ctx context.Context, req CreateLinkRequest) (*Link, error)
	GetLinkByCode(ctx context.Context, code string) (*Link, error)
	ListLinks(ctx context.Context) ([]*Link, error)
	SetLinkActive(ctx context.Context, id uuid.UUID, active bool) (*Link, error)
	DeleteLink(ctx context.Context, id uuid.UUID) error

	// RecordVisit attributes one page hit to the link behind code. Unknown
	// or inactive codes are silently ignored.
	RecordVisit(ctx context.Context, code, path string) error

	// SubmitEnrollment creates a pending enrollment. An absent, unknown or
	// inactive referral code yields a nil link attribution, never an error.
	SubmitEnrollment(ctx context.Context, req SubmitEnrollmentRequest) (*Enrollment, error)
	ListEnrollments(ctx context.Context) ([]*Enrollment, error)
	// UpdateEnrollmentStatus moves an enrollment through the triage set.
	UpdateEnrollmentStatus(ctx context.Context, id uuid.UUID, status EnrollmentStatus) (*Enrollment, error)

	// Stats aggregates visits and enrollments per link.
	Stats(ctx context.Context) ([]*LinkStats, error)
}

// LinkRepository abstracts link storage.
type LinkRepository interface {
	Create(ctx context.Context, record *Link) (*Link, error)
	Update(ctx context.Context, record *Link) (*Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Link, error)
	GetByCode(ctx context.Context, code string) (*Link, error)
	List(ctx context.Context) ([]*Link, error)
}

// VisitRepository records append-only visits.
type VisitRepository interface {
	Create(ctx context.Context, record *Visit) (*Visit, error)
	CountByLink(ctx context.Context, linkID uuid.UUID) (int, error)
}

// EnrollmentRepository abstracts enrollment storage.
type EnrollmentRepository interface {
	Create(ctx context.Context, record *Enrollment) (*Enrollment, error)
	Update(ctx context.Context, record *Enrollment) (*Enrollment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	List(ctx context.Context) ([]*Enrollment, error)
	CountByLink(ctx context.Context, linkID uuid.UUID) (int, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// WithIDGenerator overrides identifier generation for visits and enrollments.
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
	links       LinkRepository
	visits      VisitRepository
	enrollments EnrollmentRepository
	now         func() time.Time
	id          func() uuid.UUID
	logger      interfaces.Logger
}

// NewService constructs a referral service.
func NewService(links LinkRepository, visits VisitRepository, enrollments EnrollmentRepository, opts ...ServiceOption) Service {
	s := &service{
		links:       links,
		visits:      visits,
		enrollments: enrollments,
		now:         time.Now,
		id:          uuid.New,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateLink(ctx context.Context, req CreateLinkRequest) (*Link, error) {
	code := normalizeCode(req.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	if existing, err := s.links.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrCodeExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Link{
		ID:          identity.ReferralLinkUUID(code),
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.links.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("referral link created", "code", created.Code)
	return created, nil
}

func (s *service) GetLinkByCode(ctx context.Context, code string) (*Link, error) {
	return s.links.GetByCode(ctx, normalizeCode(code))
}

func (s *service) ListLinks(ctx context.Context) ([]*Link, error) {
	return s.links.List(ctx)
}

func (s *service) SetLinkActive(ctx context.Context, id uuid.UUID, active bool) (*Link, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	record, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.IsActive = active
	record.UpdatedAt = s.now()
	return s.links.Update(ctx, record)
}

func (s *service) DeleteLink(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.links.Delete(ctx, id)
}

func (s *service) RecordVisit(ctx context.Context, code, path string) error {
	link, err := s.resolveActiveLink(ctx, code)
	if err != nil {
		return err
	}
	if link == nil {
		return nil
	}
	_, err = s.visits.Create(ctx, &Visit{
		ID:        s.id(),
		LinkID:    link.ID,
		Path:      path,
		VisitedAt: s.now(),
	})
	return err
}

func (s *service) SubmitEnrollment(ctx context.Context, req SubmitEnrollmentRequest) (*Enrollment, error) {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.StudentName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.CourseID, validation.Required),
	); err != nil {
		return nil, err
	}

	link, err := s.resolveActiveLink(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	var linkID *uuid.UUID
	if link != nil {
		linkID = &link.ID
	}

	now := s.now()
	record := &Enrollment{
		ID:          s.id(),
		StudentName: strings.TrimSpace(req.StudentName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		CourseID:    strings.TrimSpace(req.CourseID),
		LinkID:      linkID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.enrollments.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("enrollment submitted", "course", created.CourseID, "referred", linkID != nil)
	return created, nil
}

func (s *service) ListEnrollments(ctx context.Context) ([]*Enrollment, error) {
	return s.enrollments.List(ctx)
}

func (s *service) UpdateEnrollmentStatus(ctx context.Context, id uuid.UUID, status EnrollmentStatus) (*Enrollment, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	if !status.Valid() {
		return nil, ErrStatusInvalid
	}
	record, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Status = status
	record.UpdatedAt = s.now()
	return s.enrollments.Update(ctx, record)
}

func (s *service) Stats(ctx context.Context) ([]*LinkStats, error) {
	links, err := s.links.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LinkStats, 0, len(links))
	for _, link := range links {
		visits, err := s.visits.CountByLink(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		enrollments, err := s.enrollments.CountByLink(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &LinkStats{Link: link, Visits: visits, Enrollments: enrollments})
	}
	return out, nil
}

// resolveActiveLink maps a code to its link. Missing or inactive codes
// resolve to nil without error.
func (s *service) resolveActiveLink(ctx context.Context, code string) (*Link, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, nil
	}
	link, err := s.links.GetByCode(ctx, code)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	if !link.IsActive {
		return nil, nil
	}
	return link, nil
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
