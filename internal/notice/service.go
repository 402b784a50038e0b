package notice

import (
	"context"
	"errors"
	"time"

	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/identity"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrTitleRequired = errors.New("notice: default locale title is required")
	ErrWindowInvalid = errors.New("notice: window end precedes start")
)

// ErrNotConfigured is returned when no popup has ever been saved.
var ErrNotConfigured = errors.New("notice: not configured")

// Service manages the singleton announcement popup.
type Service interface {
	// Upsert replaces the popup in place. The record identifier never
	// changes across saves.
	Upsert(ctx context.Context, req UpsertRequest) (*Notice, error)
	// Get returns the stored popup regardless of visibility.
	Get(ctx context.Context) (*Notice, error)
	// Current returns the popup only when it is active and inside its
	// display window. Outside the window it returns ErrNotConfigured.
	Current(ctx context.Context, now time.Time) (*Notice, error)
	// Deactivate hides the popup without erasing its content.
	Deactivate(ctx context.Context) error
}

// Repository abstracts the single-row notice store.
type Repository interface {
	Upsert(ctx context.Context, record *Notice) (*Notice, error)
	Get(ctx context.Context) (*Notice, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
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
	store  Repository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a notice service.
func NewService(store Repository, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*Notice, error) {
	if err := i18n.RequireDefault(req.Title); err != nil {
		return nil, ErrTitleRequired
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, ErrWindowInvalid
	}

	now := s.now()
	record := &Notice{
		ID:        identity.NoticeUUID(),
		Title:     i18n.ColumnsOf(req.Title),
		Message:   i18n.ColumnsOf(req.Message),
		LinkURL:   req.LinkURL,
		LinkLabel: i18n.ColumnsOf(req.LinkLabel),
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := s.store.Get(ctx); err == nil && existing != nil {
		record.CreatedAt = existing.CreatedAt
	} else if err != nil && !errors.Is(err, ErrNotConfigured) {
		return nil, err
	}

	saved, err := s.store.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("notice saved", "active", saved.IsActive)
	return saved, nil
}

func (s *service) Get(ctx context.Context) (*Notice, error) {
	return s.store.Get(ctx)
}

func (s *service) Current(ctx context.Context, now time.Time) (*Notice, error) {
	record, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !record.VisibleAt(now) {
		return nil, ErrNotConfigured
	}
	return record, nil
}

func (s *service) Deactivate(ctx context.Context) error {
	record, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	record.IsActive = false
	record.UpdatedAt = s.now()
	_, err = s.store.Upsert(ctx, record)
	return err
}
