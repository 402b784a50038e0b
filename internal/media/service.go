package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrStoreRequired    = errors.New("media: object store is required")
	ErrFilenameRequired = errors.New("media: filename is required")
	ErrUnsupportedType  = errors.New("media: unsupported file type")
)

// imageExtensions is the closed set accepted for uploads.
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Upload is the stored-object result returned to admin forms.
type Upload struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Service stores uploaded images under generated paths. Replaced images are
// never deleted; orphaned objects may accumulate.
type Service interface {
	Upload(ctx context.Context, filename string, body io.Reader) (*Upload, error)
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithIDGenerator overrides object name generation.
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
	store  interfaces.ObjectStore
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs a media service over the object store.
func NewService(store interfaces.ObjectStore, opts ...ServiceOption) (Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &service{
		store:  store,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Upload(ctx context.Context, filename string, body io.Reader) (*Upload, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrFilenameRequired
	}

	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := imageExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if detected := mime.TypeByExtension(ext); detected != "" {
		contentType = detected
	}

	objectPath := fmt.Sprintf("uploads/%s%s", s.id(), ext)
	url, err := s.store.Put(ctx, objectPath, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("media: store upload: %w", err)
	}

	s.logger.Info("image uploaded", "path", objectPath)
	return &Upload{Path: objectPath, URL: url}, nil
}
