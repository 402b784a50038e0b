package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrSecretRequired     = errors.New("auth: signing secret is required")
	ErrAdminRequired      = errors.New("auth: admin credentials are required")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

// Claims carries the authenticated admin identity.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Config drives the auth service. AdminPasswordHash is a bcrypt hash.
type Config struct {
	Secret            string
	AdminEmail        string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

const defaultTokenTTL = 12 * time.Hour

// Service signs in the single admin identity and verifies session tokens.
type Service interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithClock overrides the clock used for token lifetimes.
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
	secret       []byte
	adminEmail   string
	passwordHash string
	ttl          time.Duration
	now          func() time.Time
	logger       interfaces.Logger
}

// NewService constructs the auth service from config.
func NewService(cfg Config, opts ...ServiceOption) (Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	if strings.TrimSpace(cfg.AdminEmail) == "" || strings.TrimSpace(cfg.AdminPasswordHash) == "" {
		return nil, ErrAdminRequired
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	s := &service{
		secret:       []byte(cfg.Secret),
		adminEmail:   strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: cfg.AdminPasswordHash,
		ttl:          ttl,
		now:          time.Now,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) SignIn(_ context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	s.logger.Info("admin signed in", "email", email)
	return signed, nil
}

func (s *service) Verify(_ context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword produces a bcrypt hash for config bootstrap tooling.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
