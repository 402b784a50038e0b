package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

var (
	ErrDefaultLocaleUnsupported = errors.New("config: default locale is not in the supported set")
	ErrSiteBaseURLRequired      = errors.New("config: site base URL is required")
	ErrStorageBaseDirRequired   = errors.New("config: storage base directory is required")
	ErrGeneratorKeyRequired     = errors.New("config: generator API key is required when generation is enabled")
	ErrAuthSecretRequired       = errors.New("config: auth secret is required")
	ErrAuthAdminRequired        = errors.New("config: admin email and password hash are required")
	ErrLoggingLevelInvalid      = errors.New("config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("config: logging format is invalid")
)

// Config aggregates runtime settings for the module. Fields use simple types
// so host applications can populate them from any source.
type Config struct {
	DefaultLocale string
	Locales       []string
	Site          SiteConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Features      Features
	Generator     GeneratorConfig
	Auth          AuthConfig
	Logging       LoggingConfig
}

// SiteConfig drives public URL construction.
type SiteConfig struct {
	BaseURL     string
	RouteConfig *urlkit.Config
}

// StorageConfig configures the upload object store.
type StorageConfig struct {
	BaseDir string
	BaseURL string
}

// CacheConfig toggles the repository read cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features gates optional subsystems.
type Features struct {
	Generation bool
	Referrals  bool
	BlogImport bool
}

// GeneratorConfig configures the content generation client.
type GeneratorConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// AuthConfig configures the single admin credential and token signing.
type AuthConfig struct {
	Secret            string
	AdminEmail        string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a config with conservative defaults. Secrets are
// intentionally empty and must be supplied by the host.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: i18n.DefaultLocale,
		Locales:       append([]string(nil), i18n.SupportedLocales...),
		Site: SiteConfig{
			BaseURL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			BaseDir: "data/uploads",
			BaseURL: "http://localhost:8080/media",
		},
		Cache: CacheConfig{
			DefaultTTL: 5 * time.Minute,
		},
		Features: Features{
			Referrals: true,
		},
		Generator: GeneratorConfig{
			Timeout: 90 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL: 12 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if !localeSupported(c.DefaultLocale, c.Locales) {
		return fmt.Errorf("%w: %q", ErrDefaultLocaleUnsupported, c.DefaultLocale)
	}
	if strings.TrimSpace(c.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	if strings.TrimSpace(c.Storage.BaseDir) == "" {
		return ErrStorageBaseDirRequired
	}
	if c.Features.Generation && strings.TrimSpace(c.Generator.APIKey) == "" {
		return ErrGeneratorKeyRequired
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return nil
}

// ValidateAuth checks the admin credential block. Split from Validate so
// read-only tooling can run without secrets.
func (c Config) ValidateAuth() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return ErrAuthSecretRequired
	}
	if strings.TrimSpace(c.Auth.AdminEmail) == "" || strings.TrimSpace(c.Auth.AdminPasswordHash) == "" {
		return ErrAuthAdminRequired
	}
	return nil
}

func (l LoggingConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrLoggingLevelInvalid, l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "text", "json", "console", "pretty":
	default:
		return fmt.Errorf("%w: %q", ErrLoggingFormatInvalid, l.Format)
	}
	return nil
}

func localeSupported(locale string, locales []string) bool {
	normalized := i18n.NormalizeLocale(locale)
	for _, candidate := range locales {
		if i18n.NormalizeLocale(candidate) == normalized {
			return true
		}
	}
	return false
}
