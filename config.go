package gurukul

import "github.com/gurukulhq/gurukul/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrSiteBaseURLRequired      = runtimeconfig.ErrSiteBaseURLRequired
	ErrStorageBaseDirRequired   = runtimeconfig.ErrStorageBaseDirRequired
	ErrGeneratorKeyRequired     = runtimeconfig.ErrGeneratorKeyRequired
	ErrAuthSecretRequired       = runtimeconfig.ErrAuthSecretRequired
	ErrAuthAdminRequired        = runtimeconfig.ErrAuthAdminRequired
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	Features        = runtimeconfig.Features
	GeneratorConfig = runtimeconfig.GeneratorConfig
	AuthConfig      = runtimeconfig.AuthConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the runtime defaults. Secrets are empty and must be
// supplied by the host.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
