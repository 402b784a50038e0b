package gurukul

import (
	"context"
	nethttp "net/http"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/auth"
	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/commands"
	"github.com/gurukulhq/gurukul/internal/generator"
	gurukulhttp "github.com/gurukulhq/gurukul/internal/http"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/identity"
	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/internal/logging/gologger"
	"github.com/gurukulhq/gurukul/internal/media"
	"github.com/gurukulhq/gurukul/internal/notice"
	"github.com/gurukulhq/gurukul/internal/referral"
	"github.com/gurukulhq/gurukul/internal/runtimeconfig"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
	"github.com/gurukulhq/gurukul/pkg/storage"
)

// CatalogService exports the course catalog contract for consumers of the
// gurukul package.
type CatalogService = catalog.Service

// BlogService exports the blog contract.
type BlogService = blog.Service

// NoticeService exports the popup contract.
type NoticeService = notice.Service

// LandingService exports the landing page contract.
type LandingService = landing.Service

// ReferralService exports the referral contract.
type ReferralService = referral.Service

// AuthService exports the admin authentication contract.
type AuthService = auth.Service

// MediaService exports the upload helper contract.
type MediaService = media.Service

// Module is the top level runtime façade. It wires repositories, services
// and the HTTP surface from one configuration value.
type Module struct {
	cfg    runtimeconfig.Config
	logger interfaces.Logger

	db            *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	store         interfaces.ObjectStore
	genClient     generator.Client
	clock         func() time.Time

	locales  i18n.LocaleRepository
	catalog  catalog.Service
	blog     blog.Service
	renderer *blog.Renderer
	importer *blog.Importer
	notices  notice.Service
	landing  landing.Service
	wizard   *landing.Wizard
	referral referral.Service
	auth     auth.Service
	media    media.Service

	collections *ContentStore
	urls        *gurukulhttp.URLResolver
}

// Option overrides one wiring decision during New.
type Option func(*Module)

// WithDB switches repositories from in-memory to bun-backed storage.
func WithDB(db *bun.DB) Option {
	return func(m *Module) { m.db = db }
}

// WithCache supplies the repository read cache. Ignored unless the cache
// feature is enabled in the configuration.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(m *Module) {
		m.cacheService = service
		m.keySerializer = serializer
	}
}

// WithLogger overrides the provider-derived logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Module) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithGeneratorClient overrides the content generation client. Tests use
// this to avoid network calls.
func WithGeneratorClient(client generator.Client) Option {
	return func(m *Module) { m.genClient = client }
}

// WithObjectStore overrides the upload object store.
func WithObjectStore(store interfaces.ObjectStore) Option {
	return func(m *Module) { m.store = store }
}

// WithClock overrides the clock used for notice windows and token lifetimes.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// New constructs a module from the configuration. Without WithDB every
// collection lives in memory, which is the mode integration tests and local
// previews run in.
func New(cfg runtimeconfig.Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.logger == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.logger = logging.ModuleLogger(provider, "gurukul")
	}

	if err := m.configureServices(); err != nil {
		return nil, err
	}

	m.urls = gurukulhttp.NewURLResolver(cfg.Site.BaseURL, cfg.Site.RouteConfig)
	m.collections = newContentStore(m.catalog, m.blog, m.referral, m.logger)
	return m, nil
}

func (m *Module) configureServices() error {
	cacheOn := m.cfg.Cache.Enabled && m.cacheService != nil && m.keySerializer != nil

	var (
		courseRepo     catalog.CourseRepository
		campRepo       catalog.CampRepository
		categoryRepo   catalog.CategoryRepository
		postRepo       blog.PostRepository
		noticeRepo     notice.Repository
		pageRepo       landing.PageRepository
		linkRepo       referral.LinkRepository
		visitRepo      referral.VisitRepository
		enrollmentRepo referral.EnrollmentRepository
	)

	if m.db != nil {
		m.locales = i18n.NewBunLocaleRepository(m.db)
		if cacheOn {
			courseRepo = catalog.NewBunCourseRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
			campRepo = catalog.NewBunCampRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
			categoryRepo = catalog.NewBunCategoryRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
			postRepo = blog.NewBunPostRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
		} else {
			courseRepo = catalog.NewBunCourseRepository(m.db)
			campRepo = catalog.NewBunCampRepository(m.db)
			categoryRepo = catalog.NewBunCategoryRepository(m.db)
			postRepo = blog.NewBunPostRepository(m.db)
		}
		noticeRepo = notice.NewBunRepository(m.db)
		pageRepo = landing.NewBunPageRepository(m.db)
		linkRepo = referral.NewBunLinkRepository(m.db)
		visitRepo = referral.NewBunVisitRepository(m.db)
		enrollmentRepo = referral.NewBunEnrollmentRepository(m.db)
	} else {
		memoryLocales := i18n.NewMemoryLocaleRepository()
		_ = memoryLocales.Seed(context.Background(), StandardLocales(m.cfg.DefaultLocale, m.cfg.Locales))
		m.locales = memoryLocales
		courseRepo = catalog.NewMemoryCourseRepository()
		campRepo = catalog.NewMemoryCampRepository()
		categoryRepo = catalog.NewMemoryCategoryRepository()
		postRepo = blog.NewMemoryPostRepository()
		noticeRepo = notice.NewMemoryRepository()
		pageRepo = landing.NewMemoryPageRepository()
		linkRepo = referral.NewMemoryLinkRepository()
		visitRepo = referral.NewMemoryVisitRepository()
		enrollmentRepo = referral.NewMemoryEnrollmentRepository()
	}

	m.catalog = catalog.NewService(courseRepo, campRepo, categoryRepo,
		catalog.WithLogger(m.logger))
	m.blog = blog.NewService(postRepo, blog.WithLogger(m.logger))
	m.renderer = blog.NewRenderer()
	if m.cfg.Features.BlogImport {
		m.importer = blog.NewImporter(postRepo)
	}
	m.notices = notice.NewService(noticeRepo, notice.WithLogger(m.logger))
	m.landing = landing.NewService(pageRepo, landing.WithLogger(m.logger))
	m.referral = referral.NewService(linkRepo, visitRepo, enrollmentRepo,
		referral.WithLogger(m.logger))

	if m.genClient == nil && m.cfg.Features.Generation {
		client, err := generator.NewHTTPClient(generator.Config{
			BaseURL: m.cfg.Generator.BaseURL,
			APIKey:  m.cfg.Generator.APIKey,
			Model:   m.cfg.Generator.Model,
			Timeout: m.cfg.Generator.Timeout,
		})
		if err != nil {
			return err
		}
		m.genClient = client
	}
	if m.genClient != nil {
		m.wizard = landing.NewWizard(m.genClient, m.landing,
			landing.WithWizardLogger(m.logger))
	}

	if m.cfg.Auth.Secret != "" {
		if err := m.cfg.ValidateAuth(); err != nil {
			return err
		}
		authSvc, err := auth.NewService(auth.Config{
			Secret:            m.cfg.Auth.Secret,
			AdminEmail:        m.cfg.Auth.AdminEmail,
			AdminPasswordHash: m.cfg.Auth.AdminPasswordHash,
			TokenTTL:          m.cfg.Auth.TokenTTL,
		}, auth.WithClock(m.clock))
		if err != nil {
			return err
		}
		m.auth = authSvc
	}

	if m.store == nil && m.cfg.Storage.BaseDir != "" {
		fs, err := storage.NewFilesystem(m.cfg.Storage.BaseDir, m.cfg.Storage.BaseURL)
		if err != nil {
			return err
		}
		m.store = fs
	}
	if m.store != nil {
		mediaSvc, err := media.NewService(m.store, media.WithLogger(m.logger))
		if err != nil {
			return err
		}
		m.media = mediaSvc
	}
	return nil
}

var localeNames = map[string]struct{ display, native string }{
	"en": {"English", ""},
	"hi": {"Hindi", "हिन्दी"},
	"sa": {"Sanskrit", "संस्कृतम्"},
}

// StandardLocales builds locale rows for the given language codes with
// deterministic identifiers, suitable for seeding a locale repository.
func StandardLocales(defaultLocale string, codes []string) []*i18n.Locale {
	out := make([]*i18n.Locale, 0, len(codes))
	for _, code := range codes {
		locale := &i18n.Locale{
			ID:        identity.LocaleUUID(code),
			Code:      code,
			Display:   code,
			IsActive:  true,
			IsDefault: code == defaultLocale,
		}
		if names, ok := localeNames[code]; ok {
			locale.Display = names.display
			if names.native != "" {
				native := names.native
				locale.NativeName = &native
			}
		}
		out = append(out, locale)
	}
	return out
}

// Locales returns the locale repository backing the language catalog.
func (m *Module) Locales() i18n.LocaleRepository { return m.locales }

// Catalog returns the course catalog service.
func (m *Module) Catalog() CatalogService { return m.catalog }

// Blog returns the blog service.
func (m *Module) Blog() BlogService { return m.blog }

// Renderer returns the markdown renderer used for public post bodies.
func (m *Module) Renderer() *blog.Renderer { return m.renderer }

// Importer returns the markdown document importer, nil unless the blog
// import feature is enabled.
func (m *Module) Importer() *blog.Importer { return m.importer }

// Notices returns the popup service.
func (m *Module) Notices() NoticeService { return m.notices }

// Landing returns the landing page service.
func (m *Module) Landing() LandingService { return m.landing }

// Wizard returns the generation wizard, nil when no generator client is
// configured.
func (m *Module) Wizard() *landing.Wizard { return m.wizard }

// Referral returns the referral service.
func (m *Module) Referral() ReferralService { return m.referral }

// Auth returns the admin auth service, nil when no secret is configured.
func (m *Module) Auth() AuthService { return m.auth }

// Media returns the upload service, nil when no object store is configured.
func (m *Module) Media() MediaService { return m.media }

// Store returns the admin read-model collections.
func (m *Module) Store() *ContentStore { return m.collections }

// URLs returns the canonical URL resolver.
func (m *Module) URLs() *gurukulhttp.URLResolver { return m.urls }

// Logger returns the module logger.
func (m *Module) Logger() interfaces.Logger { return m.logger }

// Mount registers the public API on mux, and the admin API when auth is
// configured. Admin mutations route through the synchronized services so the
// read-model collections refresh after every write.
func (m *Module) Mount(mux *nethttp.ServeMux) {
	publicOpts := []gurukulhttp.PublicOption{
		gurukulhttp.WithCatalogService(m.catalog),
		gurukulhttp.WithBlogService(m.blog, m.renderer),
		gurukulhttp.WithNoticeService(m.notices),
		gurukulhttp.WithLandingService(m.landing),
		gurukulhttp.WithLocaleRepository(m.locales),
		gurukulhttp.WithURLResolver(m.urls),
		gurukulhttp.WithPublicClock(m.clock),
		gurukulhttp.WithPublicLogger(m.logger),
	}
	if m.cfg.Features.Referrals {
		publicOpts = append(publicOpts, gurukulhttp.WithReferralService(
			m.referral, commands.NewSubmitEnrollmentHandler(m.referral)))
	}
	gurukulhttp.NewPublicAPI(publicOpts...).Register(mux)

	if m.auth == nil {
		return
	}

	adminOpts := []gurukulhttp.AdminOption{
		gurukulhttp.WithAdminCatalog(m.collections.SyncedCatalog(m.catalog)),
		gurukulhttp.WithAdminBlog(m.collections.SyncedBlog(m.blog)),
		gurukulhttp.WithAdminNotices(m.notices),
		gurukulhttp.WithAdminLanding(m.landing, m.wizard,
			commands.NewPublishLandingHandler(m.landing)),
		gurukulhttp.WithAdminLogger(m.logger),
	}
	if m.cfg.Features.Referrals {
		adminOpts = append(adminOpts, gurukulhttp.WithAdminReferral(
			m.collections.SyncedReferral(m.referral)))
	}
	if m.media != nil {
		adminOpts = append(adminOpts, gurukulhttp.WithAdminMedia(m.media))
	}
	gurukulhttp.NewAdminAPI(m.auth, adminOpts...).Register(mux)
}
