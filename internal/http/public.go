package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/commands"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/internal/notice"
	"github.com/gurukulhq/gurukul/internal/referral"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

// PublicAPI registers the unauthenticated site endpoints.
type PublicAPI struct {
	basePath string
	catalog  catalog.Service
	blog     blog.Service
	renderer *blog.Renderer
	notices  notice.Service
	landing  landing.Service
	referral referral.Service
	enroll   *commands.Handler[commands.SubmitEnrollmentCommand]
	locales  i18n.LocaleRepository
	urls     *URLResolver
	now      func() time.Time
	logger   interfaces.Logger
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI instance.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath: "/api",
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithPublicBasePath overrides the base API path (defaults to "/api").
func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithCatalogService wires the course catalog service.
func WithCatalogService(service catalog.Service) PublicOption {
	return func(api *PublicAPI) { api.catalog = service }
}

// WithBlogService wires the blog service and renderer.
func WithBlogService(service blog.Service, renderer *blog.Renderer) PublicOption {
	return func(api *PublicAPI) {
		api.blog = service
		api.renderer = renderer
	}
}

// WithNoticeService wires the popup service.
func WithNoticeService(service notice.Service) PublicOption {
	return func(api *PublicAPI) { api.notices = service }
}

// WithLandingService wires the landing page service.
func WithLandingService(service landing.Service) PublicOption {
	return func(api *PublicAPI) { api.landing = service }
}

// WithReferralService wires the referral service and enrollment command.
func WithReferralService(service referral.Service, enroll *commands.Handler[commands.SubmitEnrollmentCommand]) PublicOption {
	return func(api *PublicAPI) {
		api.referral = service
		api.enroll = enroll
	}
}

// WithLocaleRepository wires the language catalog endpoint.
func WithLocaleRepository(locales i18n.LocaleRepository) PublicOption {
	return func(api *PublicAPI) { api.locales = locales }
}

// WithURLResolver wires canonical URL construction for the sitemap.
func WithURLResolver(resolver *URLResolver) PublicOption {
	return func(api *PublicAPI) { api.urls = resolver }
}

// WithPublicClock overrides the clock used for notice windows.
func WithPublicClock(clock func() time.Time) PublicOption {
	return func(api *PublicAPI) {
		if clock != nil {
			api.now = clock
		}
	}
}

// WithPublicLogger injects the module logger.
func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts all public routes on mux.
func (api *PublicAPI) Register(mux *http.ServeMux) {
	root := joinPath(api.basePath, "")

	if api.catalog != nil {
		mux.HandleFunc("GET "+root+"/courses", api.handleCourseList)
		mux.HandleFunc("GET "+root+"/courses/{slug}", api.handleCourseGet)
		mux.HandleFunc("GET "+root+"/camps", api.handleCampList)
		mux.HandleFunc("GET "+root+"/categories", api.handleCategoryList)
	}
	if api.blog != nil {
		mux.HandleFunc("GET "+root+"/blog", api.handlePostList)
		mux.HandleFunc("GET "+root+"/blog/{slug}", api.handlePostGet)
	}
	if api.notices != nil {
		mux.HandleFunc("GET "+root+"/notice", api.handleNoticeCurrent)
	}
	if api.locales != nil {
		mux.HandleFunc("GET "+root+"/locales", api.handleLocaleList)
	}
	if api.landing != nil {
		mux.HandleFunc("GET "+root+"/landing/{slug}", api.handleLandingResolve)
	}
	if api.referral != nil {
		mux.HandleFunc("POST "+root+"/enrollments", api.handleEnrollmentSubmit)
		mux.HandleFunc("POST "+root+"/referrals/{code}/visits", api.handleVisitRecord)
	}
	if api.urls != nil {
		mux.HandleFunc("GET /sitemap.xml", api.handleSitemap)
		mux.HandleFunc("GET /robots.txt", api.handleRobots)
	}
}

func requestLocale(r *http.Request) string {
	locale := i18n.NormalizeLocale(r.URL.Query().Get("locale"))
	if !i18n.IsSupportedLocale(locale) {
		return i18n.DefaultLocale
	}
	return locale
}

func (api *PublicAPI) handleCourseList(w http.ResponseWriter, r *http.Request) {
	opts := catalog.ListOptions{ActiveOnly: true}
	query := r.URL.Query()
	if query.Get("home") == "true" {
		opts.HomeOnly = true
	}
	if query.Get("popular") == "true" {
		opts.PopularOnly = true
	}
	opts.Category = query.Get("category")

	courses, err := api.catalog.ListCourses(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (api *PublicAPI) handleCourseGet(w http.ResponseWriter, r *http.Request) {
	course, err := api.catalog.GetCourseBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	payload := map[string]any{"course": course}
	if api.urls != nil {
		payload["canonical_url"] = api.urls.CanonicalURL("course", course.Slug)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *PublicAPI) handleCampList(w http.ResponseWriter, r *http.Request) {
	camps, err := api.catalog.ListCamps(r.Context(), catalog.ListOptions{ActiveOnly: true})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"camps": camps})
}

func (api *PublicAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	namespace := r.URL.Query().Get("namespace")
	categories, err := api.catalog.ListCategories(r.Context(), namespace)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (api *PublicAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	opts := blog.ListOptions{ActiveOnly: true}
	if r.URL.Query().Get("home") == "true" {
		opts.HomeOnly = true
	}
	opts.Category = r.URL.Query().Get("category")

	posts, err := api.blog.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (api *PublicAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	post, err := api.blog.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	payload := map[string]any{"post": post}
	if api.renderer != nil {
		html, err := api.renderer.RenderedBody(post, requestLocale(r))
		if err != nil {
			writeError(w, err)
			return
		}
		payload["body_html"] = html
	}
	if api.urls != nil {
		payload["canonical_url"] = api.urls.CanonicalURL("post", post.Slug)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *PublicAPI) handleLocaleList(w http.ResponseWriter, r *http.Request) {
	locales, err := api.locales.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locales": locales})
}

func (api *PublicAPI) handleNoticeCurrent(w http.ResponseWriter, r *http.Request) {
	current, err := api.notices.Current(r.Context(), api.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (api *PublicAPI) handleLandingResolve(w http.ResponseWriter, r *http.Request) {
	page, err := api.landing.ResolvePublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	payload := map[string]any{"page": page}
	if api.urls != nil {
		payload["canonical_url"] = api.urls.CanonicalURL("landing", page.Slug)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *PublicAPI) handleEnrollmentSubmit(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SubmitEnrollmentCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if err := api.enroll.Execute(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "pending"})
}

func (api *PublicAPI) handleVisitRecord(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	// body is optional
	_ = decodeJSON(r, &body)

	if err := api.referral.RecordVisit(r.Context(), r.PathValue("code"), body.Path); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *PublicAPI) handleSitemap(w http.ResponseWriter, r *http.Request) {
	xml, err := api.urls.Sitemap(r.Context(), api.catalog, api.blog, api.landing)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml))
}

func (api *PublicAPI) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(api.urls.Robots()))
}
