package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/auth"
	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/commands"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/internal/media"
	"github.com/gurukulhq/gurukul/internal/notice"
	"github.com/gurukulhq/gurukul/internal/referral"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

const maxUploadBytes = 10 << 20

// AdminAPI registers the authenticated management endpoints.
type AdminAPI struct {
	basePath string
	auth     auth.Service
	catalog  catalog.Service
	blog     blog.Service
	notices  notice.Service
	landing  landing.Service
	wizard   *landing.Wizard
	publish  *commands.Handler[commands.PublishLandingCommand]
	referral referral.Service
	media    media.Service
	logger   interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(authService auth.Service, opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		auth:     authService,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithAdminBasePath overrides the base path (defaults to "/admin/api").
func WithAdminBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithAdminCatalog wires the course catalog service.
func WithAdminCatalog(service catalog.Service) AdminOption {
	return func(api *AdminAPI) { api.catalog = service }
}

// WithAdminBlog wires the blog service.
func WithAdminBlog(service blog.Service) AdminOption {
	return func(api *AdminAPI) { api.blog = service }
}

// WithAdminNotices wires the popup service.
func WithAdminNotices(service notice.Service) AdminOption {
	return func(api *AdminAPI) { api.notices = service }
}

// WithAdminLanding wires landing page management and the generation wizard.
func WithAdminLanding(service landing.Service, wizard *landing.Wizard, publish *commands.Handler[commands.PublishLandingCommand]) AdminOption {
	return func(api *AdminAPI) {
		api.landing = service
		api.wizard = wizard
		api.publish = publish
	}
}

// WithAdminReferral wires the referral service.
func WithAdminReferral(service referral.Service) AdminOption {
	return func(api *AdminAPI) { api.referral = service }
}

// WithAdminMedia wires the image upload service.
func WithAdminMedia(service media.Service) AdminOption {
	return func(api *AdminAPI) { api.media = service }
}

// WithAdminLogger injects the module logger.
func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts all admin routes on mux. Every route except sign-in sits
// behind the auth middleware.
func (api *AdminAPI) Register(mux *http.ServeMux) {
	root := joinPath(api.basePath, "")

	mux.HandleFunc("POST "+root+"/auth/sign-in", api.handleSignIn)
	mux.HandleFunc("POST "+root+"/auth/sign-out", api.handleSignOut)

	protected := http.NewServeMux()
	api.registerProtected(protected, root)
	mux.Handle(root+"/", auth.Middleware(api.auth)(protected))
}

func (api *AdminAPI) registerProtected(mux *http.ServeMux, root string) {
	if api.catalog != nil {
		mux.HandleFunc("GET "+root+"/courses", api.handleCourseList)
		mux.HandleFunc("POST "+root+"/courses", api.handleCourseCreate)
		mux.HandleFunc("PUT "+root+"/courses/{id}", api.handleCourseUpdate)
		mux.HandleFunc("DELETE "+root+"/courses/{id}", api.handleCourseDelete)
		mux.HandleFunc("POST "+root+"/courses/{id}/toggle-popular", api.handleCourseTogglePopular)
		mux.HandleFunc("POST "+root+"/courses/{id}/toggle-home", api.handleCourseToggleHome)
		mux.HandleFunc("POST "+root+"/courses/{id}/toggle-active", api.handleCourseToggleActive)

		mux.HandleFunc("GET "+root+"/camps", api.handleCampList)
		mux.HandleFunc("POST "+root+"/camps", api.handleCampCreate)
		mux.HandleFunc("PUT "+root+"/camps/{id}", api.handleCampUpdate)
		mux.HandleFunc("DELETE "+root+"/camps/{id}", api.handleCampDelete)

		mux.HandleFunc("GET "+root+"/categories", api.handleCategoryList)
		mux.HandleFunc("POST "+root+"/categories", api.handleCategoryCreate)
		mux.HandleFunc("PUT "+root+"/categories/{id}", api.handleCategoryUpdate)
		mux.HandleFunc("DELETE "+root+"/categories/{id}", api.handleCategoryDelete)
	}

	if api.blog != nil {
		mux.HandleFunc("GET "+root+"/posts", api.handlePostList)
		mux.HandleFunc("POST "+root+"/posts", api.handlePostCreate)
		mux.HandleFunc("PUT "+root+"/posts/{id}", api.handlePostUpdate)
		mux.HandleFunc("DELETE "+root+"/posts/{id}", api.handlePostDelete)
	}

	if api.notices != nil {
		mux.HandleFunc("GET "+root+"/notice", api.handleNoticeGet)
		mux.HandleFunc("PUT "+root+"/notice", api.handleNoticeUpsert)
		mux.HandleFunc("DELETE "+root+"/notice", api.handleNoticeDeactivate)
	}

	if api.landing != nil {
		mux.HandleFunc("GET "+root+"/landing", api.handleLandingList)
		mux.HandleFunc("GET "+root+"/landing/{id}", api.handleLandingGet)
		mux.HandleFunc("DELETE "+root+"/landing/{id}", api.handleLandingDelete)
		mux.HandleFunc("POST "+root+"/landing/{id}/status", api.handleLandingStatus)
	}
	if api.wizard != nil {
		mux.HandleFunc("GET "+root+"/landing/wizard", api.handleWizardState)
		mux.HandleFunc("POST "+root+"/landing/wizard/open", api.handleWizardOpen)
		mux.HandleFunc("POST "+root+"/landing/wizard/close", api.handleWizardClose)
		mux.HandleFunc("PUT "+root+"/landing/wizard/form", api.handleWizardForm)
		mux.HandleFunc("POST "+root+"/landing/wizard/next", api.handleWizardNext)
		mux.HandleFunc("POST "+root+"/landing/wizard/regenerate", api.handleWizardRegenerate)
		mux.HandleFunc("PATCH "+root+"/landing/wizard/content", api.handleWizardEdit)
		mux.HandleFunc("POST "+root+"/landing/wizard/save", api.handleWizardSaveDraft)
		mux.HandleFunc("POST "+root+"/landing/wizard/publish", api.handleWizardPublish)
	}

	if api.referral != nil {
		mux.HandleFunc("GET "+root+"/referrals/links", api.handleLinkList)
		mux.HandleFunc("POST "+root+"/referrals/links", api.handleLinkCreate)
		mux.HandleFunc("PATCH "+root+"/referrals/links/{id}", api.handleLinkSetActive)
		mux.HandleFunc("DELETE "+root+"/referrals/links/{id}", api.handleLinkDelete)
		mux.HandleFunc("GET "+root+"/referrals/enrollments", api.handleEnrollmentList)
		mux.HandleFunc("PATCH "+root+"/referrals/enrollments/{id}", api.handleEnrollmentStatus)
		mux.HandleFunc("GET "+root+"/referrals/stats", api.handleReferralStats)
	}

	if api.media != nil {
		mux.HandleFunc("POST "+root+"/media", api.handleMediaUpload)
	}
}

func (api *AdminAPI) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	token, err := api.auth.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (api *AdminAPI) handleSignOut(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusNoContent, nil)
}

type coursePayload struct {
	Slug       string    `json:"slug"`
	Title      i18n.Text `json:"title"`
	ShortDesc  i18n.Text `json:"short_desc"`
	Desc       i18n.Text `json:"desc"`
	Category   string    `json:"category"`
	Level      string    `json:"level"`
	Duration   string    `json:"duration"`
	ImageURL   string    `json:"image_url"`
	IsPopular  bool      `json:"is_popular"`
	ShowOnHome bool      `json:"show_on_home"`
	IsActive   bool      `json:"is_active"`
}

func (api *AdminAPI) handleCourseList(w http.ResponseWriter, r *http.Request) {
	courses, err := api.catalog.ListCourses(r.Context(), catalog.ListOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (api *AdminAPI) handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	var body coursePayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	course, err := api.catalog.CreateCourse(r.Context(), catalog.CreateCourseRequest{
		Slug:       body.Slug,
		Title:      body.Title,
		ShortDesc:  body.ShortDesc,
		Desc:       body.Desc,
		Category:   body.Category,
		Level:      body.Level,
		Duration:   body.Duration,
		ImageURL:   body.ImageURL,
		IsPopular:  body.IsPopular,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (api *AdminAPI) handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body coursePayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	course, err := api.catalog.UpdateCourse(r.Context(), catalog.UpdateCourseRequest{
		ID:         id,
		Title:      body.Title,
		ShortDesc:  body.ShortDesc,
		Desc:       body.Desc,
		Category:   body.Category,
		Level:      body.Level,
		Duration:   body.Duration,
		ImageURL:   body.ImageURL,
		IsPopular:  body.IsPopular,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (api *AdminAPI) handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.catalog.DeleteCourse(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) courseToggle(w http.ResponseWriter, r *http.Request, toggle func(*http.Request, uuid.UUID) (*catalog.Course, error)) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	course, err := toggle(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (api *AdminAPI) handleCourseTogglePopular(w http.ResponseWriter, r *http.Request) {
	api.courseToggle(w, r, func(r *http.Request, id uuid.UUID) (*catalog.Course, error) {
		return api.catalog.ToggleCoursePopular(r.Context(), id)
	})
}

func (api *AdminAPI) handleCourseToggleHome(w http.ResponseWriter, r *http.Request) {
	api.courseToggle(w, r, func(r *http.Request, id uuid.UUID) (*catalog.Course, error) {
		return api.catalog.ToggleCourseVisibility(r.Context(), id)
	})
}

func (api *AdminAPI) handleCourseToggleActive(w http.ResponseWriter, r *http.Request) {
	api.courseToggle(w, r, func(r *http.Request, id uuid.UUID) (*catalog.Course, error) {
		return api.catalog.ToggleCourseActive(r.Context(), id)
	})
}

type campPayload struct {
	Slug       string     `json:"slug"`
	Title      i18n.Text  `json:"title"`
	Desc       i18n.Text  `json:"desc"`
	Category   string     `json:"category"`
	AgeGroup   string     `json:"age_group"`
	Location   string     `json:"location"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	ImageURL   string     `json:"image_url"`
	IsPopular  bool       `json:"is_popular"`
	ShowOnHome bool       `json:"show_on_home"`
	IsActive   bool       `json:"is_active"`
}

func (api *AdminAPI) handleCampList(w http.ResponseWriter, r *http.Request) {
	camps, err := api.catalog.ListCamps(r.Context(), catalog.ListOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"camps": camps})
}

func (api *AdminAPI) handleCampCreate(w http.ResponseWriter, r *http.Request) {
	var body campPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	camp, err := api.catalog.CreateCamp(r.Context(), catalog.CreateCampRequest{
		Slug:       body.Slug,
		Title:      body.Title,
		Desc:       body.Desc,
		Category:   body.Category,
		AgeGroup:   body.AgeGroup,
		Location:   body.Location,
		StartsAt:   body.StartsAt,
		EndsAt:     body.EndsAt,
		ImageURL:   body.ImageURL,
		IsPopular:  body.IsPopular,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camp)
}

func (api *AdminAPI) handleCampUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body campPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	camp, err := api.catalog.UpdateCamp(r.Context(), catalog.UpdateCampRequest{
		ID:         id,
		Title:      body.Title,
		Desc:       body.Desc,
		Category:   body.Category,
		AgeGroup:   body.AgeGroup,
		Location:   body.Location,
		StartsAt:   body.StartsAt,
		EndsAt:     body.EndsAt,
		ImageURL:   body.ImageURL,
		IsPopular:  body.IsPopular,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (api *AdminAPI) handleCampDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.catalog.DeleteCamp(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type categoryPayload struct {
	Namespace string    `json:"namespace"`
	Name      i18n.Text `json:"name"`
}

func (api *AdminAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := api.catalog.ListCategories(r.Context(), r.URL.Query().Get("namespace"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (api *AdminAPI) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var body categoryPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	category, err := api.catalog.CreateCategory(r.Context(), catalog.CreateCategoryRequest{
		Namespace: body.Namespace,
		Name:      body.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (api *AdminAPI) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body categoryPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	category, err := api.catalog.UpdateCategory(r.Context(), catalog.UpdateCategoryRequest{ID: id, Name: body.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (api *AdminAPI) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.catalog.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type postPayload struct {
	Slug       string    `json:"slug"`
	Title      i18n.Text `json:"title"`
	Excerpt    i18n.Text `json:"excerpt"`
	Body       i18n.Text `json:"body"`
	Category   string    `json:"category"`
	Author     string    `json:"author"`
	ImageURL   string    `json:"image_url"`
	ShowOnHome bool      `json:"show_on_home"`
	IsActive   bool      `json:"is_active"`
}

func (api *AdminAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	posts, err := api.blog.List(r.Context(), blog.ListOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (api *AdminAPI) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var body postPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	post, err := api.blog.Create(r.Context(), blog.CreatePostRequest{
		Slug:       body.Slug,
		Title:      body.Title,
		Excerpt:    body.Excerpt,
		Body:       body.Body,
		Category:   body.Category,
		Author:     body.Author,
		ImageURL:   body.ImageURL,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (api *AdminAPI) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body postPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	post, err := api.blog.Update(r.Context(), blog.UpdatePostRequest{
		ID:         id,
		Title:      body.Title,
		Excerpt:    body.Excerpt,
		Body:       body.Body,
		Category:   body.Category,
		Author:     body.Author,
		ImageURL:   body.ImageURL,
		ShowOnHome: body.ShowOnHome,
		IsActive:   body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *AdminAPI) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.blog.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleNoticeGet(w http.ResponseWriter, r *http.Request) {
	current, err := api.notices.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (api *AdminAPI) handleNoticeUpsert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title     i18n.Text  `json:"title"`
		Message   i18n.Text  `json:"message"`
		LinkURL   string     `json:"link_url"`
		LinkLabel i18n.Text  `json:"link_label"`
		StartsAt  *time.Time `json:"starts_at"`
		EndsAt    *time.Time `json:"ends_at"`
		IsActive  bool       `json:"is_active"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	saved, err := api.notices.Upsert(r.Context(), notice.UpsertRequest{
		Title:     body.Title,
		Message:   body.Message,
		LinkURL:   body.LinkURL,
		LinkLabel: body.LinkLabel,
		StartsAt:  body.StartsAt,
		EndsAt:    body.EndsAt,
		IsActive:  body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (api *AdminAPI) handleNoticeDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := api.notices.Deactivate(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleLandingList(w http.ResponseWriter, r *http.Request) {
	pages, err := api.landing.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (api *AdminAPI) handleLandingGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	page, err := api.landing.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handleLandingDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.landing.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleLandingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	cmd := commands.PublishLandingCommand{PageID: id, Status: landing.Status(body.Status)}
	if err := api.publish.Execute(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	page, err := api.landing.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) wizardSnapshot() map[string]any {
	return map[string]any{
		"state":   api.wizard.State(),
		"form":    api.wizard.Form(),
		"content": api.wizard.Content(),
	}
}

func (api *AdminAPI) handleWizardState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardOpen(w http.ResponseWriter, _ *http.Request) {
	api.wizard.Open()
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardClose(w http.ResponseWriter, _ *http.Request) {
	api.wizard.Close()
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardForm(w http.ResponseWriter, r *http.Request) {
	var form landing.Params
	if err := decodeJSON(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if err := api.wizard.SetForm(form); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	if err := api.wizard.Next(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardRegenerate(w http.ResponseWriter, r *http.Request) {
	if err := api.wizard.Regenerate(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardEdit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path   string `json:"path"`
		Locale string `json:"locale"`
		Value  string `json:"value"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if err := api.wizard.EditField(body.Path, body.Locale, body.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.wizardSnapshot())
}

func (api *AdminAPI) handleWizardSaveDraft(w http.ResponseWriter, r *http.Request) {
	page, err := api.wizard.SaveDraft(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *AdminAPI) handleWizardPublish(w http.ResponseWriter, r *http.Request) {
	page, err := api.wizard.Publish(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *AdminAPI) handleLinkList(w http.ResponseWriter, r *http.Request) {
	links, err := api.referral.ListLinks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

func (api *AdminAPI) handleLinkCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	link, err := api.referral.CreateLink(r.Context(), referral.CreateLinkRequest{
		Code:     body.Code,
		Name:     body.Name,
		IsActive: body.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (api *AdminAPI) handleLinkSetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	link, err := api.referral.SetLinkActive(r.Context(), id, body.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (api *AdminAPI) handleLinkDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	if err := api.referral.DeleteLink(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleEnrollmentList(w http.ResponseWriter, r *http.Request) {
	enrollments, err := api.referral.ListEnrollments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enrollments": enrollments})
}

func (api *AdminAPI) handleEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid identifier"})
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	enrollment, err := api.referral.UpdateEnrollmentStatus(r.Context(), id, referral.EnrollmentStatus(body.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollment)
}

func (api *AdminAPI) handleReferralStats(w http.ResponseWriter, r *http.Request) {
	stats, err := api.referral.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (api *AdminAPI) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid multipart payload"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "missing file field"})
		return
	}
	defer file.Close()

	upload, err := api.media.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}
