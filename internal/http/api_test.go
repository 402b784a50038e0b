package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gurukulhq/gurukul/internal/auth"
	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/commands"
	"github.com/gurukulhq/gurukul/internal/generator"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/notice"
	"github.com/gurukulhq/gurukul/internal/referral"
)

type testEnv struct {
	mux      *http.ServeMux
	catalog  catalog.Service
	landing  landing.Service
	referral referral.Service
	notices  notice.Service
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	catalogSvc := catalog.NewService(
		catalog.NewMemoryCourseRepository(),
		catalog.NewMemoryCampRepository(),
		catalog.NewMemoryCategoryRepository(),
	)
	blogSvc := blog.NewService(blog.NewMemoryPostRepository())
	noticeSvc := notice.NewService(notice.NewMemoryRepository())
	landingSvc := landing.NewService(landing.NewMemoryPageRepository())
	referralSvc := referral.NewService(
		referral.NewMemoryLinkRepository(),
		referral.NewMemoryVisitRepository(),
		referral.NewMemoryEnrollmentRepository(),
	)

	client := &generator.StubClient{
		Fn: func(_ context.Context, _ generator.Request) (*generator.Content, error) {
			raw := json.RawMessage(`{
				"hero": {"headline": {"en": "Master Vedic Math"}},
				"about": "A structured course.",
				"cta": {"label": "Enroll now"}
			}`)
			fields := map[string]any{}
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, err
			}
			return &generator.Content{Raw: raw, Fields: fields}, nil
		},
	}
	wizard := landing.NewWizard(client, landingSvc)

	hash, err := auth.HashPassword("sandhya-secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authSvc, err := auth.NewService(auth.Config{
		Secret:            "test-signing-secret",
		AdminEmail:        "admin@gurukul.example",
		AdminPasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	mux := http.NewServeMux()

	public := NewPublicAPI(
		WithCatalogService(catalogSvc),
		WithBlogService(blogSvc, blog.NewRenderer()),
		WithNoticeService(noticeSvc),
		WithLandingService(landingSvc),
		WithReferralService(referralSvc, commands.NewSubmitEnrollmentHandler(referralSvc)),
		WithURLResolver(NewURLResolver("https://gurukul.example", nil)),
	)
	public.Register(mux)

	admin := NewAdminAPI(authSvc,
		WithAdminCatalog(catalogSvc),
		WithAdminBlog(blogSvc),
		WithAdminNotices(noticeSvc),
		WithAdminLanding(landingSvc, wizard, commands.NewPublishLandingHandler(landingSvc)),
		WithAdminReferral(referralSvc),
	)
	admin.Register(mux)

	return &testEnv{
		mux:      mux,
		catalog:  catalogSvc,
		landing:  landingSvc,
		referral: referralSvc,
		notices:  noticeSvc,
	}
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, token string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func signIn(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	rec := doRequest(t, mux, http.MethodPost, "/admin/api/auth/sign-in", map[string]any{
		"email":    "admin@gurukul.example",
		"password": "sandhya-secret",
	}, "", http.StatusOK)
	var payload struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &payload)
	if payload.Token == "" {
		t.Fatal("expected a session token")
	}
	return payload.Token
}

func TestPublicCourseListingFiltersInactive(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:    i18n.Plain("Vedic Math"),
		IsActive: true,
	}); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := env.catalog.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title: i18n.Plain("Retired Course"),
	}); err != nil {
		t.Fatalf("create course: %v", err)
	}

	rec := doRequest(t, env.mux, http.MethodGet, "/api/courses", nil, "", http.StatusOK)
	var payload struct {
		Courses []*catalog.Course `json:"courses"`
	}
	decodeBody(t, rec, &payload)
	if len(payload.Courses) != 1 {
		t.Fatalf("expected 1 active course got %d", len(payload.Courses))
	}
	if payload.Courses[0].Slug != "vedic-math" {
		t.Fatalf("unexpected slug %q", payload.Courses[0].Slug)
	}

	doRequest(t, env.mux, http.MethodGet, "/api/courses/vedic-math", nil, "", http.StatusOK)
	doRequest(t, env.mux, http.MethodGet, "/api/courses/no-such-course", nil, "", http.StatusNotFound)
}

func TestPublicNoticeUnconfiguredReturnsNotFound(t *testing.T) {
	env := setupAPI(t)
	doRequest(t, env.mux, http.MethodGet, "/api/notice", nil, "", http.StatusNotFound)
}

func TestPublicEnrollmentSubmission(t *testing.T) {
	env := setupAPI(t)

	doRequest(t, env.mux, http.MethodPost, "/api/enrollments", map[string]any{
		"student_name": "Asha",
		"email":        "asha@example.com",
		"course_id":    "course-123",
		"code":         "unknown-code",
	}, "", http.StatusAccepted)

	enrollments, err := env.referral.ListEnrollments(context.Background())
	if err != nil {
		t.Fatalf("list enrollments: %v", err)
	}
	if len(enrollments) != 1 {
		t.Fatalf("expected 1 enrollment got %d", len(enrollments))
	}
	if enrollments[0].Status != referral.StatusPending {
		t.Fatalf("expected pending got %s", enrollments[0].Status)
	}

	// missing email fails validation
	doRequest(t, env.mux, http.MethodPost, "/api/enrollments", map[string]any{
		"student_name": "Asha",
		"course_id":    "course-123",
	}, "", http.StatusUnprocessableEntity)
}

func TestPublicVisitRecordingIsSilentForUnknownCodes(t *testing.T) {
	env := setupAPI(t)
	doRequest(t, env.mux, http.MethodPost, "/api/referrals/bogus/visits", map[string]any{"path": "/"}, "", http.StatusNoContent)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/courses", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	doRequest(t, env.mux, http.MethodPost, "/admin/api/auth/sign-in", map[string]any{
		"email":    "admin@gurukul.example",
		"password": "wrong",
	}, "", http.StatusUnauthorized)
}

func TestAdminCourseLifecycle(t *testing.T) {
	env := setupAPI(t)
	token := signIn(t, env.mux)

	createResp := doRequest(t, env.mux, http.MethodPost, "/admin/api/courses", map[string]any{
		"title":     map[string]string{"en": "Sanskrit Basics", "hi": "संस्कृत मूल बातें"},
		"category":  "language",
		"is_active": true,
	}, token, http.StatusCreated)

	var created catalog.Course
	decodeBody(t, createResp, &created)
	if created.Slug != "sanskrit-basics" {
		t.Fatalf("expected derived slug got %q", created.Slug)
	}

	doRequest(t, env.mux, http.MethodPost, "/admin/api/courses/"+created.ID.String()+"/toggle-popular", nil, token, http.StatusOK)

	listResp := doRequest(t, env.mux, http.MethodGet, "/admin/api/courses", nil, token, http.StatusOK)
	var listing struct {
		Courses []*catalog.Course `json:"courses"`
	}
	decodeBody(t, listResp, &listing)
	if len(listing.Courses) != 1 || !listing.Courses[0].IsPopular {
		t.Fatalf("expected one popular course, got %+v", listing.Courses)
	}

	doRequest(t, env.mux, http.MethodDelete, "/admin/api/courses/"+created.ID.String(), nil, token, http.StatusNoContent)
	doRequest(t, env.mux, http.MethodDelete, "/admin/api/courses/not-a-uuid", nil, token, http.StatusBadRequest)
}

func TestAdminNoticeUpsertAndPublicWindow(t *testing.T) {
	env := setupAPI(t)
	token := signIn(t, env.mux)

	doRequest(t, env.mux, http.MethodPut, "/admin/api/notice", map[string]any{
		"title":     "Admissions open",
		"message":   map[string]string{"en": "Batch starts soon", "hi": "बैच जल्द शुरू"},
		"is_active": true,
	}, token, http.StatusOK)

	rec := doRequest(t, env.mux, http.MethodGet, "/api/notice", nil, "", http.StatusOK)
	var current notice.Notice
	decodeBody(t, rec, &current)
	if current.Title.Resolve("en") != "Admissions open" {
		t.Fatalf("unexpected title %q", current.Title.Resolve("en"))
	}

	doRequest(t, env.mux, http.MethodDelete, "/admin/api/notice", nil, token, http.StatusNoContent)
	doRequest(t, env.mux, http.MethodGet, "/api/notice", nil, "", http.StatusNotFound)
}

func TestAdminWizardFlowProducesPublishedPage(t *testing.T) {
	env := setupAPI(t)
	token := signIn(t, env.mux)

	doRequest(t, env.mux, http.MethodPost, "/admin/api/landing/wizard/open", nil, token, http.StatusOK)
	doRequest(t, env.mux, http.MethodPut, "/admin/api/landing/wizard/form", map[string]any{
		"course_name":        "Vedic Math Mastery",
		"course_description": "Twelve weeks of mental arithmetic.",
		"audience":           "school students",
		"age_range":          "10-15",
		"duration":           "12 weeks",
		"schedule":           "Sat-Sun mornings",
		"pricing_batches":    []map[string]string{{"name": "Weekend", "price": "4999"}},
		"trust_signals":      []string{"5000+ students taught"},
		"tone":               "warm",
	}, token, http.StatusOK)

	for i := 0; i < 6; i++ {
		doRequest(t, env.mux, http.MethodPost, "/admin/api/landing/wizard/next", nil, token, http.StatusOK)
	}

	stateResp := doRequest(t, env.mux, http.MethodGet, "/admin/api/landing/wizard", nil, token, http.StatusOK)
	var snapshot struct {
		State   landing.State    `json:"state"`
		Content *landing.Content `json:"content"`
	}
	decodeBody(t, stateResp, &snapshot)
	if snapshot.State != landing.StatePreview {
		t.Fatalf("expected preview state got %d", snapshot.State)
	}
	if snapshot.Content == nil || snapshot.Content.Hero.Headline.Resolve("en") != "Master Vedic Math" {
		t.Fatalf("unexpected generated content %+v", snapshot.Content)
	}

	doRequest(t, env.mux, http.MethodPatch, "/admin/api/landing/wizard/content", map[string]any{
		"path":   "hero.headline",
		"locale": "hi",
		"value":  "वैदिक गणित सीखें",
	}, token, http.StatusOK)

	pubResp := doRequest(t, env.mux, http.MethodPost, "/admin/api/landing/wizard/publish", nil, token, http.StatusCreated)
	var page landing.Page
	decodeBody(t, pubResp, &page)
	if page.Status != landing.StatusPublished {
		t.Fatalf("expected published got %s", page.Status)
	}

	doRequest(t, env.mux, http.MethodGet, "/api/landing/"+page.Slug, nil, "", http.StatusOK)
}

func TestAdminLandingStatusToggle(t *testing.T) {
	env := setupAPI(t)
	token := signIn(t, env.mux)
	ctx := context.Background()

	page, err := env.landing.Save(ctx, landing.SaveRequest{
		Params:  landing.Params{CourseName: "Bhagavad Gita Studies"},
		Content: landing.Content{},
		Status:  landing.StatusDraft,
	})
	if err != nil {
		t.Fatalf("save page: %v", err)
	}

	doRequest(t, env.mux, http.MethodGet, "/api/landing/"+page.Slug, nil, "", http.StatusNotFound)

	rec := doRequest(t, env.mux, http.MethodPost, "/admin/api/landing/"+page.ID.String()+"/status", map[string]any{
		"status": "published",
	}, token, http.StatusOK)
	var updated landing.Page
	decodeBody(t, rec, &updated)
	if updated.Status != landing.StatusPublished {
		t.Fatalf("expected published got %s", updated.Status)
	}

	doRequest(t, env.mux, http.MethodGet, "/api/landing/"+page.Slug, nil, "", http.StatusOK)
}

func TestSitemapListsPublishableContent(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:    i18n.Plain("Vedic Math"),
		IsActive: true,
	}); err != nil {
		t.Fatalf("create course: %v", err)
	}

	rec := doRequest(t, env.mux, http.MethodGet, "/sitemap.xml", nil, "", http.StatusOK)
	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte("https://gurukul.example/courses/vedic-math")) {
		t.Fatalf("sitemap missing course URL:\n%s", body)
	}

	robots := doRequest(t, env.mux, http.MethodGet, "/robots.txt", nil, "", http.StatusOK)
	if !bytes.Contains(robots.Body.Bytes(), []byte("Sitemap: https://gurukul.example/sitemap.xml")) {
		t.Fatalf("robots missing sitemap pointer:\n%s", robots.Body.String())
	}
}
