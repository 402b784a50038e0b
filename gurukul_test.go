package gurukul_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/gurukulhq/gurukul"
	"github.com/gurukulhq/gurukul/internal/auth"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/pkg/testsupport"
)

func testConfig(t *testing.T) gurukul.Config {
	t.Helper()
	cfg := gurukul.DefaultConfig()
	cfg.Storage.BaseDir = t.TempDir()

	hash, err := auth.HashPassword("modak-and-chai")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cfg.Auth.Secret = "integration-secret"
	cfg.Auth.AdminEmail = "admin@gurukul.example"
	cfg.Auth.AdminPasswordHash = hash
	return cfg
}

func TestModuleAdminMutationRefreshesStore(t *testing.T) {
	module, err := gurukul.New(testConfig(t))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	mux := http.NewServeMux()
	module.Mount(mux)

	var notified [][]string
	module.Store().Courses.Subscribe(func(items []*catalog.Course) {
		slugs := make([]string, 0, len(items))
		for _, item := range items {
			slugs = append(slugs, item.Slug)
		}
		notified = append(notified, slugs)
	})

	token := signInModule(t, mux)

	body, _ := json.Marshal(map[string]any{
		"title":     map[string]string{"en": "Vedic Math", "hi": "वैदिक गणित"},
		"is_active": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/courses", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create course: %d (%s)", rec.Code, rec.Body.String())
	}

	snapshot := module.Store().Courses.Snapshot()
	if len(snapshot) != 1 || snapshot[0].Slug != "vedic-math" {
		t.Fatalf("store not refreshed after mutation: %+v", snapshot)
	}
	if len(notified) != 1 || len(notified[0]) != 1 {
		t.Fatalf("expected one subscriber notification, got %v", notified)
	}

	// public read sees the same backend state
	pub := httptest.NewRequest(http.MethodGet, "/api/courses/vedic-math", nil)
	pubRec := httptest.NewRecorder()
	mux.ServeHTTP(pubRec, pub)
	if pubRec.Code != http.StatusOK {
		t.Fatalf("public read: %d", pubRec.Code)
	}
}

func TestModuleBunStorageRoundTrip(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	if err := gurukul.ApplyMigrations(ctx, sqlDB); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// second apply is a no-op
	if err := gurukul.ApplyMigrations(ctx, sqlDB); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	module, err := gurukul.New(testConfig(t), gurukul.WithDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	created, err := module.Catalog().CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:    i18n.Localized(map[string]string{"en": "Sanskrit Basics", "sa": "संस्कृतमूलानि"}),
		Category: "language",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	// a second module over the same database reads what the first wrote
	reopened, err := gurukul.New(testConfig(t), gurukul.WithDB(bunDB))
	if err != nil {
		t.Fatalf("reopen module: %v", err)
	}
	fetched, err := reopened.Catalog().GetCourseBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if fetched.Title.Resolve("sa") != "संस्कृतमूलानि" {
		t.Fatalf("unexpected title %q", fetched.Title.Resolve("sa"))
	}
	if fetched.Title.Resolve("hi") != "Sanskrit Basics" {
		t.Fatalf("expected default-locale fallback, got %q", fetched.Title.Resolve("hi"))
	}
}

func signInModule(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    "admin@gurukul.example",
		"password": "modak-and-chai",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/auth/sign-in", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign in: %d (%s)", rec.Code, rec.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("empty token")
	}
	return payload.Token
}

func TestModuleServesLocaleCatalog(t *testing.T) {
	module, err := gurukul.New(testConfig(t))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	sa, err := module.Locales().GetByCode(context.Background(), "sa")
	if err != nil {
		t.Fatalf("get sanskrit locale: %v", err)
	}
	if sa.IsDefault {
		t.Fatal("sanskrit must not be the default locale")
	}

	mux := http.NewServeMux()
	module.Mount(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locales", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("locale listing: %d", rec.Code)
	}
	var payload struct {
		Locales []*i18n.Locale `json:"locales"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode locales: %v", err)
	}
	if len(payload.Locales) != 3 {
		t.Fatalf("expected 3 locales, got %d", len(payload.Locales))
	}
	defaults := 0
	for _, locale := range payload.Locales {
		if locale.IsDefault {
			defaults++
			if locale.Code != "en" {
				t.Fatalf("unexpected default locale %q", locale.Code)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default locale, got %d", defaults)
	}
}
