package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gurukulhq/gurukul/internal/logging"
)

func newTestService(t *testing.T, opts ...ServiceOption) Service {
	t.Helper()
	hash, err := HashPassword("om-shanti")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	svc, err := NewService(Config{
		Secret:            "test-secret",
		AdminEmail:        "admin@gurukul.example",
		AdminPasswordHash: hash,
		TokenTTL:          time.Hour,
	}, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSignInAndVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.SignIn(ctx, "Admin@Gurukul.Example", "om-shanti")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	claims, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "admin@gurukul.example" {
		t.Fatalf("unexpected claims email %q", claims.Email)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SignIn(ctx, "admin@gurukul.example", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "intruder@example.com", "om-shanti"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issued
	svc := newTestService(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	token, err := svc.SignIn(ctx, "admin@gurukul.example", "om-shanti")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	clock = issued.Add(2 * time.Hour)
	if _, err := svc.Verify(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestMiddlewareGuardsRoutes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.SignIn(ctx, "admin@gurukul.example", "om-shanti")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Email == "" {
			t.Error("expected claims in request context")
		}
		if fields := logging.ContextFields(r.Context()); fields["admin"] != "admin@gurukul.example" {
			t.Errorf("expected admin logging field, got %v", fields)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	// no token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/courses", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// bearer token
	req := httptest.NewRequest(http.MethodGet, "/admin/api/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with bearer token, got %d", rec.Code)
	}

	// session cookie
	req = httptest.NewRequest(http.MethodGet, "/admin/api/courses", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with cookie, got %d", rec.Code)
	}
}
