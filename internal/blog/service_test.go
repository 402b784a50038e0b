package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

func newTestService(t *testing.T) (Service, *MemoryPostRepository) {
	t.Helper()
	repo := NewMemoryPostRepository()
	svc := NewService(repo,
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }),
	)
	return svc, repo
}

func TestCreateDerivesSlugAndFallsBack(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostRequest{
		Title: i18n.Localized(map[string]string{
			"en": "Benefits of Daily Sanskrit",
			"hi": "दैनिक संस्कृत के लाभ",
		}),
		Body:     i18n.Plain("Some body"),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "benefits-of-daily-sanskrit" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
	if got := post.Title.Resolve("sa"); got != "Benefits of Daily Sanskrit" {
		t.Fatalf("expected sa to fall back to en title, got %q", got)
	}
	if got := post.Title.Resolve("hi"); got != "दैनिक संस्कृत के लाभ" {
		t.Fatalf("expected hi variant, got %q", got)
	}
}

func TestCreateRequiresDefaultLocaleTitle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreatePostRequest{
		Title: i18n.Localized(map[string]string{"hi": "केवल हिंदी"}),
	})
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreatePostRequest{Title: i18n.Plain("Yoga Basics")}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreatePostRequest{Title: i18n.Plain("Yoga Basics")})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdateReplacesLocalizedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostRequest{
		Title: i18n.Localized(map[string]string{"en": "Old", "hi": "पुराना"}),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	updated, err := svc.Update(ctx, UpdatePostRequest{
		ID:    post.ID,
		Title: i18n.Localized(map[string]string{"en": "New"}),
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if got := updated.Title.Resolve("hi"); got != "New" {
		t.Fatalf("expected hi variant dropped by full replacement, got %q", got)
	}
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seed := []CreatePostRequest{
		{Title: i18n.Plain("Active Home"), Category: "vedic", ShowOnHome: true, IsActive: true},
		{Title: i18n.Plain("Active Hidden"), Category: "vedic", IsActive: true},
		{Title: i18n.Plain("Inactive"), Category: "yoga"},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}

	active, err := svc.List(ctx, ListOptions{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active posts, got %d", len(active))
	}

	home, err := svc.List(ctx, ListOptions{ActiveOnly: true, HomeOnly: true})
	if err != nil {
		t.Fatalf("list home: %v", err)
	}
	if len(home) != 1 {
		t.Fatalf("expected 1 home post, got %d", len(home))
	}

	yoga, err := svc.List(ctx, ListOptions{Category: "yoga"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(yoga) != 1 {
		t.Fatalf("expected 1 yoga post, got %d", len(yoga))
	}
}

func TestGetBySlugNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBySlug(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Delete(context.Background(), uuid.Nil); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("expected ErrIDRequired, got %v", err)
	}
}
