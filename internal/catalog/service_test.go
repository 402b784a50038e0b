package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/i18n"
)

func newService(t *testing.T) (catalog.Service, *catalog.MemoryCourseRepository) {
	t.Helper()
	courses := catalog.NewMemoryCourseRepository()
	camps := catalog.NewMemoryCampRepository()
	categories := catalog.NewMemoryCategoryRepository()
	svc := catalog.NewService(courses, camps, categories, catalog.WithClock(func() time.Time {
		return time.Unix(0, 0)
	}))
	return svc, courses
}

func TestCreateCourseDerivesSlug(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateCourse(context.Background(), catalog.CreateCourseRequest{
		Title:    i18n.Localized(map[string]string{"en": "Vedic Mathematics", "hi": "वैदिक गणित"}),
		Category: "Mathematics",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if created.Slug != "vedic-mathematics" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
	if got := created.Title.Resolve("hi"); got != "वैदिक गणित" {
		t.Fatalf("hi title = %q", got)
	}
	if got := created.Title.Resolve("sa"); got != "Vedic Mathematics" {
		t.Fatalf("sa title should fall back to default, got %q", got)
	}
}

func TestCreateCourseRequiresDefaultTitle(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateCourse(context.Background(), catalog.CreateCourseRequest{
		Title: i18n.Localized(map[string]string{"hi": "केवल हिंदी"}),
	})
	if !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreateCourseRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title: i18n.Plain("Sanskrit Basics"),
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title: i18n.Plain("Sanskrit Basics"),
	})
	if !errors.Is(err, catalog.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdateCourseReplacesLocalizedFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:     i18n.Localized(map[string]string{"en": "Yoga", "hi": "योग"}),
		ShortDesc: i18n.Plain("Daily practice"),
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The update carries only the en variant; the hi variant must not survive
	// because localized fields are whole-record replacements.
	updated, err := svc.UpdateCourse(ctx, catalog.UpdateCourseRequest{
		ID:       created.ID,
		Title:    i18n.Localized(map[string]string{"en": "Yoga Sadhana"}),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.Title.EN; got != "Yoga Sadhana" {
		t.Fatalf("en title = %q", got)
	}
	if updated.Title.HI != "" {
		t.Fatalf("hi title should have been replaced, got %q", updated.Title.HI)
	}
}

func TestToggleCoursePopular(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title: i18n.Plain("Chanting"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsPopular {
		t.Fatal("expected IsPopular false on create")
	}

	toggled, err := svc.ToggleCoursePopular(ctx, created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.IsPopular {
		t.Fatal("expected IsPopular true after toggle")
	}

	again, err := svc.ToggleCoursePopular(ctx, created.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if again.IsPopular {
		t.Fatal("expected IsPopular false after second toggle")
	}
}

func TestListCoursesFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:      i18n.Plain("Active Home"),
		IsActive:   true,
		ShowOnHome: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:    i18n.Plain("Inactive"),
		IsActive: false,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := svc.ListCourses(ctx, catalog.ListOptions{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active course, got %d", len(active))
	}

	home, err := svc.ListCourses(ctx, catalog.ListOptions{ActiveOnly: true, HomeOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(home) != 1 || home[0].Slug != "active-home" {
		t.Fatalf("unexpected home listing: %+v", home)
	}
}

func TestDeleteCategoryDoesNotCascade(t *testing.T) {
	svc, courses := newService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Namespace: catalog.NamespaceCourse,
		Name:      i18n.Plain("Philosophy"),
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := svc.CreateCourse(ctx, catalog.CreateCourseRequest{
		Title:    i18n.Plain("Vedanta"),
		Category: "Philosophy",
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	course, err := courses.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if course.Category != "Philosophy" {
		t.Fatalf("category reference should survive deletion, got %q", course.Category)
	}
}

func TestCategoryNamespacesAreIndependent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Namespace: catalog.NamespaceCourse,
		Name:      i18n.Plain("Culture"),
	}); err != nil {
		t.Fatalf("course namespace: %v", err)
	}
	// Same name in the blog namespace is a separate record.
	if _, err := svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Namespace: catalog.NamespaceBlog,
		Name:      i18n.Plain("Culture"),
	}); err != nil {
		t.Fatalf("blog namespace: %v", err)
	}

	courseCats, err := svc.ListCategories(ctx, catalog.NamespaceCourse)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courseCats) != 1 {
		t.Fatalf("expected 1 course category, got %d", len(courseCats))
	}
}

func TestCategoryDuplicateRejected(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Namespace: catalog.NamespaceCourse,
		Name:      i18n.Plain("Music"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Namespace: catalog.NamespaceCourse,
		Name:      i18n.Plain("Music"),
	})
	if !errors.Is(err, catalog.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestGetCourseBySlugNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetCourseBySlug(context.Background(), "missing")
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestToggleRequiresID(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.ToggleCoursePopular(context.Background(), uuid.Nil); !errors.Is(err, catalog.ErrIDRequired) {
		t.Fatalf("expected ErrIDRequired, got %v", err)
	}
}
