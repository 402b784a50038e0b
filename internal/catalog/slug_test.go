package catalog_test

import (
	"testing"

	"github.com/gurukulhq/gurukul/internal/catalog"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Vedic Mathematics", "vedic-mathematics"},
		{"  Sanskrit   For Beginners ", "sanskrit-for-beginners"},
		{"Yoga & Meditation!", "yoga-meditation"},
		{"Bhagavad Gita: Chapter 1", "bhagavad-gita-chapter-1"},
	}
	for _, tc := range cases {
		if got := catalog.DeriveSlug(tc.title); got != tc.want {
			t.Fatalf("DeriveSlug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	titles := []string{
		"Vedic Mathematics",
		"Yoga & Meditation!",
		"Summer Camp 2026",
		"already-a-slug",
	}
	for _, title := range titles {
		once := catalog.DeriveSlug(title)
		twice := catalog.DeriveSlug(once)
		if once != twice {
			t.Fatalf("derivation not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
