package catalog

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizeSlug applies the default slug normalization rules: lowercase,
// whitespace collapsed to hyphens, non-alphanumerics stripped. The rule is
// idempotent; normalizing an already-normalized slug is a no-op.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// DeriveSlug produces a URL-safe slug from a display title. Empty or
// unnormalizable titles derive an empty slug, which callers must reject.
func DeriveSlug(title string) string {
	normalized, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil {
		return ""
	}
	return normalized
}
