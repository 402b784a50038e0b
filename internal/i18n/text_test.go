package i18n_test

import (
	"encoding/json"
	"testing"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

func TestResolveFallbackChain(t *testing.T) {
	cases := []struct {
		name   string
		text   i18n.Text
		locale string
		want   string
	}{
		{
			name:   "requested variant wins",
			text:   i18n.Localized(map[string]string{"en": "Courses", "hi": "पाठ्यक्रम"}),
			locale: "hi",
			want:   "पाठ्यक्रम",
		},
		{
			name:   "empty variant falls back to default",
			text:   i18n.Localized(map[string]string{"en": "Courses", "sa": ""}),
			locale: "sa",
			want:   "Courses",
		},
		{
			name:   "missing variant falls back to default",
			text:   i18n.Localized(map[string]string{"en": "Courses"}),
			locale: "hi",
			want:   "Courses",
		},
		{
			name:   "both empty resolves to empty string",
			text:   i18n.Localized(map[string]string{"hi": ""}),
			locale: "hi",
			want:   "",
		},
		{
			name:   "plain value resolves unchanged for any locale",
			text:   i18n.Plain("Vedic Chanting"),
			locale: "sa",
			want:   "Vedic Chanting",
		},
		{
			name:   "zero value resolves to empty string",
			text:   i18n.Text{},
			locale: "en",
			want:   "",
		},
		{
			name:   "locale code is case-insensitive",
			text:   i18n.Localized(map[string]string{"hi": "योग"}),
			locale: "HI",
			want:   "योग",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.text.Resolve(tc.locale); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.locale, got, tc.want)
			}
		})
	}
}

func TestTextJSONPolymorphic(t *testing.T) {
	var plain i18n.Text
	if err := json.Unmarshal([]byte(`"Morning Batch"`), &plain); err != nil {
		t.Fatalf("unmarshal plain: %v", err)
	}
	if plain.Kind() != i18n.KindPlain {
		t.Fatalf("expected plain kind, got %v", plain.Kind())
	}
	if got := plain.Resolve("hi"); got != "Morning Batch" {
		t.Fatalf("plain resolve = %q", got)
	}

	var localized i18n.Text
	if err := json.Unmarshal([]byte(`{"en":"About","hi":"परिचय","extra":42}`), &localized); err != nil {
		t.Fatalf("unmarshal localized: %v", err)
	}
	if localized.Kind() != i18n.KindLocalized {
		t.Fatalf("expected localized kind, got %v", localized.Kind())
	}
	if got := localized.Resolve("hi"); got != "परिचय" {
		t.Fatalf("localized resolve = %q", got)
	}

	out, err := json.Marshal(localized)
	if err != nil {
		t.Fatalf("marshal localized: %v", err)
	}
	var roundTrip i18n.Text
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got := roundTrip.Resolve("en"); got != "About" {
		t.Fatalf("round trip resolve = %q", got)
	}

	plainOut, err := json.Marshal(i18n.Plain("hello"))
	if err != nil {
		t.Fatalf("marshal plain: %v", err)
	}
	if string(plainOut) != `"hello"` {
		t.Fatalf("plain marshal = %s", plainOut)
	}
}

func TestTextSetPromotesPlain(t *testing.T) {
	text := i18n.Plain("Welcome")
	text.Set("hi", "स्वागत")
	if text.Kind() != i18n.KindLocalized {
		t.Fatalf("expected localized after Set")
	}
	if got := text.Resolve("en"); got != "Welcome" {
		t.Fatalf("default variant lost: %q", got)
	}
	if got := text.Resolve("hi"); got != "स्वागत" {
		t.Fatalf("hi variant = %q", got)
	}
}

func TestColumnsRoundTrip(t *testing.T) {
	cols := i18n.ColumnsOf(i18n.Localized(map[string]string{"en": "Blog", "sa": "लेखाः"}))
	if cols.EN != "Blog" || cols.SA != "लेखाः" || cols.HI != "" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	if got := cols.Resolve("hi"); got != "Blog" {
		t.Fatalf("columns resolve = %q", got)
	}

	plainCols := i18n.ColumnsOf(i18n.Plain("Contact"))
	if plainCols.EN != "Contact" {
		t.Fatalf("plain value should land in the default column: %+v", plainCols)
	}
}

func TestRequireDefault(t *testing.T) {
	if err := i18n.RequireDefault(i18n.Localized(map[string]string{"hi": "only hindi"})); err == nil {
		t.Fatal("expected error when default variant missing")
	}
	if err := i18n.RequireDefault(i18n.Plain("fine")); err != nil {
		t.Fatalf("plain value should satisfy default requirement: %v", err)
	}
}
