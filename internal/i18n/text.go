package i18n

import (
	"encoding/json"
	"strings"
)

// DefaultLocale is the fallback language applied when a requested variant is
// missing or empty.
const DefaultLocale = "en"

// SupportedLocales enumerates the language codes understood by the module.
var SupportedLocales = []string{"en", "hi", "sa"}

// Kind discriminates the two wire shapes a localized value can take.
type Kind int

const (
	// KindPlain marks a bare string with no language tagging. Legacy records
	// and generator output may emit this shape for any field.
	KindPlain Kind = iota
	// KindLocalized marks a per-locale variant map.
	KindLocalized
)

// Text is a tagged union over a plain string and a map of locale variants.
// The zero value is an empty plain string. Text values are immutable; setters
// return a new value.
type Text struct {
	kind     Kind
	plain    string
	variants map[string]string
}

// Plain wraps an untagged string.
func Plain(value string) Text {
	return Text{kind: KindPlain, plain: value}
}

// Localized builds a Text from a locale → string map. Unknown locale keys are
// preserved so round-trips do not lose data.
func Localized(variants map[string]string) Text {
	copied := make(map[string]string, len(variants))
	for code, value := range variants {
		copied[NormalizeLocale(code)] = value
	}
	return Text{kind: KindLocalized, variants: copied}
}

// Kind reports which shape the value carries.
func (t Text) Kind() Kind {
	return t.kind
}

// Resolve returns the best available string for the requested locale: the
// requested variant when non-empty, then the default locale variant, then the
// empty string. Plain values resolve to themselves for every locale. Resolve
// never fails.
func (t Text) Resolve(locale string) string {
	if t.kind == KindPlain {
		return t.plain
	}
	if value := t.variants[NormalizeLocale(locale)]; value != "" {
		return value
	}
	return t.variants[DefaultLocale]
}

// Get returns the exact variant for a locale without fallback. Plain values
// answer only for the default locale.
func (t Text) Get(locale string) string {
	code := NormalizeLocale(locale)
	if t.kind == KindPlain {
		if code == DefaultLocale {
			return t.plain
		}
		return ""
	}
	return t.variants[code]
}

// Set replaces the variant for locale in place. Setting any locale on a
// plain value promotes it to a localized map keyed by the default locale.
func (t *Text) Set(locale, value string) {
	code := NormalizeLocale(locale)
	variants := make(map[string]string, len(t.variants)+1)
	if t.kind == KindPlain {
		if t.plain != "" {
			variants[DefaultLocale] = t.plain
		}
	} else {
		for k, v := range t.variants {
			variants[k] = v
		}
	}
	variants[code] = value
	*t = Text{kind: KindLocalized, variants: variants}
}

// IsEmpty reports whether no variant carries a non-empty string.
func (t Text) IsEmpty() bool {
	if t.kind == KindPlain {
		return t.plain == ""
	}
	for _, value := range t.variants {
		if value != "" {
			return false
		}
	}
	return true
}

// Variants returns a copy of the locale map. Plain values surface as a map
// with a single default-locale entry.
func (t Text) Variants() map[string]string {
	out := make(map[string]string, len(t.variants)+1)
	if t.kind == KindPlain {
		if t.plain != "" {
			out[DefaultLocale] = t.plain
		}
		return out
	}
	for code, value := range t.variants {
		out[code] = value
	}
	return out
}

// MarshalJSON emits a bare JSON string for plain values and a locale-keyed
// object for localized values, matching the two shapes accepted on input.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.kind == KindPlain {
		return json.Marshal(t.plain)
	}
	variants := make(map[string]string, len(t.variants))
	for code, value := range t.variants {
		if value == "" {
			continue
		}
		variants[code] = value
	}
	return json.Marshal(variants)
}

// UnmarshalJSON accepts either a bare string or a locale-keyed object.
// Non-string members of an object are ignored rather than rejected, since
// externally generated content is not under our control.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = Text{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*t = Plain(plain)
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	variants := make(map[string]string, len(raw))
	for code, value := range raw {
		if str, ok := value.(string); ok {
			variants[NormalizeLocale(code)] = str
		}
	}
	*t = Text{kind: KindLocalized, variants: variants}
	return nil
}

// NormalizeLocale lowercases and trims a locale code.
func NormalizeLocale(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsSupportedLocale reports whether code is one of the configured locales.
func IsSupportedLocale(code string) bool {
	normalized := NormalizeLocale(code)
	for _, supported := range SupportedLocales {
		if supported == normalized {
			return true
		}
	}
	return false
}
