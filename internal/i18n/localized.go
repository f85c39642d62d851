package i18n

import (
	"sort"
	"strings"
)

// Supported site locales; sourced from the URL path segment.
const (
	LocaleEN = "en"
	LocaleES = "es"
	LocaleDE = "de"
)

// DefaultLocale is the fallback used when a translation is missing.
const DefaultLocale = LocaleEN

// Locales lists every locale the site serves, default first.
var Locales = []string{LocaleEN, LocaleES, LocaleDE}

// Supported reports whether code is a locale the site serves.
func Supported(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}

// LocalizedField maps a locale code to a display string. An absent key
// means "fall back"; an empty string means the locale was explicitly
// cleared. A nil map is a valid field with no translations.
type LocalizedField map[string]string

// Resolve returns the display string for locale, falling back to
// DefaultLocale.
func Resolve(f LocalizedField, locale string) string {
	return ResolveWithFallback(f, locale, DefaultLocale)
}

// ResolveWithFallback resolves f for locale, then fallback, then the
// lexicographically smallest remaining key. It never fails: a nil or
// empty field resolves to "".
func ResolveWithFallback(f LocalizedField, locale, fallback string) string {
	if f == nil {
		return ""
	}
	if v, ok := f[locale]; ok {
		return v
	}
	if v, ok := f[fallback]; ok {
		return v
	}
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return f[keys[0]]
}

// LegacyText carries the pre-i18n text columns of an entity: one column
// per locale (description_en, description_es, ...) plus the original
// untagged column.
type LegacyText struct {
	PerLocale map[string]string
	Generic   string
}

// ResolveWithLegacy resolves a field against its legacy columns. Order:
// localized field, legacy column for locale, legacy English column,
// untagged column. A step only wins when it yields non-empty text, so
// an explicitly cleared translation still falls through.
func ResolveWithLegacy(f LocalizedField, legacy LegacyText, locale string) string {
	if s := strings.TrimSpace(ResolveWithFallback(f, locale, DefaultLocale)); s != "" {
		return s
	}
	if s := strings.TrimSpace(legacy.PerLocale[locale]); s != "" {
		return s
	}
	if s := strings.TrimSpace(legacy.PerLocale[DefaultLocale]); s != "" {
		return s
	}
	return strings.TrimSpace(legacy.Generic)
}

// Clone returns an independent copy of f. Clone(nil) is nil.
func Clone(f LocalizedField) LocalizedField {
	if f == nil {
		return nil
	}
	out := make(LocalizedField, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
