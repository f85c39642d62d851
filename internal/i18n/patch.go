package i18n

import "strings"

// BuildPatch returns the field as it should be persisted after editing
// one locale. A nil or blank newValue removes the locale's entry; all
// other locales are carried over untouched, so saving one translation
// can never erase another. When nothing remains the result is nil, not
// an empty map, signalling "no localized override exists". current is
// never mutated.
func BuildPatch(current LocalizedField, locale string, newValue *string) LocalizedField {
	trimmed := ""
	if newValue != nil {
		trimmed = strings.TrimSpace(*newValue)
	}

	if trimmed == "" {
		if current == nil {
			return nil
		}
		out := make(LocalizedField, len(current))
		for k, v := range current {
			if k == locale {
				continue
			}
			out[k] = v
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}

	out := make(LocalizedField, len(current)+1)
	for k, v := range current {
		out[k] = v
	}
	out[locale] = trimmed
	return out
}
