package i18n_test

import (
	"testing"

	"balearic_charter/internal/i18n"
)

func TestResolve_ExactLocale(t *testing.T) {
	f := i18n.LocalizedField{"es": "B", "en": "A"}
	if got := i18n.Resolve(f, "es"); got != "B" {
		t.Fatalf("got %q, want B", got)
	}
}

func TestResolve_FallsBackToEnglish(t *testing.T) {
	f := i18n.LocalizedField{"en": "A"}
	if got := i18n.Resolve(f, "es"); got != "A" {
		t.Fatalf("got %q, want A", got)
	}
}

func TestResolve_NilField(t *testing.T) {
	if got := i18n.Resolve(nil, "en"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestResolve_ExplicitEmptyWins(t *testing.T) {
	// A cleared translation is still a translation: no fallback.
	f := i18n.LocalizedField{"es": "", "en": "A"}
	if got := i18n.Resolve(f, "es"); got != "" {
		t.Fatalf("got %q, want empty (explicitly cleared)", got)
	}
}

func TestResolve_LastResortIsDeterministic(t *testing.T) {
	f := i18n.LocalizedField{"fr": "C", "de": "D"}
	// neither requested nor fallback present; smallest key wins
	for i := 0; i < 10; i++ {
		if got := i18n.Resolve(f, "es"); got != "D" {
			t.Fatalf("got %q, want D (de sorts first)", got)
		}
	}
}

func TestResolveWithFallback_CustomFallback(t *testing.T) {
	f := i18n.LocalizedField{"de": "D"}
	if got := i18n.ResolveWithFallback(f, "es", "de"); got != "D" {
		t.Fatalf("got %q, want D", got)
	}
}

func TestResolveWithLegacy_StepOrder(t *testing.T) {
	legacy := i18n.LegacyText{
		PerLocale: map[string]string{"en": "legacy-en", "es": "legacy-es"},
		Generic:   "legacy-generic",
	}

	// 1: localized field wins when non-empty
	f := i18n.LocalizedField{"es": "localized-es"}
	if got := i18n.ResolveWithLegacy(f, legacy, "es"); got != "localized-es" {
		t.Fatalf("step 1: got %q", got)
	}

	// 2: empty resolution falls through to the locale's legacy column
	if got := i18n.ResolveWithLegacy(nil, legacy, "es"); got != "legacy-es" {
		t.Fatalf("step 2: got %q", got)
	}

	// 3: missing locale column falls through to legacy English
	legacyNoES := i18n.LegacyText{
		PerLocale: map[string]string{"en": "legacy-en"},
		Generic:   "legacy-generic",
	}
	if got := i18n.ResolveWithLegacy(nil, legacyNoES, "es"); got != "legacy-en" {
		t.Fatalf("step 3: got %q", got)
	}

	// 4: only the untagged column left
	legacyGeneric := i18n.LegacyText{Generic: "legacy-generic"}
	if got := i18n.ResolveWithLegacy(nil, legacyGeneric, "es"); got != "legacy-generic" {
		t.Fatalf("step 4: got %q", got)
	}

	// 5: nothing anywhere
	if got := i18n.ResolveWithLegacy(nil, i18n.LegacyText{}, "es"); got != "" {
		t.Fatalf("step 5: got %q, want empty", got)
	}
}

func TestResolveWithLegacy_ClearedLocalizedFallsThrough(t *testing.T) {
	// An explicitly cleared translation is not a valid resolution for
	// display; the legacy chain still applies.
	f := i18n.LocalizedField{"es": "   "}
	legacy := i18n.LegacyText{PerLocale: map[string]string{"es": "legacy-es"}}
	if got := i18n.ResolveWithLegacy(f, legacy, "es"); got != "legacy-es" {
		t.Fatalf("got %q, want legacy-es", got)
	}
}

func TestSupported(t *testing.T) {
	for _, l := range []string{"en", "es", "de"} {
		if !i18n.Supported(l) {
			t.Fatalf("%s should be supported", l)
		}
	}
	if i18n.Supported("fr") || i18n.Supported("") {
		t.Fatalf("unexpected locale accepted")
	}
}
