package commentary

import "testing"

func TestClockSeconds(t *testing.T) {
	cases := []struct {
		display string
		want    int
	}{
		{"45'", 2700},
		{"45'+2", 2820},
		{"90'+5", 5700},
		{"1'", 60},
		{"HT", 2700},
		{"ht", 2700},
		{"FT", 5400},
		{" 23' ", 1380},
		{"", 0},
		{"Pre", 0},
		{"45:00", 0},
		{"abc'", 0},
	}

	for _, tc := range cases {
		t.Run(tc.display, func(t *testing.T) {
			if got := ClockSeconds(tc.display); got != tc.want {
				t.Fatalf("ClockSeconds(%q) = %d, want %d", tc.display, got, tc.want)
			}
		})
	}
}

func TestDeriveEventID_Deterministic(t *testing.T) {
	first := DeriveEventID("732178", "fr", 1380, "But !")
	second := DeriveEventID("732178", "fr", 1380, "But !")
	if first != second {
		t.Fatalf("same input produced different ids: %s vs %s", first, second)
	}

	changed := DeriveEventID("732178", "fr", 1380, "But ! (corrigé)")
	if changed == first {
		t.Fatalf("different text produced identical id %s", first)
	}
	if DeriveEventID("732178", "en", 1380, "But !") == first {
		t.Fatal("locale must participate in the derived id")
	}
}

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale(""); got != DefaultLocale {
		t.Fatalf("empty locale normalized to %q, want %q", got, DefaultLocale)
	}
	if got := NormalizeLocale(" EN "); got != "en" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if !IsSupportedLocale("ar") {
		t.Fatal("ar should be supported")
	}
	if IsSupportedLocale("de") {
		t.Fatal("de should not be supported")
	}
}

func TestLocalePath(t *testing.T) {
	if got := LocalePath("fr", "/can-2025/match/732178"); got != "/can-2025/match/732178" {
		t.Fatalf("default locale must stay unprefixed, got %q", got)
	}
	if got := LocalePath("ar", "can-2025/match/732178"); got != "/ar/can-2025/match/732178" {
		t.Fatalf("unexpected prefixed path: %q", got)
	}
}
