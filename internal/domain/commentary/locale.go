package commentary

import "strings"

// DefaultLocale renders without a path prefix on the web front; the rest get
// one.
const DefaultLocale = "fr"

var supportedLocales = []string{DefaultLocale, "en", "es", "ar"}

func Locales() []string {
	out := make([]string, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

func IsSupportedLocale(locale string) bool {
	locale = strings.ToLower(strings.TrimSpace(locale))
	for _, candidate := range supportedLocales {
		if candidate == locale {
			return true
		}
	}
	return false
}

// NormalizeLocale lowercases and falls back to the default for empty input.
// Unknown locales are returned as-is; callers decide whether to reject.
func NormalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return DefaultLocale
	}
	return locale
}

// LocalePath prefixes a site path for the given locale. The default locale
// is served unprefixed.
func LocalePath(locale, path string) string {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	locale = NormalizeLocale(locale)
	if locale == DefaultLocale {
		return path
	}
	return "/" + locale + path
}
