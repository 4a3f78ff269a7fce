package intl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// FallbackLocale is used when neither the caller nor the environment names a
// locale.
const FallbackLocale = "en-US"

// ErrInvalidLocale is returned for locale strings that are not BCP 47 tags.
var ErrInvalidLocale = errors.New("intl: invalid locale")

// ParseLocale parses a BCP 47 tag. POSIX spellings such as "he_IL.UTF-8" are
// accepted as well.
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(normalizePOSIX(s))
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %v", ErrInvalidLocale, s, err)
	}
	return tag, nil
}

// Language returns the base language subtag of tag ("he" for "he-IL").
func Language(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// localeEnv lists the environment variables consulted by SystemLocale, in
// priority order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// SystemLocale returns the locale configured in the process environment, or
// FallbackLocale when none is set.
func SystemLocale() string {
	for _, key := range localeEnv {
		if v := normalizePOSIX(os.Getenv(key)); v != "" {
			return v
		}
	}
	return FallbackLocale
}

// ResolveLocale picks the first non-empty requested locale, then resolver's
// answer, then FallbackLocale.
func ResolveLocale(requested []string, resolver func() string) string {
	for _, l := range requested {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	if resolver != nil {
		if l := resolver(); l != "" {
			return l
		}
	}
	return FallbackLocale
}

// normalizePOSIX turns "he_IL.UTF-8@euro" into "he-IL". The C and POSIX
// locales carry no language and map to "".
func normalizePOSIX(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
