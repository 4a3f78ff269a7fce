// Package weekday holds hand-made weekday abbreviations for locales whose
// short weekday names stay ambiguous when truncated.
package weekday

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// abbreviations are indexed by time.Weekday, Sunday first.
var abbreviations = map[string][7]string{
	"gv":    {"Jed", "Jel", "Jem", "Jrc", "Jrd", "Jeh", "Jes"},
	"mg":    {"Alh", "Alt", "Tal", "Alr", "Alk", "Zom", "Asb"},
	"my":    {"တနဂ", "တနလ", "အင်", "ဗုဒ", "ကြာ", "သော", "စနေ"},
	"oc":    {"dimg", "dilu", "dima", "dimc", "dijò", "divn", "diss"},
	"oc-FR": {"dimg", "dilu", "dima", "dimc", "dijò", "divn", "diss"},
	"oc-ES": {"dimg", "dilu", "dima", "dimc", "dijò", "divn", "diss"},
	"sw":    {"Jpl", "Jtt", "Jnn", "Jtn", "Alh", "Iju", "Jms"},
	"ur":    {"اتو", "پیر", "منگ", "بدھ", "جمر", "جمع", "ہفت"},
	"ur-IN": {"اتو", "پیر", "منگ", "بدھ", "جمر", "جمع", "ہفت"},
	"ur-PK": {"اتو", "پیر", "منگ", "بدھ", "جمر", "جمع", "ہفت"},
	"pa-PK": {"اتو", "پیر", "منگ", "بُد", "جمر", "جمع", "ہفت"},
	"yo":    {"Àìk", "Aj", "Ìsẹ", "Ọjr", "Ọjb", "Ẹt", "Àbm"},
	"za":    {"ngo", "sit", "ngh", "sam", "seq", "haj", "rok"},
	"za-CN": {"ngo", "sit", "ngh", "sam", "seq", "haj", "rok"},
}

// Locales lists the locales with custom abbreviations, sorted.
func Locales() []string {
	locales := make([]string, 0, len(abbreviations))
	for l := range abbreviations {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Lookup returns the abbreviation of day for locale. A locale without its own
// entry falls back to its language, so "sw-KE" gets the "sw" names.
func Lookup(locale string, day time.Weekday) (string, bool) {
	if day < time.Sunday || day > time.Saturday {
		return "", false
	}
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if names, ok := abbreviations[locale]; ok {
		return names[day], true
	}
	lang, _, _ := strings.Cut(locale, "-")
	if names, ok := abbreviations[strings.ToLower(lang)]; ok {
		return names[day], true
	}
	return "", false
}

// Report is the verification outcome of one locale.
type Report struct {
	Locale     string
	Names      [7]string
	Duplicates []string
	MinLength  int
	MaxLength  int
	AvgLength  float64
}

// Distinct reports whether all seven names differ.
func (r Report) Distinct() bool {
	return len(r.Duplicates) == 0
}

func (r Report) String() string {
	return fmt.Sprintf("%-8s min:%d max:%d avg:%.1f", r.Locale, r.MinLength, r.MaxLength, r.AvgLength)
}

// Verify checks every locale's names for duplicates and measures their
// length in runes. Reports are sorted by locale.
func Verify() []Report {
	reports := make([]Report, 0, len(abbreviations))
	for _, locale := range Locales() {
		reports = append(reports, verify(locale, abbreviations[locale]))
	}
	return reports
}

func verify(locale string, names [7]string) Report {
	r := Report{Locale: locale, Names: names, MinLength: -1}
	seen := make(map[string]int, len(names))
	total := 0
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			r.Duplicates = append(r.Duplicates, name)
		}
		n := utf8.RuneCountInString(name)
		total += n
		if r.MinLength < 0 || n < r.MinLength {
			r.MinLength = n
		}
		if n > r.MaxLength {
			r.MaxLength = n
		}
	}
	r.AvgLength = float64(total) / float64(len(names))
	return r
}
