package cldr

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

// ErrInvalidBundle is returned for locale data that is malformed or
// incomplete.
var ErrInvalidBundle = errors.New("cldr: invalid locale bundle")

// placeholder marks the integer in every pattern.
const placeholder = "{0}"

type pluralPatterns map[intl.PluralCategory]string

// pick returns the pattern for category, falling back to "other".
func (p pluralPatterns) pick(category intl.PluralCategory) (string, bool) {
	if s, ok := p[category]; ok {
		return s, true
	}
	s, ok := p[intl.PluralOther]
	return s, ok
}

type relativeUnit struct {
	Future pluralPatterns   `yaml:"future"`
	Past   pluralPatterns   `yaml:"past"`
	Idioms map[int64]string `yaml:"idioms"`
}

func (r relativeUnit) patterns(dir duration.Direction) pluralPatterns {
	if dir.Past() {
		return r.Past
	}
	return r.Future
}

type clock struct {
	Layout     string            `yaml:"layout"`
	Regions    map[string]string `yaml:"regions"`
	DayPeriods []string          `yaml:"day_periods"`
}

// bundle is the locale data of one language, decoded from data/*.yaml.
type bundle struct {
	Locale        string                                          `yaml:"locale"`
	Weekdays      map[intl.Width][]string                         `yaml:"weekdays"`
	Clock         clock                                           `yaml:"clock"`
	ListSeparator map[intl.Width]string                           `yaml:"list_separator"`
	Units         map[intl.Width]map[duration.Unit]pluralPatterns `yaml:"units"`
	Relative      map[intl.Width]map[duration.Unit]relativeUnit   `yaml:"relative"`
}

func parseBundle(data []byte) (*bundle, error) {
	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// validate checks the data every formatter relies on: seven long weekday
// names, a clock layout and a long future/past "other" pattern per unit.
func (b *bundle) validate() error {
	if b.Locale == "" {
		return fmt.Errorf("%w: missing locale", ErrInvalidBundle)
	}
	if len(b.Weekdays[intl.WidthLong]) != 7 {
		return fmt.Errorf("%w: %s: want 7 long weekday names", ErrInvalidBundle, b.Locale)
	}
	if b.Clock.Layout == "" {
		return fmt.Errorf("%w: %s: missing clock layout", ErrInvalidBundle, b.Locale)
	}
	for _, u := range duration.Units {
		rel, ok := b.Relative[intl.WidthLong][u]
		if !ok {
			return fmt.Errorf("%w: %s: missing long relative data for %s", ErrInvalidBundle, b.Locale, u)
		}
		if _, ok := rel.Future[intl.PluralOther]; !ok {
			return fmt.Errorf("%w: %s: missing future %s pattern", ErrInvalidBundle, b.Locale, u)
		}
		if _, ok := rel.Past[intl.PluralOther]; !ok {
			return fmt.Errorf("%w: %s: missing past %s pattern", ErrInvalidBundle, b.Locale, u)
		}
	}
	for width, units := range b.Units {
		for u := range units {
			if !u.Valid() {
				return fmt.Errorf("%w: %s: unknown %s unit %q", ErrInvalidBundle, b.Locale, width, u)
			}
		}
	}
	return nil
}

// widthChain returns w followed by the wider widths its data may fall back to.
func widthChain(w intl.Width) []intl.Width {
	switch w {
	case intl.WidthNarrow:
		return []intl.Width{intl.WidthNarrow, intl.WidthShort, intl.WidthLong}
	case intl.WidthShort:
		return []intl.Width{intl.WidthShort, intl.WidthLong}
	default:
		return []intl.Width{intl.WidthLong}
	}
}

func (b *bundle) relativePatterns(w intl.Width, u duration.Unit, dir duration.Direction) pluralPatterns {
	for _, width := range widthChain(w) {
		if rel, ok := b.Relative[width][u]; ok {
			if p := rel.patterns(dir); len(p) > 0 {
				return p
			}
		}
	}
	return nil
}

func (b *bundle) idiom(w intl.Width, u duration.Unit, signed int64) (string, bool) {
	for _, width := range widthChain(w) {
		if s, ok := b.Relative[width][u].Idioms[signed]; ok {
			return s, true
		}
	}
	return "", false
}

func (b *bundle) hasUnits() bool {
	return len(b.Units) > 0
}

func (b *bundle) unitPatterns(w intl.Width, u duration.Unit) pluralPatterns {
	for _, width := range widthChain(w) {
		if p, ok := b.Units[width][u]; ok {
			return p
		}
	}
	return nil
}

func (b *bundle) weekday(w intl.Width, day int) string {
	for _, width := range widthChain(w) {
		if names := b.Weekdays[width]; len(names) == 7 {
			return names[day]
		}
	}
	return ""
}

func (b *bundle) listSeparator(w intl.Width) string {
	for _, width := range widthChain(w) {
		if sep, ok := b.ListSeparator[width]; ok {
			return sep
		}
	}
	return ", "
}

// splitPattern substitutes number into pattern and tokenizes the result.
// Patterns without a placeholder yield a single literal.
func splitPattern(pattern, number string) []intl.Part {
	before, after, found := strings.Cut(pattern, placeholder)
	if !found {
		return []intl.Part{{Type: intl.PartLiteral, Value: pattern}}
	}
	parts := make([]intl.Part, 0, 3)
	if before != "" {
		parts = append(parts, intl.Part{Type: intl.PartLiteral, Value: before})
	}
	parts = append(parts, intl.Part{Type: intl.PartInteger, Value: number})
	if after != "" {
		parts = append(parts, intl.Part{Type: intl.PartLiteral, Value: after})
	}
	return parts
}
