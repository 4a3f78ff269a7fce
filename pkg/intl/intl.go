// Package intl declares the locale-formatting primitives reldate renders
// with: number, unit, relative-time, duration, plural and date/time
// formatters. The Toolkit groups constructors for them and doubles as a
// capability descriptor, since optional primitives are left nil.
package intl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/jmylchreest/reldate/pkg/duration"
)

// ErrMissingPrimitive is returned when a mandatory Toolkit constructor is nil.
var ErrMissingPrimitive = errors.New("intl: missing formatting primitive")

// Width is the display width of a formatted unit.
type Width string

const (
	WidthLong   Width = "long"
	WidthShort  Width = "short"
	WidthNarrow Width = "narrow"
)

// Numeric selects whether relative-time formatting may use idiomatic words
// ("tomorrow") instead of numbers.
type Numeric string

const (
	NumericAlways Numeric = "always"
	NumericAuto   Numeric = "auto"
)

// PartType classifies a token of a formatted string.
type PartType string

const (
	PartInteger PartType = "integer"
	PartLiteral PartType = "literal"
)

// Part is one token of a formatted string.
type Part struct {
	Type  PartType `json:"type"`
	Value string   `json:"value"`
}

// Join concatenates the values of parts.
func Join(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Value)
	}
	return b.String()
}

// IntegerPart returns the first integer token of parts.
func IntegerPart(parts []Part) (Part, bool) {
	for _, p := range parts {
		if p.Type == PartInteger {
			return p, true
		}
	}
	return Part{}, false
}

// PluralCategory is a CLDR plural category tag.
type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// Fields is a multi-field duration, e.g. {day: 1, hour: 2}.
type Fields map[duration.Unit]int64

// NumberFormatter formats integers with locale digits and grouping.
type NumberFormatter interface {
	Format(n int64) string
}

// UnitFormatter formats an integer together with a fixed unit ("1d").
type UnitFormatter interface {
	FormatToParts(n int64) []Part
}

// RelativeTimeFormatter formats a magnitude and direction as a relative time
// ("in 2 days", "2 days ago"). FormatToParts returns errors.ErrUnsupported
// when the formatter cannot expose its tokens.
type RelativeTimeFormatter interface {
	Format(value int64, dir duration.Direction, unit duration.Unit) string
	FormatToParts(value int64, dir duration.Direction, unit duration.Unit) ([]Part, error)
}

// DurationFormatter formats a duration without any directional wording.
type DurationFormatter interface {
	Format(fields Fields) string
}

// PluralRules selects the cardinal plural category of an integer.
type PluralRules interface {
	Select(n int64) PluralCategory
}

// DateTimeFormatter renders the weekday and the clock time of an instant.
type DateTimeFormatter interface {
	Weekday(t time.Time, width Width) string
	Clock(t time.Time) string
}

// Toolkit holds constructors for the formatting primitives, keyed by locale
// and options. Number, Relative and DateTime are mandatory; Unit, Plural and
// Duration are optional capabilities and may be nil. Constructors return
// errors.ErrUnsupported when a capability exists but not for the locale.
type Toolkit struct {
	Number   func(tag language.Tag) (NumberFormatter, error)
	Relative func(tag language.Tag, width Width, numeric Numeric) (RelativeTimeFormatter, error)
	DateTime func(tag language.Tag) (DateTimeFormatter, error)

	Unit     func(tag language.Tag, unit duration.Unit, width Width) (UnitFormatter, error)
	Plural   func(tag language.Tag) (PluralRules, error)
	Duration func(tag language.Tag, width Width) (DurationFormatter, error)
}

// Capabilities lists the optional primitives tk provides.
func (tk Toolkit) Capabilities() []string {
	var caps []string
	if tk.Unit != nil {
		caps = append(caps, "unit")
	}
	if tk.Plural != nil {
		caps = append(caps, "plural")
	}
	if tk.Duration != nil {
		caps = append(caps, "duration")
	}
	return caps
}

// Validate reports a missing mandatory constructor.
func (tk Toolkit) Validate() error {
	switch {
	case tk.Number == nil:
		return fmt.Errorf("%w: number formatter", ErrMissingPrimitive)
	case tk.Relative == nil:
		return fmt.Errorf("%w: relative-time formatter", ErrMissingPrimitive)
	case tk.DateTime == nil:
		return fmt.Errorf("%w: date-time formatter", ErrMissingPrimitive)
	}
	return nil
}
