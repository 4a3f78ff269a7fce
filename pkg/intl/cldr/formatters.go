package cldr

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

type numberFormatter struct {
	printer *message.Printer
}

func newNumberFormatter(tag language.Tag) numberFormatter {
	return numberFormatter{printer: message.NewPrinter(tag)}
}

func (f numberFormatter) Format(n int64) string {
	return f.printer.Sprintf("%d", n)
}

type pluralRules struct {
	tag language.Tag
}

func (r pluralRules) Select(n int64) intl.PluralCategory {
	if n < 0 {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	switch plural.Cardinal.MatchPlural(r.tag, int(n), 0, 0, 0, 0) {
	case plural.Zero:
		return intl.PluralZero
	case plural.One:
		return intl.PluralOne
	case plural.Two:
		return intl.PluralTwo
	case plural.Few:
		return intl.PluralFew
	case plural.Many:
		return intl.PluralMany
	default:
		return intl.PluralOther
	}
}

type relativeFormatter struct {
	bundle  *bundle
	width   intl.Width
	numeric intl.Numeric
	number  numberFormatter
	plural  pluralRules
}

func (f *relativeFormatter) Format(value int64, dir duration.Direction, unit duration.Unit) string {
	parts, err := f.FormatToParts(value, dir, unit)
	if err != nil {
		return fmt.Sprintf("%d %s", value*int64(dir), unit)
	}
	return intl.Join(parts)
}

func (f *relativeFormatter) FormatToParts(value int64, dir duration.Direction, unit duration.Unit) ([]intl.Part, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("relative time in %q: %w", unit, duration.ErrInvalidUnit)
	}
	if value < 0 {
		value = -value
	}

	if f.numeric == intl.NumericAuto {
		if s, ok := f.bundle.idiom(f.width, unit, value*int64(dir)); ok {
			return []intl.Part{{Type: intl.PartLiteral, Value: s}}, nil
		}
	}

	pattern, ok := f.bundle.relativePatterns(f.width, unit, dir).pick(f.plural.Select(value))
	if !ok {
		return nil, fmt.Errorf("%s relative %s for %s: %w", f.width, unit, f.bundle.Locale, ErrInvalidBundle)
	}
	return splitPattern(pattern, f.number.Format(value)), nil
}

type unitFormatter struct {
	patterns pluralPatterns
	number   numberFormatter
	plural   pluralRules
}

func (f *unitFormatter) FormatToParts(n int64) []intl.Part {
	pattern, ok := f.patterns.pick(f.plural.Select(n))
	if !ok {
		return []intl.Part{{Type: intl.PartInteger, Value: f.number.Format(n)}}
	}
	return splitPattern(pattern, f.number.Format(n))
}

type durationFormatter struct {
	bundle *bundle
	width  intl.Width
	number numberFormatter
	plural pluralRules
}

// Format renders the non-zero fields coarse to fine. An all-zero duration is
// rendered in seconds.
func (f *durationFormatter) Format(fields intl.Fields) string {
	var items []string
	for _, u := range duration.Units {
		n, ok := fields[u]
		if !ok || n == 0 {
			continue
		}
		items = append(items, f.field(u, n))
	}
	if len(items) == 0 {
		return f.field(duration.UnitSecond, 0)
	}
	return strings.Join(items, f.bundle.listSeparator(f.width))
}

func (f *durationFormatter) field(u duration.Unit, n int64) string {
	pattern, ok := f.bundle.unitPatterns(f.width, u).pick(f.plural.Select(n))
	if !ok {
		return fmt.Sprintf("%s %s", f.number.Format(n), u)
	}
	return intl.Join(splitPattern(pattern, f.number.Format(n)))
}

type dateTimeFormatter struct {
	bundle *bundle
	layout string
}

func (f *dateTimeFormatter) Weekday(t time.Time, width intl.Width) string {
	return f.bundle.weekday(width, int(t.Weekday()))
}

// Clock formats t with the locale's short time layout. Day periods, when the
// bundle names them, replace Go's AM and PM.
func (f *dateTimeFormatter) Clock(t time.Time) string {
	s := t.Format(f.layout)
	if periods := f.bundle.Clock.DayPeriods; len(periods) == 2 {
		s = strings.NewReplacer("AM", periods[0], "PM", periods[1]).Replace(s)
	}
	return s
}
