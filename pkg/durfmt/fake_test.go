package durfmt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

type fakeNumber struct{}

func (fakeNumber) Format(n int64) string { return strconv.FormatInt(n, 10) }

// fakeRelative renders "in N units" / "N units ago". Magnitudes listed in
// words render without an integer token, idioms apply to NumericAuto only.
type fakeRelative struct {
	numeric intl.Numeric
	words   map[int64][2]string // magnitude -> {future, past}
	idioms  map[int64]string    // signed value
}

func (f *fakeRelative) Format(value int64, dir duration.Direction, unit duration.Unit) string {
	parts, _ := f.FormatToParts(value, dir, unit)
	return intl.Join(parts)
}

func (f *fakeRelative) FormatToParts(value int64, dir duration.Direction, unit duration.Unit) ([]intl.Part, error) {
	if f.numeric == intl.NumericAuto {
		if s, ok := f.idioms[value*int64(dir)]; ok {
			return []intl.Part{{Type: intl.PartLiteral, Value: s}}, nil
		}
	}
	if w, ok := f.words[value]; ok {
		if dir.Past() {
			return []intl.Part{{Type: intl.PartLiteral, Value: w[1]}}, nil
		}
		return []intl.Part{{Type: intl.PartLiteral, Value: w[0]}}, nil
	}
	n := intl.Part{Type: intl.PartInteger, Value: strconv.FormatInt(value, 10)}
	name := unit.Plural()
	if value == 1 {
		name = unit.String()
	}
	if dir.Past() {
		return []intl.Part{n, {Type: intl.PartLiteral, Value: " " + name + " ago"}}, nil
	}
	return []intl.Part{{Type: intl.PartLiteral, Value: "in "}, n, {Type: intl.PartLiteral, Value: " " + name}}, nil
}

type fakeUnit struct {
	suffix string
}

func (f fakeUnit) FormatToParts(n int64) []intl.Part {
	return []intl.Part{
		{Type: intl.PartInteger, Value: strconv.FormatInt(n, 10)},
		{Type: intl.PartLiteral, Value: f.suffix},
	}
}

type fakePlural struct{}

func (fakePlural) Select(n int64) intl.PluralCategory {
	switch n {
	case 1:
		return intl.PluralOne
	case 2:
		return intl.PluralTwo
	default:
		return intl.PluralOther
	}
}

var durationSuffixes = map[intl.Width]map[duration.Unit]string{
	intl.WidthNarrow: {duration.UnitDay: "d", duration.UnitHour: "h"},
	intl.WidthShort:  {duration.UnitDay: " day", duration.UnitHour: " hr"},
	intl.WidthLong:   {duration.UnitDay: " days", duration.UnitHour: " hours"},
}

type fakeDuration struct {
	width intl.Width
}

func (f fakeDuration) Format(fields intl.Fields) string {
	for u, n := range fields {
		return fmt.Sprintf("%d%s", n, durationSuffixes[f.width][u])
	}
	return ""
}

type fakeDateTime struct{}

func (fakeDateTime) Weekday(t time.Time, _ intl.Width) string { return t.Weekday().String() }
func (fakeDateTime) Clock(t time.Time) string { return t.Format("15:04") }

// toolkitCalls counts constructor calls of a fake toolkit.
type toolkitCalls struct {
	unit     int
	duration int
}

// newFakeToolkit returns a toolkit with only the mandatory primitives.
func newFakeToolkit(rel fakeRelative) intl.Toolkit {
	return intl.Toolkit{
		Number: func(language.Tag) (intl.NumberFormatter, error) { return fakeNumber{}, nil },
		Relative: func(_ language.Tag, _ intl.Width, numeric intl.Numeric) (intl.RelativeTimeFormatter, error) {
			f := rel
			f.numeric = numeric
			return &f, nil
		},
		DateTime: func(language.Tag) (intl.DateTimeFormatter, error) { return fakeDateTime{}, nil },
	}
}

func withUnit(tk intl.Toolkit, calls *toolkitCalls, suffix string) intl.Toolkit {
	tk.Unit = func(language.Tag, duration.Unit, intl.Width) (intl.UnitFormatter, error) {
		calls.unit++
		return fakeUnit{suffix: suffix}, nil
	}
	return tk
}

func withPlural(tk intl.Toolkit) intl.Toolkit {
	tk.Plural = func(language.Tag) (intl.PluralRules, error) { return fakePlural{}, nil }
	return tk
}

func withDuration(tk intl.Toolkit, calls *toolkitCalls, supported bool) intl.Toolkit {
	tk.Duration = func(_ language.Tag, width intl.Width) (intl.DurationFormatter, error) {
		calls.duration++
		if !supported {
			return nil, errors.ErrUnsupported
		}
		return fakeDuration{width: width}, nil
	}
	return tk
}
