package durfmt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/reldate/pkg/duration"
)

// Overrides maps a language subtag and unit to a hand-written compact
// template, for languages where extracting one from the relative-time
// primitive gives the wrong abbreviation.
type Overrides map[string]map[duration.Unit]Template

// DefaultOverrides returns a fresh copy of the built-in table.
func DefaultOverrides() Overrides {
	return Overrides{
		"he": {
			duration.UnitDay:    MustParseTemplate("{number} י'"),
			duration.UnitWeek:   MustParseTemplate("{number} שב'"),
			duration.UnitMonth:  MustParseTemplate("{number} חו'"),
			duration.UnitYear:   MustParseTemplate("{number} שָּׁנָ'"),
			duration.UnitHour:   MustParseTemplate("{number} שע'"),
			duration.UnitMinute: MustParseTemplate("{number} דק'"),
			duration.UnitSecond: MustParseTemplate("{number} שְׁנִ'"),
		},
		"ar": {
			duration.UnitMonth: MustParseTemplate("{number}م"),
		},
		"ars": {
			duration.UnitYear:  MustParseTemplate("{number}سنة"),
			duration.UnitMonth: MustParseTemplate("{number}م"),
		},
		"syr": {
			duration.UnitDay: MustParseTemplate("{number}ܝܘܡܐ"),
		},
	}
}

// ParseOverrides builds a table from language -> unit -> template strings,
// as found in configuration files.
func ParseOverrides(raw map[string]map[string]string) (Overrides, error) {
	o := make(Overrides, len(raw))
	for lang, units := range raw {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language", ErrInvalidTemplate)
		}
		for name, s := range units {
			unit, err := duration.ParseUnit(strings.ToLower(strings.TrimSpace(name)))
			if err != nil {
				return nil, fmt.Errorf("override %s.%s: %w", lang, name, err)
			}
			t, err := ParseTemplate(s)
			if err != nil {
				return nil, fmt.Errorf("override %s.%s: %w", lang, name, err)
			}
			if o[lang] == nil {
				o[lang] = make(map[duration.Unit]Template)
			}
			o[lang][unit] = t
		}
	}
	return o, nil
}

// Merge returns a new table holding o with other layered on top, unit by unit.
func (o Overrides) Merge(other Overrides) Overrides {
	merged := make(Overrides, len(o)+len(other))
	for _, table := range []Overrides{o, other} {
		for lang, units := range table {
			if merged[lang] == nil {
				merged[lang] = make(map[duration.Unit]Template, len(units))
			}
			for unit, t := range units {
				merged[lang][unit] = t
			}
		}
	}
	return merged
}

// Lookup returns the template for lang and unit.
func (o Overrides) Lookup(lang string, unit duration.Unit) (Template, bool) {
	t, ok := o[lang][unit]
	return t, ok
}

// Languages lists the languages with at least one template, sorted.
func (o Overrides) Languages() []string {
	langs := make([]string, 0, len(o))
	for lang, units := range o {
		if len(units) > 0 {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}
