// Package durfmt renders a single-unit duration as a localized,
// duration-only phrase ("2 days", "2 י'") from whatever intl primitives a
// toolkit provides.
package durfmt

import (
	"strings"
	"time"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

// Style is the verbosity of a rendered phrase.
type Style string

const (
	StyleCompact Style = "compact"
	StyleShort   Style = "short"
	StyleLong    Style = "long"
	StyleLonger  Style = "longer"
)

// Styles lists every style from the terse to the verbose.
var Styles = []Style{StyleCompact, StyleShort, StyleLong, StyleLonger}

// ParseStyle parses a style name. Unknown names yield StyleShort.
func ParseStyle(s string) Style {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleCompact, StyleLong, StyleLonger:
		return st
	default:
		return StyleShort
	}
}

// Width is the display width used for the duration phrase: narrow for
// compact, short otherwise.
func (s Style) Width() intl.Width {
	if s == StyleCompact {
		return intl.WidthNarrow
	}
	return intl.WidthShort
}

// Directional reports whether the style renders direction words ("in", "ago")
// instead of a sign prefix.
func (s Style) Directional() bool {
	return s == StyleLong || s == StyleLonger
}

func (s Style) String() string {
	return string(s)
}

// Selection is the unit choice for one delta. Secondary is only set for
// StyleLonger.
type Selection struct {
	Primary   duration.Span
	Secondary *duration.Span
}

// Select picks the display units of d for style. StyleLonger cascades, every
// other style applies threshold t.
func Select(d time.Duration, style Style, t duration.Threshold) Selection {
	return SelectElapsed(duration.NewElapsed(d), style, t)
}

// SelectElapsed is Select over precomputed counts.
func SelectElapsed(e duration.Elapsed, style Style, t duration.Threshold) Selection {
	if style == StyleLonger {
		primary, secondary := e.Cascade()
		return Selection{Primary: primary, Secondary: secondary}
	}
	return Selection{Primary: e.Threshold(t)}
}
