// Package duration models elapsed time the way reldate renders it: calendar
// units with fixed approximations (30-day months, 365-day years), a threshold
// policy for choosing the display unit, and a human-readable parser for
// duration and relative-time input.
//
// Supported parser units (case-insensitive, singular or plural):
//   - ns, us/µs, ms
//   - s, sec, second
//   - m, min, minute
//   - h, hr, hour
//   - d, day
//   - w, wk, week
//   - mo, month (30 days)
//   - y, yr, year (365 days)
//
// Examples:
//   - "30 days"
//   - "1w2d12h"
//   - "1.5h"
//   - "-2 weeks"
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Day represents 24 hours.
	Day = 24 * time.Hour
	// Week represents 7 days.
	Week = 7 * Day
	// Month represents 30 days (approximate).
	Month = 30 * Day
	// Year represents 365 days (approximate).
	Year = 365 * Day
)

// ErrInvalidDuration is returned when a duration string cannot be parsed.
var ErrInvalidDuration = errors.New("duration: invalid duration")

// parseUnits maps every accepted unit spelling to its length.
var parseUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nano": time.Nanosecond, "nanos": time.Nanosecond,
	"nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,

	"us": time.Microsecond, "µs": time.Microsecond, "micro": time.Microsecond, "micros": time.Microsecond,
	"microsecond": time.Microsecond, "microseconds": time.Microsecond,

	"ms": time.Millisecond, "milli": time.Millisecond, "millis": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,

	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,

	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,

	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
	"hour": time.Hour, "hours": time.Hour,

	"d": Day, "day": Day, "days": Day,

	"w": Week, "wk": Week, "wks": Week, "week": Week, "weeks": Week,

	"mo": Month, "mos": Month, "month": Month, "months": Month,

	"y": Year, "yr": Year, "yrs": Year, "year": Year, "years": Year,
}

// componentPattern matches one "<number><unit>" component with optional
// whitespace between the number and the unit.
var componentPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([a-zµ]+)`)

// Parse parses a human-readable duration string such as "2d12h" or
// "3 weeks 2 days". A leading "-" negates the result. Components may be
// separated by whitespace; anything else is rejected.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}

	negative := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		negative = true
		s = strings.TrimSpace(rest)
	}

	matches := componentPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	var total float64
	last := 0
	for _, m := range matches {
		if strings.TrimSpace(s[last:m[0]]) != "" {
			return 0, fmt.Errorf("%w: unexpected %q", ErrInvalidDuration, s[last:m[0]])
		}
		last = m[1]

		value, err := strconv.ParseFloat(s[m[2]:m[3]], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
		}
		unit, ok := parseUnits[strings.ToLower(s[m[4]:m[5]])]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, s[m[4]:m[5]])
		}
		total += value * float64(unit)
	}
	if strings.TrimSpace(s[last:]) != "" {
		return 0, fmt.Errorf("%w: unexpected %q", ErrInvalidDuration, s[last:])
	}
	if total > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidDuration, s)
	}

	d := time.Duration(total)
	if negative {
		d = -d
	}
	return d, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
// Use only for compile-time constants.
func MustParse(s string) time.Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// formatUnits lists the components Format emits, largest first.
var formatUnits = []struct {
	size   time.Duration
	suffix string
}{
	{Year, "y"},
	{Month, "mo"},
	{Week, "w"},
	{Day, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "µs"},
	{time.Nanosecond, "ns"},
}

// Format converts a duration to a compact string using the largest units
// first. Zero components are omitted: 36h becomes "1d12h".
// The output is accepted by Parse.
func Format(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	for _, u := range formatUnits {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.suffix)
			d -= n * u.size
		}
	}
	return b.String()
}
