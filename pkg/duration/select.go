package duration

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidThreshold is returned by ParseThreshold for unknown policies.
var ErrInvalidThreshold = errors.New("duration: invalid threshold")

// Elapsed holds the floor counts of every display unit for the absolute value
// of a delta. Months and years are derived from days (30 and 365), weeks from
// days (7); none of them are calendar-accurate.
type Elapsed struct {
	Direction    Direction
	Milliseconds int64
	Seconds      int64
	Minutes      int64
	Hours        int64
	Days         int64
	Weeks        int64
	Months       int64
	Years        int64
}

// NewElapsed derives the unit counts of d. Sub-millisecond precision is
// dropped.
func NewElapsed(d time.Duration) Elapsed {
	return ElapsedMillis(d.Milliseconds())
}

// ElapsedMillis derives the unit counts of a signed millisecond delta. Unlike
// time.Duration it covers spans beyond roughly 292 years.
func ElapsedMillis(ms int64) Elapsed {
	dir := DirectionFuture
	if ms < 0 {
		dir = DirectionPast
		ms = -ms
	}
	e := Elapsed{Direction: dir, Milliseconds: ms}
	e.Seconds = ms / 1000
	e.Minutes = e.Seconds / 60
	e.Hours = e.Minutes / 60
	e.Days = e.Hours / 24
	e.Weeks = e.Days / 7
	e.Months = e.Days / 30
	e.Years = e.Days / 365
	return e
}

// Count returns the floor count of u.
func (e Elapsed) Count(u Unit) int64 {
	switch u {
	case UnitSecond:
		return e.Seconds
	case UnitMinute:
		return e.Minutes
	case UnitHour:
		return e.Hours
	case UnitDay:
		return e.Days
	case UnitWeek:
		return e.Weeks
	case UnitMonth:
		return e.Months
	case UnitYear:
		return e.Years
	}
	return 0
}

// Threshold scales the natural boundary of each unit (60s, 60m, 24h, 7d, 4w,
// 12mo) before promoting to the next coarser unit. The zero value is the
// default policy, ThresholdTwice.
type Threshold uint8

const (
	ThresholdTwice Threshold = iota
	ThresholdOnce
	ThresholdOnceAndAHalf
)

// ParseThreshold accepts 1, 1.5, 2 and the words one, once, two and twice.
// An empty string selects the default.
func ParseThreshold(s string) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "2", "2.0", "two", "twice":
		return ThresholdTwice, nil
	case "1", "1.0", "one", "once":
		return ThresholdOnce, nil
	case "1.5":
		return ThresholdOnceAndAHalf, nil
	}
	return ThresholdTwice, fmt.Errorf("%w: %q (want 1, 1.5, 2, one, once, two or twice)", ErrInvalidThreshold, s)
}

// halves returns the multiplier in half steps so boundaries compare exactly.
func (t Threshold) halves() int64 {
	switch t {
	case ThresholdOnce:
		return 2
	case ThresholdOnceAndAHalf:
		return 3
	default:
		return 4
	}
}

// Multiplier returns the boundary multiplier (1, 1.5 or 2).
func (t Threshold) Multiplier() float64 {
	return float64(t.halves()) / 2
}

func (t Threshold) String() string {
	switch t {
	case ThresholdOnce:
		return "once"
	case ThresholdOnceAndAHalf:
		return "1.5"
	default:
		return "twice"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Threshold) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Threshold) UnmarshalText(text []byte) error {
	parsed, err := ParseThreshold(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// thresholdSteps pairs each unit with the boundary, in that unit's counts,
// that promotes it to the next coarser unit.
var thresholdSteps = []struct {
	unit     Unit
	boundary int64
}{
	{UnitSecond, 60},
	{UnitMinute, 60},
	{UnitHour, 24},
	{UnitDay, 7},
	{UnitWeek, 4},
	{UnitMonth, 12},
}

// SelectThreshold picks the finest unit whose count is strictly below its
// boundary times the threshold multiplier, falling back to years. A count
// equal to the scaled boundary promotes.
func SelectThreshold(d time.Duration, t Threshold) Span {
	return NewElapsed(d).Threshold(t)
}

// Threshold is SelectThreshold over precomputed counts.
func (e Elapsed) Threshold(t Threshold) Span {
	for _, step := range thresholdSteps {
		count := e.Count(step.unit)
		if 2*count < step.boundary*t.halves() {
			return Span{Unit: step.unit, Value: count, Direction: e.Direction}
		}
	}
	return Span{Unit: UnitYear, Value: e.Years, Direction: e.Direction}
}

// SelectCascade picks the coarsest non-zero unit (seconds when everything is
// zero) and the count of the next finer unit in the exact remainder. The
// second span is nil when that count is zero or the primary unit is seconds.
func SelectCascade(d time.Duration) (Span, *Span) {
	return NewElapsed(d).Cascade()
}

// Cascade is SelectCascade over precomputed counts.
func (e Elapsed) Cascade() (Span, *Span) {
	primary := Span{Unit: UnitSecond, Value: e.Seconds, Direction: e.Direction}
	for _, u := range Units {
		if count := e.Count(u); count > 0 {
			primary = Span{Unit: u, Value: count, Direction: e.Direction}
			break
		}
	}

	next, ok := primary.Unit.Finer()
	if !ok {
		return primary, nil
	}
	remainder := e.Milliseconds - primary.Value*primary.Unit.Milliseconds()
	value := remainder / next.Milliseconds()
	if value == 0 {
		return primary, nil
	}
	return primary, &Span{Unit: next, Value: value, Direction: e.Direction}
}
