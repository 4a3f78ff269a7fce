package duration

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidUnit is returned for unit names outside the display units.
var ErrInvalidUnit = errors.New("duration: invalid unit")

// Unit is a calendar unit used to display an elapsed interval.
type Unit string

// Display units, finest first.
const (
	UnitSecond Unit = "second"
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
)

// Units lists every display unit from the coarsest to the finest.
var Units = []Unit{UnitYear, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond}

var unitLengths = map[Unit]time.Duration{
	UnitSecond: time.Second,
	UnitMinute: time.Minute,
	UnitHour:   time.Hour,
	UnitDay:    Day,
	UnitWeek:   Week,
	UnitMonth:  Month,
	UnitYear:   Year,
}

// ParseUnit parses a unit name as produced by Unit.String.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// Valid reports whether u is one of the display units.
func (u Unit) Valid() bool {
	_, ok := unitLengths[u]
	return ok
}

// Length returns the fixed length of one u.
func (u Unit) Length() time.Duration {
	return unitLengths[u]
}

// Milliseconds returns the fixed length of one u in milliseconds.
func (u Unit) Milliseconds() int64 {
	return unitLengths[u].Milliseconds()
}

// Finer returns the next finer unit, or false for seconds.
func (u Unit) Finer() (Unit, bool) {
	for i, unit := range Units {
		if unit == u && i+1 < len(Units) {
			return Units[i+1], true
		}
	}
	return "", false
}

// Plural returns the English plural of the unit name ("days").
func (u Unit) Plural() string {
	return string(u) + "s"
}

func (u Unit) String() string {
	return string(u)
}

// Direction indicates whether an interval lies in the past or the future.
type Direction int

const (
	DirectionPast   Direction = -1 // ago, before, since
	DirectionFuture Direction = 1  // in, from now, after
)

// DirectionOf returns the direction of an elapsed delta. A zero delta counts
// as the future.
func DirectionOf(d time.Duration) Direction {
	if d < 0 {
		return DirectionPast
	}
	return DirectionFuture
}

// Past reports whether the direction points backwards in time.
func (d Direction) Past() bool {
	return d == DirectionPast
}

func (d Direction) String() string {
	if d.Past() {
		return "past"
	}
	return "future"
}

// Span is a single-unit quantity with its direction: the magnitude is never
// negative, the sign is carried by Direction.
type Span struct {
	Unit      Unit
	Value     int64
	Direction Direction
}

// Signed returns the value with the direction applied.
func (s Span) Signed() int64 {
	if s.Direction.Past() {
		return -s.Value
	}
	return s.Value
}

func (s Span) String() string {
	sign := ""
	if s.Direction.Past() {
		sign = "-"
	}
	return fmt.Sprintf("%s%d %s", sign, s.Value, s.Unit)
}
