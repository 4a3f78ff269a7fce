package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElapsed(t *testing.T) {
	e := NewElapsed(-(400*Day + 5*time.Hour + 1500*time.Millisecond))

	assert.Equal(t, DirectionPast, e.Direction)
	assert.Equal(t, int64(400), e.Days)
	assert.Equal(t, int64(57), e.Weeks)
	assert.Equal(t, int64(13), e.Months)
	assert.Equal(t, int64(1), e.Years)
	assert.Equal(t, int64(400*24+5), e.Hours)
	assert.Equal(t, e.Hours*3600+1, e.Seconds)
}

func TestElapsedMillis_BeyondDurationRange(t *testing.T) {
	// 1000 years of 365 days overflows time.Duration.
	ms := int64(1000*365*24*60*60) * 1000
	e := ElapsedMillis(-ms)

	assert.Equal(t, DirectionPast, e.Direction)
	assert.Equal(t, int64(1000*365), e.Days)
	assert.Equal(t, int64(1000), e.Years)
	assert.Equal(t, Span{Unit: UnitYear, Value: 1000, Direction: DirectionPast}, e.Threshold(ThresholdTwice))

	primary, secondary := e.Cascade()
	assert.Equal(t, Span{Unit: UnitYear, Value: 1000, Direction: DirectionPast}, primary)
	assert.Nil(t, secondary)

	assert.Equal(t, NewElapsed(90*time.Minute), ElapsedMillis(90*60*1000))
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input    string
		expected Threshold
	}{
		{"", ThresholdTwice},
		{"2", ThresholdTwice},
		{"two", ThresholdTwice},
		{"Twice", ThresholdTwice},
		{"1", ThresholdOnce},
		{"one", ThresholdOnce},
		{"once", ThresholdOnce},
		{"1.5", ThresholdOnceAndAHalf},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseThreshold(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseThreshold("thrice")
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestThreshold_Text(t *testing.T) {
	var th Threshold
	require.NoError(t, th.UnmarshalText([]byte("1.5")))
	assert.Equal(t, ThresholdOnceAndAHalf, th)
	assert.InDelta(t, 1.5, th.Multiplier(), 0)

	text, err := ThresholdOnce.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "once", string(text))

	assert.Error(t, th.UnmarshalText([]byte("3")))
}

func TestSelectThreshold_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		threshold Threshold
		unit      Unit
		value     int64
	}{
		{"119s twice", 119 * time.Second, ThresholdTwice, UnitSecond, 119},
		{"120s twice", 120 * time.Second, ThresholdTwice, UnitMinute, 2},
		{"119m twice", 119 * time.Minute, ThresholdTwice, UnitMinute, 119},
		{"120m twice", 120 * time.Minute, ThresholdTwice, UnitHour, 2},
		{"47h twice", 47 * time.Hour, ThresholdTwice, UnitHour, 47},
		{"48h twice", 48 * time.Hour, ThresholdTwice, UnitDay, 2},
		{"13d twice", 13 * Day, ThresholdTwice, UnitDay, 13},
		{"14d twice", 14 * Day, ThresholdTwice, UnitWeek, 2},
		{"7 weeks twice", 7 * Week, ThresholdTwice, UnitWeek, 7},
		{"8 weeks twice", 8 * Week, ThresholdTwice, UnitMonth, 1},
		{"23 months twice", 23 * Month, ThresholdTwice, UnitMonth, 23},
		{"24 months twice", 24 * Month, ThresholdTwice, UnitYear, 1},
		{"59s once", 59 * time.Second, ThresholdOnce, UnitSecond, 59},
		{"60s once", 60 * time.Second, ThresholdOnce, UnitMinute, 1},
		{"89s one and a half", 89 * time.Second, ThresholdOnceAndAHalf, UnitSecond, 89},
		{"90s one and a half", 90 * time.Second, ThresholdOnceAndAHalf, UnitMinute, 1},
		{"zero", 0, ThresholdTwice, UnitSecond, 0},
		{"sub second", 999 * time.Millisecond, ThresholdTwice, UnitSecond, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectThreshold(tt.elapsed, tt.threshold)
			assert.Equal(t, tt.unit, got.Unit)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, DirectionFuture, got.Direction)
		})
	}
}

func TestSelectThreshold_NegativeUsesMagnitude(t *testing.T) {
	got := SelectThreshold(-time.Hour, ThresholdTwice)
	assert.Equal(t, Span{Unit: UnitMinute, Value: 60, Direction: DirectionPast}, got)
	assert.Equal(t, int64(-60), got.Signed())
	assert.Equal(t, "-60 minute", got.String())
}

func TestSelectCascade(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		primary   Span
		secondary *Span
	}{
		{
			name:    "exact day",
			elapsed: Day,
			primary: Span{Unit: UnitDay, Value: 1, Direction: DirectionFuture},
		},
		{
			name:      "day and hours",
			elapsed:   Day + 2*time.Hour,
			primary:   Span{Unit: UnitDay, Value: 1, Direction: DirectionFuture},
			secondary: &Span{Unit: UnitHour, Value: 2, Direction: DirectionFuture},
		},
		{
			name:    "seconds only",
			elapsed: 45 * time.Second,
			primary: Span{Unit: UnitSecond, Value: 45, Direction: DirectionFuture},
		},
		{
			name:    "all zero",
			elapsed: 300 * time.Millisecond,
			primary: Span{Unit: UnitSecond, Value: 0, Direction: DirectionFuture},
		},
		{
			name:      "past weeks and days",
			elapsed:   -(2*Week + 3*Day + time.Hour),
			primary:   Span{Unit: UnitWeek, Value: 2, Direction: DirectionPast},
			secondary: &Span{Unit: UnitDay, Value: 3, Direction: DirectionPast},
		},
		{
			name:      "year remainder in months",
			elapsed:   Year + 361*Day,
			primary:   Span{Unit: UnitYear, Value: 1, Direction: DirectionFuture},
			secondary: &Span{Unit: UnitMonth, Value: 12, Direction: DirectionFuture},
		},
		{
			name:      "minute and seconds",
			elapsed:   time.Minute + 5*time.Second,
			primary:   Span{Unit: UnitMinute, Value: 1, Direction: DirectionFuture},
			secondary: &Span{Unit: UnitSecond, Value: 5, Direction: DirectionFuture},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondary := SelectCascade(tt.elapsed)
			assert.Equal(t, tt.primary, primary)
			assert.Equal(t, tt.secondary, secondary)
		})
	}
}

func TestUnit(t *testing.T) {
	next, ok := UnitYear.Finer()
	assert.True(t, ok)
	assert.Equal(t, UnitMonth, next)

	_, ok = UnitSecond.Finer()
	assert.False(t, ok)

	assert.Equal(t, int64(30*24*3600*1000), UnitMonth.Milliseconds())
	assert.Equal(t, "hours", UnitHour.Plural())

	u, err := ParseUnit("week")
	require.NoError(t, err)
	assert.Equal(t, UnitWeek, u)
	_, err = ParseUnit("fortnight")
	assert.Error(t, err)
}
