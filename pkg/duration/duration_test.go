package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"hours", "720h", 720 * time.Hour, false},
		{"combined standard", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"fractional hours", "1.5h", 90 * time.Minute, false},
		{"days short", "30d", 30 * Day, false},
		{"days words", "30 days", 30 * Day, false},
		{"week singular", "1 week", Week, false},
		{"weeks abbrev", "2wks", 2 * Week, false},
		{"month short", "1mo", Month, false},
		{"months plural", "2 months", 2 * Month, false},
		{"year abbrev", "1yr", Year, false},
		{"full combo short", "1w2d3h4m5s", 9*Day + 3*time.Hour + 4*time.Minute + 5*time.Second, false},
		{"full combo words", "1 week 2 days 3h", 9*Day + 3*time.Hour, false},
		{"uppercase", "30DAYS", 30 * Day, false},
		{"zero", "0s", 0, false},
		{"negative", "-12h", -12 * time.Hour, false},
		{"negative words", "- 30 days", -30 * Day, false},
		{"micro sign", "5µs", 5 * time.Microsecond, false},

		{"empty", "", 0, true},
		{"no number", "days", 0, true},
		{"unknown unit", "5 fortnights", 0, true},
		{"trailing junk", "5d!", 0, true},
		{"leading junk", "about 5d", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, 2*Day, MustParse("2d"))
	assert.Panics(t, func() { MustParse("nope") })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{time.Second, "1s"},
		{90 * time.Minute, "1h30m"},
		{36 * time.Hour, "1d12h"},
		{9 * Day, "1w2d"},
		{Year + Month + Week + Day, "1y1mo1w1d"},
		{-2 * time.Hour, "-2h"},
		{1500 * time.Millisecond, "1s500ms"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, d := range []time.Duration{time.Second, 36 * time.Hour, Year + 3*Day + 4*time.Minute, -5 * Week} {
		parsed, err := Parse(Format(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}
