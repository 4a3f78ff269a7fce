package durfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input    string
		expected Style
	}{
		{"compact", StyleCompact},
		{"short", StyleShort},
		{"LONG", StyleLong},
		{" longer ", StyleLonger},
		{"", StyleShort},
		{"verbose", StyleShort},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStyle(tt.input))
		})
	}
}

func TestStyle_Width(t *testing.T) {
	assert.Equal(t, intl.WidthNarrow, StyleCompact.Width())
	assert.Equal(t, intl.WidthShort, StyleShort.Width())
	assert.False(t, StyleShort.Directional())
	assert.True(t, StyleLonger.Directional())
}

func TestSelect(t *testing.T) {
	t.Run("threshold styles have no secondary", func(t *testing.T) {
		sel := Select(26*time.Hour, StyleShort, duration.ThresholdTwice)
		assert.Equal(t, duration.Span{Unit: duration.UnitHour, Value: 26, Direction: duration.DirectionFuture}, sel.Primary)
		assert.Nil(t, sel.Secondary)

		sel = Select(-90*time.Second, StyleCompact, duration.ThresholdOnce)
		assert.Equal(t, duration.Span{Unit: duration.UnitMinute, Value: 1, Direction: duration.DirectionPast}, sel.Primary)
	})

	t.Run("longer cascades", func(t *testing.T) {
		sel := Select(26*time.Hour, StyleLonger, duration.ThresholdTwice)
		assert.Equal(t, duration.Span{Unit: duration.UnitDay, Value: 1, Direction: duration.DirectionFuture}, sel.Primary)
		require.NotNil(t, sel.Secondary)
		assert.Equal(t, duration.Span{Unit: duration.UnitHour, Value: 2, Direction: duration.DirectionFuture}, *sel.Secondary)

		sel = Select(24*time.Hour, StyleLonger, duration.ThresholdTwice)
		assert.Nil(t, sel.Secondary)
	})
}
