package durfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		input    string
		number   string
		expected string
		wantErr  bool
	}{
		{"{number}d", "5", "5d", false},
		{"{number} י'", "2", "2 י'", false},
		{"in {number} days", "3", "in 3 days", false},
		{"days", "", "", true},
		{"{number}{number}", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTemplate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tmpl.Expand(tt.number))
			assert.Equal(t, tt.input, tmpl.String())
		})
	}
}

func TestTemplate_ExpandSingleSlot(t *testing.T) {
	tmpl := MustParseTemplate("{number}h")
	assert.Equal(t, "{number}h", tmpl.Expand(Placeholder))
	assert.Equal(t, "7", Template{}.Expand("7"))
}

func TestTemplateFromParts(t *testing.T) {
	tmpl, ok := TemplateFromParts([]intl.Part{
		{Type: intl.PartLiteral, Value: "in "},
		{Type: intl.PartInteger, Value: "1"},
		{Type: intl.PartLiteral, Value: " "},
		{Type: intl.PartInteger, Value: "9"},
	})
	require.True(t, ok)
	assert.Equal(t, "in {number} 9", tmpl.String())

	_, ok = TemplateFromParts([]intl.Part{{Type: intl.PartLiteral, Value: "tomorrow"}})
	assert.False(t, ok)
}

func TestTemplateAround(t *testing.T) {
	tmpl, ok := templateAround("10 שב׳", "10")
	require.True(t, ok)
	assert.Equal(t, "3 שב׳", tmpl.Expand("3"))

	_, ok = templateAround("days", "0")
	assert.False(t, ok)
	_, ok = templateAround("days", "")
	assert.False(t, ok)
}

func TestTemplate_Text(t *testing.T) {
	var tmpl Template
	require.NoError(t, tmpl.UnmarshalText([]byte("{number}mo")))
	text, err := tmpl.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "{number}mo", string(text))

	assert.ErrorIs(t, tmpl.UnmarshalText([]byte("mo")), ErrInvalidTemplate)
}

func TestDefaultOverrides(t *testing.T) {
	o := DefaultOverrides()
	assert.Equal(t, []string{"ar", "ars", "he", "syr"}, o.Languages())

	tmpl, ok := o.Lookup("he", duration.UnitWeek)
	require.True(t, ok)
	assert.Equal(t, "3 שב'", tmpl.Expand("3"))

	_, ok = o.Lookup("ar", duration.UnitDay)
	assert.False(t, ok)
	_, ok = o.Lookup("fr", duration.UnitDay)
	assert.False(t, ok)

	o["he"][duration.UnitDay] = MustParseTemplate("{number}x")
	fresh, _ := DefaultOverrides().Lookup("he", duration.UnitDay)
	assert.Equal(t, "{number} י'", fresh.String())
}

func TestParseOverrides(t *testing.T) {
	o, err := ParseOverrides(map[string]map[string]string{
		"EN ": {"Day": "{number}dd", "hour": "{number}hh"},
	})
	require.NoError(t, err)
	tmpl, ok := o.Lookup("en", duration.UnitDay)
	require.True(t, ok)
	assert.Equal(t, "1dd", tmpl.Expand("1"))

	_, err = ParseOverrides(map[string]map[string]string{"en": {"fortnight": "{number}f"}})
	assert.ErrorIs(t, err, duration.ErrInvalidUnit)

	_, err = ParseOverrides(map[string]map[string]string{"en": {"day": "dd"}})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = ParseOverrides(map[string]map[string]string{"": {"day": "{number}"}})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestOverrides_Merge(t *testing.T) {
	base := DefaultOverrides()
	extra := Overrides{
		"he": {duration.UnitDay: MustParseTemplate("{number} ימ'")},
		"fr": {duration.UnitDay: MustParseTemplate("{number} j")},
	}
	merged := base.Merge(extra)

	day, _ := merged.Lookup("he", duration.UnitDay)
	assert.Equal(t, "{number} ימ'", day.String())
	week, ok := merged.Lookup("he", duration.UnitWeek)
	require.True(t, ok, "units not in the layer survive")
	assert.Equal(t, "{number} שב'", week.String())
	_, ok = merged.Lookup("fr", duration.UnitDay)
	assert.True(t, ok)

	orig, _ := base.Lookup("he", duration.UnitDay)
	assert.Equal(t, "{number} י'", orig.String(), "inputs are not modified")
}
