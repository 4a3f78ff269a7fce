package intl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		language string
	}{
		{"en-US", "en-US", "en"},
		{"he-IL", "he-IL", "he"},
		{"he_IL.UTF-8", "he-IL", "he"},
		{"de", "de", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tag, err := ParseLocale(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tag.String())
			assert.Equal(t, tt.language, Language(tag))
		})
	}

	_, err := ParseLocale("not a locale!")
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestSystemLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "he_IL.UTF-8")
	assert.Equal(t, "he-IL", SystemLocale())

	t.Setenv("LC_ALL", "de_DE@euro")
	assert.Equal(t, "de-DE", SystemLocale())

	t.Setenv("LC_ALL", "C")
	t.Setenv("LANG", "POSIX")
	assert.Equal(t, FallbackLocale, SystemLocale())
}

func TestResolveLocale(t *testing.T) {
	system := func() string { return "he-IL" }

	assert.Equal(t, "en-GB", ResolveLocale([]string{"", " en-GB "}, system))
	assert.Equal(t, "he-IL", ResolveLocale(nil, system))
	assert.Equal(t, FallbackLocale, ResolveLocale(nil, func() string { return "" }))
	assert.Equal(t, FallbackLocale, ResolveLocale(nil, nil))
}

func TestParts(t *testing.T) {
	parts := []Part{
		{Type: PartLiteral, Value: "in "},
		{Type: PartInteger, Value: "2"},
		{Type: PartLiteral, Value: " days"},
	}
	assert.Equal(t, "in 2 days", Join(parts))

	p, ok := IntegerPart(parts)
	assert.True(t, ok)
	assert.Equal(t, "2", p.Value)

	_, ok = IntegerPart(parts[:1])
	assert.False(t, ok)
}

func TestToolkit_Validate(t *testing.T) {
	err := Toolkit{}.Validate()
	assert.ErrorIs(t, err, ErrMissingPrimitive)
	assert.Empty(t, Toolkit{}.Capabilities())
}
