package durfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/reldate/pkg/intl"
)

// Placeholder marks the number slot in a template string.
const Placeholder = "{number}"

// ErrInvalidTemplate is returned for template strings without exactly one
// placeholder.
var ErrInvalidTemplate = errors.New("durfmt: invalid template")

// Template is a phrase with a single number slot, e.g. "{number} י'".
// The zero value expands to the bare number.
type Template struct {
	prefix string
	suffix string
}

// ParseTemplate parses s, which must contain Placeholder exactly once.
func ParseTemplate(s string) (Template, error) {
	switch n := strings.Count(s, Placeholder); n {
	case 1:
		prefix, suffix, _ := strings.Cut(s, Placeholder)
		return Template{prefix: prefix, suffix: suffix}, nil
	default:
		return Template{}, fmt.Errorf("%w: %q has %d %s placeholders", ErrInvalidTemplate, s, n, Placeholder)
	}
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(s string) Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TemplateFromParts turns the first integer token of parts into the slot.
func TemplateFromParts(parts []intl.Part) (Template, bool) {
	var t Template
	seen := false
	for _, p := range parts {
		switch {
		case !seen && p.Type == intl.PartInteger:
			seen = true
		case seen:
			t.suffix += p.Value
		default:
			t.prefix += p.Value
		}
	}
	if !seen {
		return Template{}, false
	}
	return t, true
}

// templateAround makes the first occurrence of token in s the slot.
func templateAround(s, token string) (Template, bool) {
	if token == "" {
		return Template{}, false
	}
	prefix, suffix, found := strings.Cut(s, token)
	if !found {
		return Template{}, false
	}
	return Template{prefix: prefix, suffix: suffix}, true
}

// Expand fills the slot with number. Placeholder text inside the literal
// parts is left alone.
func (t Template) Expand(number string) string {
	return t.prefix + number + t.suffix
}

func (t Template) String() string {
	return t.Expand(Placeholder)
}

// MarshalText implements encoding.TextMarshaler.
func (t Template) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template) UnmarshalText(text []byte) error {
	parsed, err := ParseTemplate(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
