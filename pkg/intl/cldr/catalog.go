// Package cldr implements the intl primitives from locale bundles embedded in
// the binary. The data is a hand-curated subset of CLDR for en, de and he.
package cldr

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"golang.org/x/text/language"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

//go:embed data/*.yaml
var embedded embed.FS

// fallbackLanguage is served when no bundle matches the requested locale.
const fallbackLanguage = "en"

// Catalog holds the parsed locale bundles and hands out formatters for them.
type Catalog struct {
	bundles   []*bundle
	matcher   language.Matcher
	durations bool
}

type options struct {
	durations bool
	extra     [][]byte
}

// Option configures a Catalog.
type Option func(*options)

// WithoutDurationFormat removes the duration capability from the toolkit, as
// if the runtime had no multi-field duration formatter.
func WithoutDurationFormat() Option {
	return func(o *options) {
		o.durations = false
	}
}

// WithLocaleData adds YAML bundles. A bundle replaces an embedded one with the
// same locale.
func WithLocaleData(data ...[]byte) Option {
	return func(o *options) {
		o.extra = append(o.extra, data...)
	}
}

// New parses the embedded bundles plus any supplied with WithLocaleData.
func New(opts ...Option) (*Catalog, error) {
	o := options{durations: true}
	for _, opt := range opts {
		opt(&o)
	}

	files, err := fs.Glob(embedded, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing locale data: %w", err)
	}
	sort.Strings(files)

	byLocale := make(map[string]*bundle)
	var order []string
	add := func(data []byte) error {
		b, err := parseBundle(data)
		if err != nil {
			return err
		}
		if _, ok := byLocale[b.Locale]; !ok {
			order = append(order, b.Locale)
		}
		byLocale[b.Locale] = b
		return nil
	}

	for _, name := range files {
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := add(data); err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}
	for i, data := range o.extra {
		if err := add(data); err != nil {
			return nil, fmt.Errorf("loading supplied bundle %d: %w", i, err)
		}
	}

	if _, ok := byLocale[fallbackLanguage]; !ok {
		return nil, fmt.Errorf("%w: no %s bundle", ErrInvalidBundle, fallbackLanguage)
	}

	// The matcher falls back to its first tag, so en goes first.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i] == fallbackLanguage && order[j] != fallbackLanguage
	})

	c := &Catalog{durations: o.durations}
	tags := make([]language.Tag, 0, len(order))
	for _, loc := range order {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", ErrInvalidBundle, loc, err)
		}
		tags = append(tags, tag)
		c.bundles = append(c.bundles, byLocale[loc])
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog of embedded bundles, parsed on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = New()
	})
	return defaultCatalog, defaultErr
}

// Supported lists the bundle locales, fallback first.
func (c *Catalog) Supported() []string {
	locales := make([]string, len(c.bundles))
	for i, b := range c.bundles {
		locales[i] = b.Locale
	}
	return locales
}

// lookup returns the bundle that best serves tag.
func (c *Catalog) lookup(tag language.Tag) *bundle {
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No {
		return c.bundles[0]
	}
	return c.bundles[index]
}

// Toolkit exposes the catalog as intl primitives.
func (c *Catalog) Toolkit() intl.Toolkit {
	tk := intl.Toolkit{
		Number:   c.number,
		Relative: c.relative,
		DateTime: c.dateTime,
		Unit:     c.unit,
		Plural:   c.plural,
	}
	if c.durations {
		tk.Duration = c.duration
	}
	return tk
}

func (c *Catalog) number(tag language.Tag) (intl.NumberFormatter, error) {
	return newNumberFormatter(tag), nil
}

func (c *Catalog) plural(tag language.Tag) (intl.PluralRules, error) {
	return pluralRules{tag: tag}, nil
}

func (c *Catalog) relative(tag language.Tag, width intl.Width, numeric intl.Numeric) (intl.RelativeTimeFormatter, error) {
	return &relativeFormatter{
		bundle:  c.lookup(tag),
		width:   width,
		numeric: numeric,
		number:  newNumberFormatter(tag),
		plural:  pluralRules{tag: tag},
	}, nil
}

func (c *Catalog) unit(tag language.Tag, unit duration.Unit, width intl.Width) (intl.UnitFormatter, error) {
	b := c.lookup(tag)
	patterns := b.unitPatterns(width, unit)
	if patterns == nil {
		return nil, fmt.Errorf("%s %s unit display for %s: %w", width, unit, b.Locale, errors.ErrUnsupported)
	}
	return &unitFormatter{
		patterns: patterns,
		number:   newNumberFormatter(tag),
		plural:   pluralRules{tag: tag},
	}, nil
}

func (c *Catalog) duration(tag language.Tag, width intl.Width) (intl.DurationFormatter, error) {
	b := c.lookup(tag)
	if !b.hasUnits() {
		return nil, fmt.Errorf("duration format for %s: %w", b.Locale, errors.ErrUnsupported)
	}
	return &durationFormatter{
		bundle: b,
		width:  width,
		number: newNumberFormatter(tag),
		plural: pluralRules{tag: tag},
	}, nil
}

func (c *Catalog) dateTime(tag language.Tag) (intl.DateTimeFormatter, error) {
	b := c.lookup(tag)
	layout := b.Clock.Layout
	if region, confidence := tag.Region(); confidence != language.No {
		if l, ok := b.Clock.Regions[region.String()]; ok {
			layout = l
		}
	}
	return &dateTimeFormatter{bundle: b, layout: layout}, nil
}
