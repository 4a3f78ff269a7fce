// Package reldate renders instants as "{date}({weekday}) {time}({duration})",
// e.g. "25-11-26(Wed) 10:00 PM(2 days)", in the caller's locale.
package reldate

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/reldate/pkg/durfmt"
	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
	"github.com/jmylchreest/reldate/pkg/intl/cldr"
	"github.com/jmylchreest/reldate/pkg/weekday"
)

// Options describes one formatting call. Only To is required.
type Options struct {
	To   time.Time
	From time.Time // zero means now

	Style     durfmt.Style       // empty or unknown means short
	Threshold duration.Threshold // zero value promotes at twice the boundary
	Locales   []string           // first non-empty wins
	Location  *time.Location     // nil keeps To's location
}

// Result is the formatted string plus facts about the delta.
type Result struct {
	Text          string `json:"text"`
	InFuture      bool   `json:"inFuture"`
	InAYearOrMore bool   `json:"inAYearOrMore"`
	Locale        string `json:"locale"`
	TimeZone      string `json:"timeZone"`
}

func (r *Result) String() string {
	return r.Text
}

// PartType classifies a segment of the formatted string.
type PartType string

const (
	PartDate     PartType = "date"
	PartLiteral  PartType = "literal"
	PartDay      PartType = "day"
	PartTime     PartType = "time"
	PartRelative PartType = "relative"
)

// Part is one segment of the formatted string.
type Part struct {
	Type  PartType `json:"type"`
	Value string   `json:"value"`
}

// Formatter formats instants with a fixed toolkit and override table. It is
// safe for concurrent use.
type Formatter struct {
	toolkit  intl.Toolkit
	renderer *durfmt.Renderer
	resolver func() string
	now      func() time.Time
	logger   *slog.Logger
}

type config struct {
	toolkit   *intl.Toolkit
	overrides durfmt.Overrides
	resolver  func() string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Formatter.
type Option func(*config)

// WithToolkit sets the formatting primitives. The default is the embedded
// CLDR catalog.
func WithToolkit(tk intl.Toolkit) Option {
	return func(c *config) {
		c.toolkit = &tk
	}
}

// WithOverrides sets the compact override table.
func WithOverrides(o durfmt.Overrides) Option {
	return func(c *config) {
		c.overrides = o
	}
}

// WithLocaleResolver sets the locale used when a call names none. The
// default reads the process environment.
func WithLocaleResolver(resolver func() string) Option {
	return func(c *config) {
		c.resolver = resolver
	}
}

// WithClock sets the source of "now" for calls without From.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a Formatter.
func New(opts ...Option) (*Formatter, error) {
	c := config{
		overrides: durfmt.DefaultOverrides(),
		resolver:  intl.SystemLocale,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.toolkit == nil {
		catalog, err := cldr.Default()
		if err != nil {
			return nil, fmt.Errorf("loading locale data: %w", err)
		}
		tk := catalog.Toolkit()
		c.toolkit = &tk
	}

	renderer, err := durfmt.New(*c.toolkit,
		durfmt.WithOverrides(c.overrides),
		durfmt.WithLogger(c.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration renderer: %w", err)
	}

	return &Formatter{
		toolkit:  *c.toolkit,
		renderer: renderer,
		resolver: c.resolver,
		now:      c.now,
		logger:   c.logger,
	}, nil
}

// Format formats opts.To relative to opts.From.
func (f *Formatter) Format(opts Options) (*Result, error) {
	c, err := f.compose(opts)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, p := range c.parts {
		text.WriteString(p.Value)
	}
	return &Result{
		Text:          text.String(),
		InFuture:      c.elapsed.Direction == duration.DirectionFuture && c.elapsed.Milliseconds > 0,
		InAYearOrMore: c.elapsed.Years >= 1,
		Locale:        c.locale,
		TimeZone:      zoneName(c.to.Location()),
	}, nil
}

// FormatToParts is Format split into typed segments, in the order
// date, "(", day, ") ", time, "(", relative, ")".
func (f *Formatter) FormatToParts(opts Options) ([]Part, error) {
	c, err := f.compose(opts)
	if err != nil {
		return nil, err
	}
	return c.parts, nil
}

type composition struct {
	parts   []Part
	locale  string
	to      time.Time
	elapsed duration.Elapsed
}

func (f *Formatter) compose(opts Options) (*composition, error) {
	locale := intl.ResolveLocale(opts.Locales, f.resolver)
	tag, err := intl.ParseLocale(locale)
	if err != nil {
		return nil, err
	}

	style := durfmt.ParseStyle(string(opts.Style))
	from := opts.From
	if from.IsZero() {
		from = f.now()
	}
	to := opts.To
	if opts.Location != nil {
		to = to.In(opts.Location)
	}
	// Millisecond arithmetic, since time.Time.Sub saturates near 292 years.
	elapsed := duration.ElapsedMillis(to.UnixMilli() - from.UnixMilli())

	relative, err := f.renderer.Render(tag, durfmt.SelectElapsed(elapsed, style, opts.Threshold), style)
	if err != nil {
		return nil, fmt.Errorf("rendering duration: %w", err)
	}

	dt, err := f.toolkit.DateTime(tag)
	if err != nil {
		return nil, fmt.Errorf("date-time formatter for %s: %w", tag, err)
	}
	day := dt.Weekday(to, weekdayWidth(style))
	if style == durfmt.StyleShort {
		if abbr, ok := weekday.Lookup(locale, to.Weekday()); ok {
			day = abbr
		}
	}

	return &composition{
		parts: []Part{
			{Type: PartDate, Value: dateToken(to, style)},
			{Type: PartLiteral, Value: "("},
			{Type: PartDay, Value: day},
			{Type: PartLiteral, Value: ") "},
			{Type: PartTime, Value: dt.Clock(to)},
			{Type: PartLiteral, Value: "("},
			{Type: PartRelative, Value: relative},
			{Type: PartLiteral, Value: ")"},
		},
		locale:  locale,
		to:      to,
		elapsed: elapsed,
	}, nil
}

// dateToken builds the date from calendar fields so every locale gets the
// same ordering: MM-DD for compact, YY-MM-DD for short, YYYY-MM-DD otherwise.
func dateToken(t time.Time, style durfmt.Style) string {
	switch style {
	case durfmt.StyleCompact:
		return t.Format("01-02")
	case durfmt.StyleShort:
		return t.Format("06-01-02")
	default:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
	}
}

func weekdayWidth(style durfmt.Style) intl.Width {
	switch style {
	case durfmt.StyleCompact:
		return intl.WidthNarrow
	case durfmt.StyleShort:
		return intl.WidthShort
	default:
		return intl.WidthLong
	}
}

var (
	defaultOnce      sync.Once
	defaultFormatter *Formatter
	defaultErr       error
)

func defaultInstance() (*Formatter, error) {
	defaultOnce.Do(func() {
		defaultFormatter, defaultErr = New()
	})
	return defaultFormatter, defaultErr
}

// Format formats with the default formatter.
func Format(opts Options) (*Result, error) {
	f, err := defaultInstance()
	if err != nil {
		return nil, err
	}
	return f.Format(opts)
}

// FormatToParts formats to parts with the default formatter.
func FormatToParts(opts Options) ([]Part, error) {
	f, err := defaultInstance()
	if err != nil {
		return nil, err
	}
	return f.FormatToParts(opts)
}
