package durfmt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
	"github.com/jmylchreest/reldate/pkg/lcs"
)

// candidates are tried, in order, as stand-in magnitudes when the relative
// time primitive renders the real one as a word ("tomorrow", "יומיים").
var candidates = []int64{1, 0, 2, 3, 4, 5, 6, 10, 20, 21, 100}

// levelTrace matches the trace level the logging setup registers below debug.
const levelTrace = slog.LevelDebug - 4

// Strategy names, as logged.
const (
	StrategyNative    = "native"
	StrategyOverride  = "override"
	StrategyUnit      = "unit_template"
	StrategyCandidate = "plural_candidate"
	StrategyRaw       = "raw_lcs"
)

// Renderer turns selections into localized phrases. It is safe for
// concurrent use.
type Renderer struct {
	tk        intl.Toolkit
	overrides Overrides
	logger    *slog.Logger
	chain     []strategy

	mu        sync.RWMutex
	templates map[templateKey]cachedTemplate
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithOverrides replaces the built-in override table.
func WithOverrides(o Overrides) Option {
	return func(r *Renderer) {
		r.overrides = o
	}
}

// WithLogger sets the logger strategy decisions are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New creates a Renderer over tk.
func New(tk intl.Toolkit, opts ...Option) (*Renderer, error) {
	if err := tk.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		tk:        tk,
		overrides: DefaultOverrides(),
		logger:    slog.Default(),
		templates: make(map[templateKey]cachedTemplate),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.chain = []strategy{
		{StrategyNative, r.native},
		{StrategyOverride, r.override},
		{StrategyUnit, r.unitTemplate},
		{StrategyCandidate, r.candidate},
	}
	return r, nil
}

// Overrides returns the override table in use.
func (r *Renderer) Overrides() Overrides {
	return r.overrides
}

// request carries one compact or short rendering through the chain.
type request struct {
	tag    language.Tag
	span   duration.Span
	width  intl.Width
	number intl.NumberFormatter
	rtf    intl.RelativeTimeFormatter
}

type strategy struct {
	name   string
	render func(*request) (string, bool)
}

// Render renders sel in tag. Compact and short phrases carry a "-" prefix
// for the past, long and longer ones use the locale's direction words. Only
// failures of the mandatory primitives are returned.
func (r *Renderer) Render(tag language.Tag, sel Selection, style Style) (string, error) {
	switch style {
	case StyleLong:
		return r.relative(tag, sel.Primary, intl.NumericAuto)
	case StyleLonger:
		return r.longer(tag, sel)
	}

	number, err := r.tk.Number(tag)
	if err != nil {
		return "", fmt.Errorf("number formatter for %s: %w", tag, err)
	}
	width := style.Width()
	rtf, err := r.tk.Relative(tag, width, intl.NumericAlways)
	if err != nil {
		return "", fmt.Errorf("relative time formatter for %s: %w", tag, err)
	}

	req := &request{tag: tag, span: sel.Primary, width: width, number: number, rtf: rtf}
	text, name := r.run(req)

	r.logger.Debug("rendered duration",
		slog.String("strategy", name),
		slog.String("locale", tag.String()),
		slog.String("unit", sel.Primary.Unit.String()),
		slog.Int64("value", sel.Primary.Value),
		slog.String("width", string(width)),
	)

	if sel.Primary.Direction.Past() {
		text = "-" + text
	}
	return text, nil
}

// run walks the chain and falls back to the raw extraction.
func (r *Renderer) run(req *request) (string, string) {
	for _, s := range r.chain {
		text, ok := s.render(req)
		r.logger.Log(context.Background(), levelTrace, "strategy attempt",
			slog.String("strategy", s.name),
			slog.Bool("ok", ok))
		if ok {
			return text, s.name
		}
	}
	return r.raw(req), StrategyRaw
}

func (r *Renderer) relative(tag language.Tag, span duration.Span, numeric intl.Numeric) (string, error) {
	rtf, err := r.tk.Relative(tag, intl.WidthLong, numeric)
	if err != nil {
		return "", fmt.Errorf("relative time formatter for %s: %w", tag, err)
	}
	return rtf.Format(span.Value, span.Direction, span.Unit), nil
}

// longer renders the primary unit with direction words and appends the
// secondary as a bare quantity: "in 1 day 2 hours".
func (r *Renderer) longer(tag language.Tag, sel Selection) (string, error) {
	primary, err := r.relative(tag, sel.Primary, intl.NumericAlways)
	if err != nil {
		return "", err
	}
	if sel.Secondary == nil {
		return primary, nil
	}
	return primary + " " + r.quantity(tag, *sel.Secondary), nil
}

func (r *Renderer) quantity(tag language.Tag, span duration.Span) string {
	if r.tk.Duration != nil {
		df, err := r.tk.Duration(tag, intl.WidthLong)
		if err == nil {
			return df.Format(intl.Fields{span.Unit: span.Value})
		}
		r.logger.Debug("duration format unavailable", slog.String("locale", tag.String()), slog.String("error", err.Error()))
	}
	return fmt.Sprintf("%d %s", span.Value, span.Unit.Plural())
}

func (r *Renderer) native(req *request) (string, bool) {
	if r.tk.Duration == nil {
		return "", false
	}
	df, err := r.tk.Duration(req.tag, req.width)
	if err != nil {
		return "", false
	}
	return df.Format(intl.Fields{req.span.Unit: req.span.Value}), true
}

func (r *Renderer) override(req *request) (string, bool) {
	if req.width != intl.WidthNarrow {
		return "", false
	}
	t, ok := r.overrides.Lookup(intl.Language(req.tag), req.span.Unit)
	if !ok {
		return "", false
	}
	return t.Expand(req.number.Format(req.span.Value)), true
}

type templateKey struct {
	locale string
	unit   duration.Unit
}

type cachedTemplate struct {
	template Template
	ok       bool
}

// unitTemplate derives a template from the narrow unit formatter's rendering
// of 1. Results, misses included, are cached per locale and unit.
func (r *Renderer) unitTemplate(req *request) (string, bool) {
	if req.width != intl.WidthNarrow || r.tk.Unit == nil {
		return "", false
	}
	key := templateKey{locale: req.tag.String(), unit: req.span.Unit}

	r.mu.RLock()
	cached, found := r.templates[key]
	r.mu.RUnlock()
	if !found {
		if uf, err := r.tk.Unit(req.tag, req.span.Unit, intl.WidthNarrow); err == nil {
			cached.template, cached.ok = TemplateFromParts(uf.FormatToParts(1))
		}
		r.mu.Lock()
		r.templates[key] = cached
		r.mu.Unlock()
	}
	if !cached.ok {
		return "", false
	}
	return cached.template.Expand(req.number.Format(req.span.Value)), true
}

// candidate handles magnitudes the relative time primitive renders without
// an integer token. It renders a stand-in of the same plural category in
// both directions, keeps their common text and swaps the stand-in's digits
// for the real ones.
func (r *Renderer) candidate(req *request) (string, bool) {
	if r.tk.Plural == nil {
		return "", false
	}
	parts, err := req.rtf.FormatToParts(req.span.Value, duration.DirectionFuture, req.span.Unit)
	if err != nil {
		return "", false
	}
	if _, ok := intl.IntegerPart(parts); ok {
		return "", false
	}
	rules, err := r.tk.Plural(req.tag)
	if err != nil {
		return "", false
	}

	c, token, ok := r.findCandidate(req, rules)
	if !ok {
		return "", false
	}
	future := req.rtf.Format(c, duration.DirectionFuture, req.span.Unit)
	past := req.rtf.Format(c, duration.DirectionPast, req.span.Unit)
	t, ok := templateAround(strings.TrimSpace(lcs.Longest(future, past)), token)
	if !ok {
		return "", false
	}
	return t.Expand(req.number.Format(req.span.Value)), true
}

// findCandidate returns the first candidate rendered with an integer token,
// preferring the category of the real magnitude, then "other", then any.
func (r *Renderer) findCandidate(req *request, rules intl.PluralRules) (int64, string, bool) {
	numeric := func(c int64) (string, bool) {
		parts, err := req.rtf.FormatToParts(c, duration.DirectionFuture, req.span.Unit)
		if err != nil {
			return "", false
		}
		p, ok := intl.IntegerPart(parts)
		return p.Value, ok
	}

	category := rules.Select(req.span.Value)
	filters := []func(int64) bool{
		func(c int64) bool { return rules.Select(c) == category },
		func(c int64) bool { return rules.Select(c) == intl.PluralOther },
		func(int64) bool { return true },
	}
	for _, accept := range filters {
		for _, c := range candidates {
			if !accept(c) {
				continue
			}
			if token, ok := numeric(c); ok {
				return c, token, true
			}
		}
	}
	return 0, "", false
}

// raw is the last resort: the common text of the real magnitude rendered in
// both directions. Direction words the two renderings share survive.
func (r *Renderer) raw(req *request) string {
	future := req.rtf.Format(req.span.Value, duration.DirectionFuture, req.span.Unit)
	past := req.rtf.Format(req.span.Value, duration.DirectionPast, req.span.Unit)
	return strings.TrimSpace(lcs.Longest(future, past))
}
