// Package handlers provides HTTP API handlers for reldate.
package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/text/language"

	"github.com/jmylchreest/reldate/internal/observability"
	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/durfmt"
	"github.com/jmylchreest/reldate/pkg/intl"
	"github.com/jmylchreest/reldate/pkg/reldate"
)

// FormatDefaults holds the values applied when a request leaves a
// parameter out.
type FormatDefaults struct {
	Style     durfmt.Style
	Threshold duration.Threshold
	Locales   []string
	Location  *time.Location
}

// FormatHandler serves the formatting endpoints.
type FormatHandler struct {
	formatter *reldate.Formatter
	defaults  FormatDefaults
	now       func() time.Time
}

// NewFormatHandler creates a new format handler.
func NewFormatHandler(formatter *reldate.Formatter, defaults FormatDefaults) *FormatHandler {
	return &FormatHandler{
		formatter: formatter,
		defaults:  defaults,
		now:       time.Now,
	}
}

// WithClock sets the anchor used when a request has no "from".
func (h *FormatHandler) WithClock(now func() time.Time) *FormatHandler {
	h.now = now
	return h
}

// FormatInput is the query accepted by both format endpoints.
type FormatInput struct {
	To             string `query:"to" required:"true" doc:"Target instant: RFC 3339, a relative phrase (\"in 2 days\", \"5 hours ago\") or an offset (\"2d\", \"-90m\")"`
	From           string `query:"from" doc:"Reference instant in the same forms as 'to'; defaults to now"`
	Style          string `query:"style" doc:"Output style: compact, short, long or longer; anything else is short"`
	Threshold      string `query:"threshold" doc:"Unit promotion threshold: 1, 1.5 or 2 (once, twice)"`
	Locale         string `query:"locale" doc:"BCP 47 locale; falls back to Accept-Language"`
	TimeZone       string `query:"tz" doc:"IANA time zone for the date and clock"`
	AcceptLanguage string `header:"Accept-Language"`
}

// FormatOutput is the output for the format endpoint.
type FormatOutput struct {
	Body *reldate.Result
}

// FormatPartsResponse lists the typed segments of a formatted string.
type FormatPartsResponse struct {
	Parts []reldate.Part `json:"parts"`
}

// FormatPartsOutput is the output for the parts endpoint.
type FormatPartsOutput struct {
	Body FormatPartsResponse
}

// Register registers the format routes with the API.
func (h *FormatHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "formatRelative",
		Method:      "GET",
		Path:        "/api/v1/format",
		Summary:     "Format an instant",
		Description: "Renders 'to' as date, weekday, time and a relative duration against 'from'",
		Tags:        []string{"Format"},
	}, h.Format)

	huma.Register(api, huma.Operation{
		OperationID: "formatRelativeParts",
		Method:      "GET",
		Path:        "/api/v1/format/parts",
		Summary:     "Format an instant to parts",
		Description: "Same as the format endpoint, split into typed segments",
		Tags:        []string{"Format"},
	}, h.FormatParts)
}

// Format returns the formatted string and facts about the delta.
func (h *FormatHandler) Format(ctx context.Context, input *FormatInput) (*FormatOutput, error) {
	opts, err := h.options(input)
	if err != nil {
		return nil, err
	}

	result, err := h.formatter.Format(opts)
	if err != nil {
		return nil, h.formatError(ctx, "format", err)
	}

	return &FormatOutput{Body: result}, nil
}

// FormatParts returns the formatted string split into typed segments.
func (h *FormatHandler) FormatParts(ctx context.Context, input *FormatInput) (*FormatPartsOutput, error) {
	opts, err := h.options(input)
	if err != nil {
		return nil, err
	}

	parts, err := h.formatter.FormatToParts(opts)
	if err != nil {
		return nil, h.formatError(ctx, "format_parts", err)
	}

	return &FormatPartsOutput{Body: FormatPartsResponse{Parts: parts}}, nil
}

func (h *FormatHandler) options(input *FormatInput) (reldate.Options, error) {
	opts := reldate.Options{
		Style:     h.defaults.Style,
		Threshold: h.defaults.Threshold,
		Locales:   h.defaults.Locales,
		Location:  h.defaults.Location,
	}

	from := h.now()
	if input.From != "" {
		t, err := duration.ParseInstant(input.From, from)
		if err != nil {
			return opts, huma.Error400BadRequest("invalid 'from'", err)
		}
		from = t
	}
	to, err := duration.ParseInstant(input.To, from)
	if err != nil {
		return opts, huma.Error400BadRequest("invalid 'to'", err)
	}
	opts.From, opts.To = from, to

	if input.Style != "" {
		opts.Style = durfmt.ParseStyle(input.Style)
	}
	if input.Threshold != "" {
		t, err := duration.ParseThreshold(input.Threshold)
		if err != nil {
			return opts, huma.Error400BadRequest("invalid 'threshold'", err)
		}
		opts.Threshold = t
	}
	if input.TimeZone != "" {
		loc, err := time.LoadLocation(input.TimeZone)
		if err != nil {
			return opts, huma.Error400BadRequest("invalid 'tz'", err)
		}
		opts.Location = loc
	}

	switch {
	case input.Locale != "":
		opts.Locales = []string{input.Locale}
	case input.AcceptLanguage != "":
		if locale := preferredLanguage(input.AcceptLanguage); locale != "" {
			opts.Locales = []string{locale}
		}
	}

	return opts, nil
}

// wildcard is what language.ParseAcceptLanguage makes of "*".
var wildcard = language.Make("mul")

// preferredLanguage returns the highest weighted concrete tag of an
// Accept-Language header, or "".
func preferredLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if tag != language.Und && tag != wildcard {
			return tag.String()
		}
	}
	return ""
}

func (h *FormatHandler) formatError(ctx context.Context, op string, err error) error {
	if errors.Is(err, intl.ErrInvalidLocale) {
		return huma.Error400BadRequest("invalid locale", err)
	}
	logger := observability.WithOperation(
		observability.WithComponent(observability.LoggerFromContext(ctx), "http"), op)
	observability.WithError(logger, err).ErrorContext(ctx, "formatting failed")
	return huma.Error500InternalServerError("formatting failed", err)
}
