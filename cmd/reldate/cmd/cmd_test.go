package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/reldate/internal/config"
	"github.com/jmylchreest/reldate/pkg/durfmt"
	"github.com/jmylchreest/reldate/pkg/reldate"
)

// anchor is a Monday.
var anchor = time.Date(2025, 11, 24, 22, 0, 0, 0, time.UTC)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestResolveInstants(t *testing.T) {
	var opts reldate.Options
	require.NoError(t, resolveInstants(&opts, "in 2 days", "", anchor))
	assert.Equal(t, anchor, opts.From)
	assert.Equal(t, anchor.Add(48*time.Hour), opts.To)

	require.NoError(t, resolveInstants(&opts, "2h", "2025-11-26T20:00:00Z", anchor))
	assert.Equal(t, time.Date(2025, 11, 26, 22, 0, 0, 0, time.UTC), opts.To.UTC())

	assert.Error(t, resolveInstants(&opts, "whenever", "", anchor))
	err := resolveInstants(&opts, "2d", "whenever", anchor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestWriteFormatted(t *testing.T) {
	cfg := defaultConfig(t)
	f, catalog, err := newFormatter(cfg, slog.Default())
	require.NoError(t, err)
	assert.Contains(t, catalog.Supported(), "he")

	opts := reldate.Options{
		From:    anchor,
		To:      anchor.Add(48 * time.Hour),
		Style:   durfmt.StyleCompact,
		Locales: []string{"en-US"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeFormatted(&buf, f, opts, outputText))
	assert.Equal(t, "11-26(W) 10:00 PM(2d)\n", buf.String())

	buf.Reset()
	require.NoError(t, writeFormatted(&buf, f, opts, outputJSON))
	var res reldate.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, "11-26(W) 10:00 PM(2d)", res.Text)
	assert.True(t, res.InFuture)

	buf.Reset()
	require.NoError(t, writeFormatted(&buf, f, opts, outputParts))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, `date     "11-26"`, lines[0])
	assert.Equal(t, `relative "2d"`, lines[6])
}

func TestNewFormatter_WithoutDurationFormat(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Intl.DurationFormat = false
	cfg.Overrides = map[string]map[string]string{"en": {"day": "{number} dys"}}

	f, _, err := newFormatter(cfg, slog.Default())
	require.NoError(t, err)

	res, err := f.Format(reldate.Options{
		From:    anchor,
		To:      anchor.Add(48 * time.Hour),
		Style:   durfmt.StyleCompact,
		Locales: []string{"en-US"},
	})
	require.NoError(t, err)
	assert.Equal(t, "11-26(W) 10:00 PM(2 dys)", res.Text)
}

func TestFormatDefaults(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Format.Style = "long"
	cfg.Format.Locale = "he-IL"
	cfg.Format.TimeZone = "Asia/Jerusalem"

	opts, err := formatDefaults(cfg)
	require.NoError(t, err)
	assert.Equal(t, durfmt.StyleLong, opts.Style)
	assert.Equal(t, []string{"he-IL"}, opts.Locales)
	require.NotNil(t, opts.Location)
	assert.Equal(t, "Asia/Jerusalem", opts.Location.String())
}

func TestDumpConfig(t *testing.T) {
	cfg := defaultConfig(t)

	var buf bytes.Buffer
	require.NoError(t, dumpConfig(&buf, cfg, true))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# reldate Configuration File"))

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))

	server := parsed["server"].(map[string]any)
	assert.Equal(t, "30s", server["read_timeout"])

	format := parsed["format"].(map[string]any)
	assert.Equal(t, "short", format["style"])
	assert.Equal(t, "twice", format["threshold"])

	overrides := parsed["overrides"].(map[string]any)
	he := overrides["he"].(map[string]any)
	assert.Equal(t, "{number} י'", he["day"])
}

func TestVerifyWeekdays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, verifyWeekdays(context.Background(), &buf, slog.Default()))
	assert.Contains(t, buf.String(), "yo")
	assert.Contains(t, buf.String(), "min:2 max:3 avg:2.7")
}
