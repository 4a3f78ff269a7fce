package duration

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors for relative time parsing.
var (
	ErrEmptyRelativeString   = errors.New("duration: empty relative time string")
	ErrNoRelativeKeyword     = errors.New("duration: no relative keyword found (in, ago, from now, later)")
	ErrConflictingDirections = errors.New("duration: conflicting direction keywords")
)

// relativeSuffixes maps trailing keywords to their direction.
var relativeSuffixes = []struct {
	keyword   string
	direction Direction
}{
	{" from now", DirectionFuture},
	{" later", DirectionFuture},
	{" ago", DirectionPast},
	{" earlier", DirectionPast},
}

// ParseRelativeFrom resolves a relative expression against anchor.
//
// Supported forms:
//   - "now"
//   - "in 2 days", "in 1w2d"
//   - "5 hours ago", "3 days earlier"
//   - "2 weeks from now", "10 minutes later"
func ParseRelativeFrom(s string, anchor time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyRelativeString
	}
	lower := strings.ToLower(s)
	if lower == "now" {
		return anchor, nil
	}

	var (
		body      string
		direction Direction
	)
	if rest, ok := strings.CutPrefix(lower, "in "); ok {
		body, direction = rest, DirectionFuture
	}
	for _, suffix := range relativeSuffixes {
		rest, ok := strings.CutSuffix(lower, suffix.keyword)
		if !ok {
			continue
		}
		if direction != 0 {
			if direction != suffix.direction {
				return time.Time{}, ErrConflictingDirections
			}
			rest = strings.TrimPrefix(rest, "in ")
		}
		body, direction = rest, suffix.direction
		break
	}
	if direction == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoRelativeKeyword, s)
	}

	d, err := Parse(body)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return anchor.Add(time.Duration(direction) * d), nil
}

// ErrInvalidInstant is returned by ParseInstant for input that is neither a
// timestamp, a relative expression nor a duration offset.
var ErrInvalidInstant = errors.New("duration: invalid instant")

// ParseInstant resolves s to an absolute time. It accepts an RFC 3339
// timestamp, anything ParseRelativeFrom accepts, or a signed offset such as
// "2d" or "-90m" applied to anchor.
func ParseInstant(s string, anchor time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidInstant)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := ParseRelativeFrom(s, anchor); err == nil {
		return t, nil
	}
	if d, err := Parse(s); err == nil {
		return anchor.Add(d), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}
