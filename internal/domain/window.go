package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Window resolution failures. All of them are configuration errors: they are
// raised before any network activity happens.
var (
	// ErrConflictingWindow means a relative period and explicit dates were
	// both supplied; the two forms are mutually exclusive.
	ErrConflictingWindow = errors.New("period and explicit from/to dates are mutually exclusive")
	// ErrMissingWindow means neither form was supplied, or the explicit form
	// is missing one of its ends.
	ErrMissingWindow = errors.New("either a period or an explicit from/to pair is required")
	// ErrInvertedWindow means the explicit pair has from after to.
	ErrInvertedWindow = errors.New("from must not be after to")
)

// DateWindow is the [From, To) range activity is queried over. It is
// resolved once from the CLI inputs and immutable afterwards.
type DateWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// periodPattern matches relative durations such as 7d, 2w or 1m.
var periodPattern = regexp.MustCompile(`^([0-9]+)([dwm])$`)

// ResolveWindow turns the CLI's window inputs into a DateWindow. Exactly one
// of the two forms must be given: a relative period token, or both explicit
// dates. Explicit dates accept RFC 3339 timestamps or plain YYYY-MM-DD days
// (interpreted as UTC midnight).
func ResolveWindow(period, from, to string, now time.Time) (DateWindow, error) {
	explicit := from != "" || to != ""

	switch {
	case period != "" && explicit:
		return DateWindow{}, ErrConflictingWindow
	case period == "" && !explicit:
		return DateWindow{}, ErrMissingWindow
	case period != "":
		d, err := ParsePeriod(period)
		if err != nil {
			return DateWindow{}, err
		}
		return DateWindow{From: now.Add(-d), To: now}, nil
	}

	if from == "" || to == "" {
		return DateWindow{}, fmt.Errorf("%w: explicit dates need both ends", ErrMissingWindow)
	}
	fromTime, err := parseTimestamp(from)
	if err != nil {
		return DateWindow{}, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	toTime, err := parseTimestamp(to)
	if err != nil {
		return DateWindow{}, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if fromTime.After(toTime) {
		return DateWindow{}, fmt.Errorf("%w: %s > %s", ErrInvertedWindow, from, to)
	}
	return DateWindow{From: fromTime, To: toTime}, nil
}

// maxPeriodDays is the longest span a period token may cover: the largest
// whole-day count whose duration still fits in int64 nanoseconds. Anything
// larger would wrap the duration negative and invert the window.
const maxPeriodDays = int(math.MaxInt64 / int64(24*time.Hour))

// ParsePeriod parses a relative duration token of the form <integer>[dwm].
// The unit m is a fixed 30-day approximation, not calendar-month arithmetic.
// Tokens spanning more than maxPeriodDays are rejected.
func ParsePeriod(token string) (time.Duration, error) {
	m := periodPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, fmt.Errorf("invalid period %q: want <integer>[dwm], e.g. 7d, 2w, 1m", token)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", token, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid period %q: count must be positive", token)
	}
	unitDays := 1
	switch m[2] {
	case "w":
		unitDays = 7
	case "m":
		unitDays = 30
	}
	if n > maxPeriodDays/unitDays {
		return 0, fmt.Errorf("invalid period %q: must span at most %d days", token, maxPeriodDays)
	}
	return time.Duration(n*unitDays) * 24 * time.Hour, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("want RFC 3339 or YYYY-MM-DD")
	}
	return t.UTC(), nil
}
