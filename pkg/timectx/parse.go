package timectx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
)

// Layouts with an explicit offset. Go accepts an optional fractional second
// after the seconds field when parsing, so these also cover ".000" variants.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // TickTick
	"2006-01-02T15:04:05Z0700",
}

// Layouts without an offset are read in the caller's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const dateOnlyLayout = "2006-01-02"

// ParseTimestamp reads an ISO-8601 style timestamp or epoch milliseconds.
// Naive date-times are interpreted in loc; a bare date is UTC midnight.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp format: %s", s)
}

// ParseFlexibleDate resolves loose date expressions ("today", "now",
// "tomorrow", "next week", ISO strings, epoch milliseconds) to the canonical
// ISO form. Relative keywords move by calendar days in loc, so month and year
// rollovers follow the calendar rather than a fixed 24h step.
func ParseFlexibleDate(input string, now time.Time, loc *time.Location) (string, error) {
	t, err := ResolveFlexibleDate(input, now, loc)
	if err != nil {
		return "", err
	}
	return ISO(t), nil
}

// ResolveFlexibleDate is ParseFlexibleDate without the final formatting.
func ResolveFlexibleDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	local := now.In(loc)

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "today", "now":
		return local, nil
	case "tomorrow":
		return local.AddDate(0, 0, 1), nil
	case "next week":
		return local.AddDate(0, 0, 7), nil
	}

	t, err := ParseTimestamp(input, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unable to parse date: %s", model.ErrInvalidArgs, input)
	}
	return t, nil
}
