// Package timectx turns absolute instants into reader-friendly time context:
// relative phrases, timezone-local display strings and due-state flags.
//
// Every function takes the evaluation instant explicitly so callers decide what
// "now" means for one operation.
package timectx

import (
	"fmt"
	"math"
	"time"

	"github.com/harrisonrobin/tickctx/pkg/model"
)

const (
	Minute = time.Minute
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Week   = 7 * Day
	Month  = 30 * Day
)

// ISOLayout is the canonical ISO-8601 form: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

const localLayout = "Jan 2, 2006, 03:04 PM"

// ISO formats t in the canonical ISO-8601 form.
func ISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// New builds the TimeContext of t as seen from now in loc.
func New(t time.Time, loc *time.Location, now time.Time) model.TimeContext {
	return model.TimeContext{
		ISO:       ISO(t),
		Relative:  Relative(t.Sub(now)),
		UserLocal: FormatLocal(t, loc, now),
		Timestamp: t.UnixMilli(),
	}
}

// Relative phrases diff (target minus now). The tier is picked from the raw
// magnitude; only the displayed count is rounded.
func Relative(diff time.Duration) string {
	past := diff < 0
	abs := diff
	if past {
		abs = -diff
	}

	if abs < Minute {
		if past {
			return "just now"
		}
		return "in a moment"
	}

	var n int64
	var unit string
	switch {
	case abs < Hour:
		n, unit = roundDiv(abs, Minute), "minute"
	case abs < Day:
		n, unit = roundDiv(abs, Hour), "hour"
	case abs < Week:
		n, unit = roundDiv(abs, Day), "day"
	case abs < Month:
		n, unit = roundDiv(abs, Week), "week"
	default:
		n, unit = roundDiv(abs, Month), "month"
	}
	if n != 1 {
		unit += "s"
	}

	if past {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("in %d %s", n, unit)
}

func roundDiv(d, unit time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(unit)))
}

// FormatLocal renders t in loc as "Jan 2, 2006, 03:04 PM", swapping the date
// for "Today" or "Tomorrow" when t falls on that calendar day in loc.
func FormatLocal(t time.Time, loc *time.Location, now time.Time) string {
	local := t.In(loc)
	switch {
	case SameDay(t, now, loc):
		return "Today, " + local.Format("03:04 PM")
	case SameDay(t, now.In(loc).AddDate(0, 0, 1), loc):
		return "Tomorrow, " + local.Format("03:04 PM")
	}
	return local.Format(localLayout)
}

// SameDay reports whether a and b share a calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
