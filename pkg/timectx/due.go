package timectx

import "time"

// SoonWindow is the horizon within which a future due date counts as due soon.
const SoonWindow = 2 * Day

// A nil due date means the task floats; every predicate is false for it.

func IsOverdue(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	return due.Before(now)
}

func IsDueToday(due *time.Time, now time.Time, loc *time.Location) bool {
	if due == nil {
		return false
	}
	return SameDay(*due, now, loc)
}

// IsDueSoon is true for due dates strictly in the future and less than
// SoonWindow away. It is independent of IsDueToday.
func IsDueSoon(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	diff := due.Sub(now)
	return diff > 0 && diff < SoonWindow
}
