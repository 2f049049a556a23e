package timectx

import (
	"testing"
	"time"
)

func at(t time.Time) *time.Time { return &t }

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	if !IsOverdue(at(now.Add(-time.Second)), now) {
		t.Error("Expected past date to be overdue")
	}
	if IsOverdue(at(now), now) {
		t.Error("Expected due == now not to be overdue")
	}
	if IsOverdue(at(now.Add(time.Second)), now) {
		t.Error("Expected future date not to be overdue")
	}
	if IsOverdue(nil, now) {
		t.Error("Expected floating task not to be overdue")
	}
}

func TestIsDueTodayIsTimezoneRelative(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	kolkata := mustLoad(t, "Asia/Kolkata")
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, ny)
	due := time.Date(2026, 10, 18, 23, 45, 0, 0, ny)

	if !IsDueToday(&due, now, ny) {
		t.Error("Expected 23:45 local to be due today in New York")
	}
	if IsDueToday(&due, now, kolkata) {
		t.Error("Expected the same instant not to be due today in Kolkata")
	}
	if IsDueToday(nil, now, ny) {
		t.Error("Expected floating task not to be due today")
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{"floating", nil, false},
		{"overdue", at(now.Add(-time.Hour)), false},
		{"now", at(now), false},
		{"in 30 minutes", at(now.Add(30 * time.Minute)), true},
		{"47h59m", at(now.Add(47*time.Hour + 59*time.Minute)), true},
		{"48h01m", at(now.Add(48*time.Hour + time.Minute)), false},
		{"3 days", at(now.Add(3 * Day)), false},
	}

	for _, c := range cases {
		if got := IsDueSoon(c.due, now); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestTodayAndSoonAreIndependent(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	due := now.Add(30 * time.Minute)

	if !IsDueToday(&due, now, time.UTC) || !IsDueSoon(&due, now) {
		t.Error("Expected a task due in 30 minutes to be both due today and due soon")
	}
}
