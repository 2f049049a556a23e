package enrich

import "testing"

func TestDescribeRepeat(t *testing.T) {
	cases := []struct {
		flag string
		want string
	}{
		{"RRULE:FREQ=DAILY;INTERVAL=1", "Every day"},
		{"RRULE:FREQ=DAILY", "Every day"},
		{"RRULE:FREQ=DAILY;INTERVAL=3", "Every 3 days"},
		{"RRULE:FREQ=WEEKLY;INTERVAL=1", "Weekly"},
		{"RRULE:FREQ=WEEKLY;INTERVAL=1;BYDAY=FR", "Weekly on FR"},
		{"RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE", "Every 2 weeks on MO,WE"},
		{"RRULE:FREQ=MONTHLY;INTERVAL=1;BYMONTHDAY=15", "Monthly"},
		{"RRULE:FREQ=MONTHLY;INTERVAL=6", "Every 6 months"},
		{"RRULE:FREQ=YEARLY", "Yearly"},
		{"RRULE:FREQ=YEARLY;INTERVAL=2", "Every 2 years"},
		{"RRULE:FREQ=HOURLY;INTERVAL=1", "RRULE:FREQ=HOURLY;INTERVAL=1"},
		{"ERULE:NAME=CUSTOM;BYDATE=20261018", "ERULE:NAME=CUSTOM;BYDATE=20261018"},
		{"every day", "every day"},
	}

	for _, c := range cases {
		if got := DescribeRepeat(c.flag); got != c.want {
			t.Errorf("DescribeRepeat(%q): expected %q, got %q", c.flag, c.want, got)
		}
	}
}
