package enrich

import (
	"fmt"
	"strings"
)

const rrulePrefix = "RRULE:"

// DescribeRepeat turns an RRULE string into a short phrase such as
// "Every 2 weeks on MO,WE". Rules it does not understand are returned as is.
func DescribeRepeat(flag string) string {
	if !strings.HasPrefix(flag, rrulePrefix) {
		return flag
	}

	rules := make(map[string]string)
	for _, part := range strings.Split(strings.TrimPrefix(flag, rrulePrefix), ";") {
		key, value, _ := strings.Cut(part, "=")
		rules[key] = value
	}

	interval := rules["INTERVAL"]
	if interval == "" {
		interval = "1"
	}
	var on string
	if days := rules["BYDAY"]; days != "" {
		on = " on " + days
	}

	switch strings.ToLower(rules["FREQ"]) {
	case "daily":
		if interval == "1" {
			return "Every day"
		}
		return fmt.Sprintf("Every %s days", interval)
	case "weekly":
		if interval == "1" {
			return "Weekly" + on
		}
		return fmt.Sprintf("Every %s weeks%s", interval, on)
	case "monthly":
		if interval == "1" {
			return "Monthly"
		}
		return fmt.Sprintf("Every %s months", interval)
	case "yearly":
		if interval == "1" {
			return "Yearly"
		}
		return fmt.Sprintf("Every %s years", interval)
	}
	return flag
}
