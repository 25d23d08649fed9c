package service

import (
	"fmt"
	"time"
)

// occasions maps "month-day" to the label used as the generation prompt seed.
var occasions = map[string]string{
	"1-1":   "New Year's Day",
	"2-14":  "Valentine's Day",
	"3-8":   "International Women's Day",
	"4-22":  "Earth Day",
	"5-1":   "Labour Day",
	"7-4":   "Independence Day (USA)",
	"10-31": "Halloween",
	"11-27": "Thanksgiving",
	"12-25": "Christmas",
}

const occasionDateLayout = "Monday, January 2, 2006"

// ResolveOccasion returns the notable occasion for the calendar date of t, or the
// long-form date when the day has none. The year is ignored for the lookup.
func ResolveOccasion(t time.Time) string {
	key := fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
	if label, ok := occasions[key]; ok {
		return label
	}
	return t.Format(occasionDateLayout)
}
