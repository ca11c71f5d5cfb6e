package progress

import "time"

// Default window lengths in days.
const (
	AnalyticsWindowDays = 30
	WeekWindowDays      = 7
)

// Window is a closed [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window ending at now and starting days earlier.
// Negative lengths clamp to zero, yielding the single-instant window [now, now].
func NewWindow(now time.Time, days int) Window {
	if days < 0 {
		days = 0
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// Contains reports whether t falls inside the window. Both bounds are inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekStart returns the most recent Sunday at 00:00 in now's location.
// Weeks start on Sunday, matching the client-facing calendar.
func WeekStart(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
