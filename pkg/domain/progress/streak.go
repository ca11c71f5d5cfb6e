package progress

import "time"

const dayKeyLayout = "2006-01-02"

// StreakOptions configures streak counting. GraceDays allows the streak
// anchor to slide backward: with GraceDays=1 a run of days that ended
// yesterday still counts, which some surfaces (the weekly recap email) want.
// The default, GraceDays=0, requires a log today for any streak at all.
type StreakOptions struct {
	GraceDays int
}

// ComputeStreak counts consecutive calendar days with at least one log,
// ending today. Multiple logs on the same calendar day count once, and
// time-of-day is ignored. Returns 0 when today has no log.
func ComputeStreak(dates []time.Time, now time.Time) int {
	return ComputeStreakWithOptions(dates, now, StreakOptions{})
}

// ComputeStreakWithOptions is ComputeStreak with an explicit policy.
// Calendar days are evaluated in now's location.
func ComputeStreakWithOptions(dates []time.Time, now time.Time, opts StreakOptions) int {
	if len(dates) == 0 {
		return 0
	}

	logged := make(map[string]bool, len(dates))
	for _, d := range dates {
		logged[d.In(now.Location()).Format(dayKeyLayout)] = true
	}

	// Find the anchor day: today, or up to GraceDays earlier.
	expected := startOfDay(now)
	anchored := false
	for g := 0; g <= opts.GraceDays; g++ {
		if logged[expected.Format(dayKeyLayout)] {
			anchored = true
			break
		}
		expected = expected.AddDate(0, 0, -1)
	}
	if !anchored {
		return 0
	}

	streak := 0
	for logged[expected.Format(dayKeyLayout)] {
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// SessionDates extracts the completion instants of a session list, for
// feeding into ComputeStreak.
func SessionDates(sessions []Session) []time.Time {
	dates := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		dates = append(dates, s.CompletedAt)
	}
	return dates
}
