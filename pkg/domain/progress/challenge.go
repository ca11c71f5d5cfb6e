package progress

import "time"

// Defaults for the standard coaching challenge: 8 weeks, 24 sessions,
// i.e. a linear quota of 3 sessions per week.
const (
	DefaultChallengeWeeks    = 8
	DefaultChallengeSessions = 24
)

// ComputeChallengeStatus derives the client's progress against an active
// challenge assignment. A nil or inactive assignment yields a nil status;
// that is the normal "no active challenge" case, not an error. Log entries
// supplement the session list: a session referenced only by its log entries
// still counts toward completion, since joins from older exports can be
// one-sided.
func ComputeChallengeStatus(a *ChallengeAssignment, sessions []Session, entries []LogEntry, now time.Time) (*ChallengeStatus, error) {
	if a == nil || !a.IsActive {
		return nil, nil
	}
	if err := validateSessions(sessions, now); err != nil {
		return nil, err
	}

	totalWeeks := a.TotalWeeks
	if totalWeeks <= 0 {
		totalWeeks = DefaultChallengeWeeks
	}
	required := a.RequiredSessions
	if required <= 0 {
		required = DefaultChallengeSessions
	}

	daysSinceStart := int(now.Sub(a.StartDate).Hours() / 24)
	currentWeek := daysSinceStart/7 + 1
	if currentWeek < 1 {
		currentWeek = 1
	}
	if currentWeek > totalWeeks {
		currentWeek = totalWeeks
	}

	daysRemaining := int(a.EndDate.Sub(now).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	completed := countChallengeSessions(a, sessions, entries)

	quota := float64(currentWeek) * float64(required) / float64(totalWeeks)
	percent := float64(completed) / float64(required) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	return &ChallengeStatus{
		CurrentWeek:       currentWeek,
		DaysRemaining:     daysRemaining,
		SessionsCompleted: completed,
		OnTrack:           float64(completed) >= quota,
		PercentComplete:   percent,
	}, nil
}

func countChallengeSessions(a *ChallengeAssignment, sessions []Session, entries []LogEntry) int {
	inRange := func(t time.Time) bool {
		return !t.Before(a.StartDate) && !t.After(a.EndDate)
	}

	seen := make(map[string]bool)
	count := 0
	for _, s := range sessions {
		if !inRange(s.CompletedAt) || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		count++
	}
	for _, e := range entries {
		if e.SessionID == "" || seen[e.SessionID] || !inRange(e.CompletedAt) {
			continue
		}
		seen[e.SessionID] = true
		count++
	}
	return count
}
