package progress

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ConsistencySessionFloor is the session count in the analytics window
	// that qualifies for a consistency insight.
	ConsistencySessionFloor = 12

	// MaxSecondaryInsights caps how many non-hero insights are surfaced.
	MaxSecondaryInsights = 2
)

// Precondition violations. These indicate a caller bug (bad join or clock),
// not bad user data; malformed-but-present data never produces an error.
var (
	ErrDuplicateSession = errors.New("duplicate session id")
	ErrSessionInFuture  = errors.New("session completed after reference time")
)

// numPrinter groups thousands in user-facing volume figures.
var numPrinter = message.NewPrinter(language.English)

// ComputeInsights runs every detector over the 30-day window ending at now
// and ranks the results into a hero insight plus at most two secondary
// insights. An empty InsightSet means nothing qualified; the caller shows
// nothing. Output is deterministic for identical inputs.
func ComputeInsights(entries []LogEntry, sessions []Session, now time.Time) (InsightSet, error) {
	if err := validateSessions(sessions, now); err != nil {
		return InsightSet{}, err
	}

	w := NewWindow(now, AnalyticsWindowDays)
	series := MaxWeightSeries(entries, w)

	candidates := buildCandidates(series, entries, sessions, w)
	return rank(candidates), nil
}

// buildCandidates collects at most one insight per kind. Stagnation
// contributes only the first flagged exercise; the rest wait for their turn
// on a later refresh.
func buildCandidates(series []ExerciseSeries, entries []LogEntry, sessions []Session, w Window) []Insight {
	var candidates []Insight

	if imp := DetectImprovement(series); imp != nil {
		candidates = append(candidates, Insight{
			Kind:     InsightPersonalRecord,
			Title:    "New personal record 🏆",
			Subtitle: imp.Exercise,
			Message: fmt.Sprintf("Your %s is up %.1f kg over the last %d days (%.1f → %.1f). Keep it rolling!",
				imp.Exercise, imp.Increase, AnalyticsWindowDays, imp.From, imp.To),
			Exercise: imp.Exercise,
		})
	}

	if vol := AggregateVolume(entries, w); vol.Total > VolumeMilestoneThreshold {
		msg := numPrinter.Sprintf("You moved %.0f kg of total volume in the last %d days.", vol.Total, AnalyticsWindowDays)
		subtitle := "Total volume"
		exercise := ""
		if top := vol.Top(); top != nil && top.Exercise != "" {
			msg = numPrinter.Sprintf("You moved %.0f kg of total volume in the last %d days — %s did the heavy lifting.",
				vol.Total, AnalyticsWindowDays, top.Exercise)
			exercise = top.Exercise
		}
		candidates = append(candidates, Insight{
			Kind:     InsightVolumeMilestone,
			Title:    "Volume milestone 💪",
			Subtitle: subtitle,
			Message:  msg,
			Exercise: exercise,
		})
	}

	if n := countInWindow(sessions, w); n >= ConsistencySessionFloor {
		candidates = append(candidates, Insight{
			Kind:     InsightConsistency,
			Title:    "Consistency streak 🔥",
			Subtitle: fmt.Sprintf("%d workouts", n),
			Message:  fmt.Sprintf("%d workouts in the last %d days. Showing up is the hard part — nice work.", n, AnalyticsWindowDays),
		})
	}

	if stagnant := DetectStagnation(series); len(stagnant) > 0 {
		s := stagnant[0]
		candidates = append(candidates, Insight{
			Kind:     InsightStagnationTip,
			Title:    "Time to mix it up 💡",
			Subtitle: s.Exercise,
			Message: fmt.Sprintf("%s has been stuck at %.1f kg for %d sessions. Try adjusting reps, tempo, or a small load increase.",
				s.Exercise, s.Weight, StagnationRun),
			Exercise: s.Exercise,
		})
	}

	return candidates
}

// rank orders candidates by the fixed hero policy and slices off the hero
// and capped secondaries.
func rank(candidates []Insight) InsightSet {
	sort.SliceStable(candidates, func(i, j int) bool {
		return heroPriority(candidates[i].Kind) < heroPriority(candidates[j].Kind)
	})
	for i := range candidates {
		candidates[i].Rank = i
	}

	out := InsightSet{Secondary: []Insight{}}
	if len(candidates) == 0 {
		return out
	}
	out.Hero = &candidates[0]
	rest := candidates[1:]
	if len(rest) > MaxSecondaryInsights {
		rest = rest[:MaxSecondaryInsights]
	}
	out.Secondary = append(out.Secondary, rest...)
	return out
}

// heroPriority: personal records always headline; a volume milestone may
// only take the hero slot when no PR exists, which this ordering yields
// without a special case.
func heroPriority(k InsightKind) int {
	switch k {
	case InsightPersonalRecord:
		return 0
	case InsightVolumeMilestone:
		return 1
	case InsightConsistency:
		return 2
	case InsightStagnationTip:
		return 3
	default:
		return 4
	}
}

func countInWindow(sessions []Session, w Window) int {
	n := 0
	for _, s := range sessions {
		if w.Contains(s.CompletedAt) {
			n++
		}
	}
	return n
}

func validateSessions(sessions []Session, now time.Time) error {
	seen := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		if s.ID != "" {
			if seen[s.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateSession, s.ID)
			}
			seen[s.ID] = true
		}
		if s.CompletedAt.After(now) {
			return fmt.Errorf("%w: %s at %s", ErrSessionInFuture, s.ID, s.CompletedAt.Format(time.RFC3339))
		}
	}
	return nil
}
