package progress

import (
	"sort"
	"time"
)

// SessionMax is one session's heaviest lift for a single exercise.
type SessionMax struct {
	SessionID string
	Date      time.Time
	MaxWeight float64
}

// ExerciseSeries is the per-session maximum lift history for one exercise,
// ascending by date. Downstream detectors rely on index 0 being the earliest
// session.
type ExerciseSeries struct {
	Exercise string
	Points   []SessionMax
}

// MaxWeightSeries groups in-window log entries by exercise and reduces each
// session to its heaviest set. Sessions without the exercise are omitted, not
// zero-filled; an entry whose sets are all empty still yields a 0-weight
// point. The returned slice is ordered by first appearance of each exercise
// in the input, so iteration order is stable across identical invocations
// (Go map iteration is randomized, so the order is materialized here).
func MaxWeightSeries(entries []LogEntry, w Window) []ExerciseSeries {
	var series []ExerciseSeries
	seriesIdx := make(map[string]int)
	// exercise -> sessionID -> index into Points, to fold duplicate entries
	// for the same exercise within one session into a single point.
	pointIdx := make(map[string]map[string]int)

	for _, e := range entries {
		if e.ExerciseName == "" || !w.Contains(e.CompletedAt) {
			continue
		}

		maxWeight := 0.0
		for _, s := range e.Sets {
			if s.Weight > maxWeight {
				maxWeight = s.Weight
			}
		}

		si, ok := seriesIdx[e.ExerciseName]
		if !ok {
			si = len(series)
			seriesIdx[e.ExerciseName] = si
			series = append(series, ExerciseSeries{Exercise: e.ExerciseName})
			pointIdx[e.ExerciseName] = make(map[string]int)
		}

		points := pointIdx[e.ExerciseName]
		if pi, seen := points[e.SessionID]; seen && e.SessionID != "" {
			if maxWeight > series[si].Points[pi].MaxWeight {
				series[si].Points[pi].MaxWeight = maxWeight
			}
			continue
		}
		points[e.SessionID] = len(series[si].Points)
		series[si].Points = append(series[si].Points, SessionMax{
			SessionID: e.SessionID,
			Date:      e.CompletedAt,
			MaxWeight: maxWeight,
		})
	}

	for i := range series {
		pts := series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Date.Before(pts[b].Date) })
	}
	return series
}
