package progress

// VolumeMilestoneThreshold is the total weight-reps volume a window must
// exceed before a volume milestone insight is considered.
const VolumeMilestoneThreshold = 10000.0

// ExerciseVolume is the summed weight x reps volume for one exercise.
type ExerciseVolume struct {
	Exercise string
	Volume   float64
}

// VolumeSummary aggregates training volume over a window.
type VolumeSummary struct {
	Total       float64
	PerExercise []ExerciseVolume
}

// EntryVolume is the weight x reps volume of a single log entry.
func EntryVolume(e LogEntry) float64 {
	var v float64
	for _, s := range e.Sets {
		v += s.Weight * float64(s.Reps)
	}
	return v
}

// AggregateVolume sums volume over all in-window entries, overall and per
// exercise. Per-exercise order follows first appearance in the input.
func AggregateVolume(entries []LogEntry, w Window) VolumeSummary {
	var sum VolumeSummary
	idx := make(map[string]int)
	for _, e := range entries {
		if !w.Contains(e.CompletedAt) {
			continue
		}
		v := EntryVolume(e)
		sum.Total += v
		i, ok := idx[e.ExerciseName]
		if !ok {
			i = len(sum.PerExercise)
			idx[e.ExerciseName] = i
			sum.PerExercise = append(sum.PerExercise, ExerciseVolume{Exercise: e.ExerciseName})
		}
		sum.PerExercise[i].Volume += v
	}
	return sum
}

// Top returns the exercise with the highest volume, or nil for an empty
// summary. Ties keep the earliest exercise.
func (s VolumeSummary) Top() *ExerciseVolume {
	var top *ExerciseVolume
	for i := range s.PerExercise {
		if top == nil || s.PerExercise[i].Volume > top.Volume {
			top = &s.PerExercise[i]
		}
	}
	return top
}
