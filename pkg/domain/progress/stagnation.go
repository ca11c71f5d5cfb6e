package progress

// StagnationRun is how many identical trailing sessions flag an exercise.
const StagnationRun = 3

// Stagnation marks an exercise whose recent sessions show no progression.
type Stagnation struct {
	Exercise string
	Weight   float64
}

// DetectStagnation flags every exercise whose last StagnationRun sessions
// all landed on the same non-zero max weight. Zero-weight runs never
// qualify: those are usually bodyweight placeholders or unlogged weights,
// not a real plateau. Results keep series order so the caller's cap is
// deterministic.
func DetectStagnation(series []ExerciseSeries) []Stagnation {
	var stagnant []Stagnation
	for _, s := range series {
		if len(s.Points) < StagnationRun {
			continue
		}
		tail := s.Points[len(s.Points)-StagnationRun:]
		weight := tail[0].MaxWeight
		if weight <= 0 {
			continue
		}
		same := true
		for _, p := range tail[1:] {
			if p.MaxWeight != weight {
				same = false
				break
			}
		}
		if same {
			stagnant = append(stagnant, Stagnation{Exercise: s.Exercise, Weight: weight})
		}
	}
	return stagnant
}
