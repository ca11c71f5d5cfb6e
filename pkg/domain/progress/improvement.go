package progress

// MinPRIncrease is the smallest first-to-last weight gain (in kg) reported
// as a personal record. Gains below this are noise from plate rounding.
const MinPRIncrease = 2.5

// Improvement describes the best end-to-end weight gain in the window.
type Improvement struct {
	Exercise string
	From     float64
	To       float64
	Increase float64
}

// DetectImprovement finds the exercise with the largest weight increase
// between its chronologically first and last sessions in the window. The
// measurement is deliberately end-to-end rather than min-to-max, so a
// dip-then-recovery counts only its net gain. Exercises with fewer than two
// sessions are excluded entirely. Ties keep the earliest series, and nil is
// returned when nothing clears MinPRIncrease.
func DetectImprovement(series []ExerciseSeries) *Improvement {
	var best *Improvement
	for _, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		first := s.Points[0].MaxWeight
		last := s.Points[len(s.Points)-1].MaxWeight
		increase := last - first
		if best == nil || increase > best.Increase {
			best = &Improvement{
				Exercise: s.Exercise,
				From:     first,
				To:       last,
				Increase: increase,
			}
		}
	}
	if best == nil || best.Increase < MinPRIncrease {
		return nil
	}
	return best
}
