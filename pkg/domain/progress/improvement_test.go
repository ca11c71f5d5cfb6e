package progress

import (
	"testing"
	"time"
)

func seriesOf(exercise string, weights ...float64) ExerciseSeries {
	s := ExerciseSeries{Exercise: exercise}
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, w := range weights {
		s.Points = append(s.Points, SessionMax{Date: base.AddDate(0, 0, i), MaxWeight: w})
	}
	return s
}

func TestDetectImprovement_FirstToLast(t *testing.T) {
	// Squat 80 -> 90 over the window: increase 10.
	imp := DetectImprovement([]ExerciseSeries{seriesOf("Squat", 80, 90)})
	if imp == nil {
		t.Fatal("Expected an improvement")
	}
	if imp.From != 80 || imp.To != 90 || imp.Increase != 10 {
		t.Errorf("Expected 80->90 (+10), got %.1f->%.1f (+%.1f)", imp.From, imp.To, imp.Increase)
	}
}

func TestDetectImprovement_EndToEndNotPeakToPeak(t *testing.T) {
	// Dip then recovery: 100 -> 90 -> 102.5 measures +2.5, not +12.5.
	imp := DetectImprovement([]ExerciseSeries{seriesOf("Bench Press", 100, 90, 102.5)})
	if imp == nil {
		t.Fatal("Expected an improvement")
	}
	if imp.Increase != 2.5 {
		t.Errorf("Expected end-to-end increase 2.5, got %.1f", imp.Increase)
	}
}

func TestDetectImprovement_BelowThreshold(t *testing.T) {
	if imp := DetectImprovement([]ExerciseSeries{seriesOf("Curl", 20, 22)}); imp != nil {
		t.Errorf("Expected no PR below %.1f, got %+v", MinPRIncrease, imp)
	}
}

func TestDetectImprovement_SingleSessionExcluded(t *testing.T) {
	if imp := DetectImprovement([]ExerciseSeries{seriesOf("Press", 60)}); imp != nil {
		t.Errorf("Expected exercises with <2 sessions excluded, got %+v", imp)
	}
}

func TestDetectImprovement_PicksLargestIncrease(t *testing.T) {
	imp := DetectImprovement([]ExerciseSeries{
		seriesOf("Bench Press", 80, 85),
		seriesOf("Squat", 100, 115),
	})
	if imp == nil || imp.Exercise != "Squat" {
		t.Fatalf("Expected Squat (+15) to win, got %+v", imp)
	}
}

func TestDetectImprovement_TieKeepsFirst(t *testing.T) {
	imp := DetectImprovement([]ExerciseSeries{
		seriesOf("Bench Press", 80, 85),
		seriesOf("Squat", 100, 105),
	})
	if imp == nil || imp.Exercise != "Bench Press" {
		t.Fatalf("Expected first-encountered exercise on tie, got %+v", imp)
	}
}

func TestDetectImprovement_NegativeTrendNotReported(t *testing.T) {
	if imp := DetectImprovement([]ExerciseSeries{seriesOf("Deadlift", 140, 130)}); imp != nil {
		t.Errorf("Expected no PR for a regression, got %+v", imp)
	}
}
