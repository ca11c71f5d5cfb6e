package progress

import (
	"testing"
)

func TestAggregateVolume_TotalAndPerExercise(t *testing.T) {
	now := day(2024, 2, 20)
	w := NewWindow(now, 30)
	entries := []LogEntry{
		entry("s1", "Bench Press", day(2024, 2, 1), Set{Weight: 100, Reps: 5}, Set{Weight: 100, Reps: 5}),
		entry("s1", "Squat", day(2024, 2, 1), Set{Weight: 120, Reps: 5}),
		entry("s2", "Bench Press", day(2024, 2, 3), Set{Weight: 100, Reps: 5}),
	}

	sum := AggregateVolume(entries, w)
	if sum.Total != 2100 {
		t.Errorf("Expected total 2100, got %v", sum.Total)
	}
	if len(sum.PerExercise) != 2 {
		t.Fatalf("Expected 2 exercises, got %d", len(sum.PerExercise))
	}
	if sum.PerExercise[0].Exercise != "Bench Press" || sum.PerExercise[0].Volume != 1500 {
		t.Errorf("Expected Bench Press 1500 first, got %+v", sum.PerExercise[0])
	}

	top := sum.Top()
	if top == nil || top.Exercise != "Bench Press" {
		t.Errorf("Expected Bench Press as top volume, got %+v", top)
	}
}

func TestAggregateVolume_ZeroSetsContributeNothing(t *testing.T) {
	now := day(2024, 2, 20)
	w := NewWindow(now, 30)
	entries := []LogEntry{
		entry("s1", "Plank", day(2024, 2, 1), Set{Weight: 0, Reps: 10}),
		entry("s1", "Stretch", day(2024, 2, 1)),
	}

	sum := AggregateVolume(entries, w)
	if sum.Total != 0 {
		t.Errorf("Expected 0 volume, got %v", sum.Total)
	}
	// Entries still appear in the grouping; they are data, not errors.
	if len(sum.PerExercise) != 2 {
		t.Errorf("Expected 2 exercise groups, got %d", len(sum.PerExercise))
	}
}

func TestVolumeSummary_TopTieKeepsFirst(t *testing.T) {
	s := VolumeSummary{PerExercise: []ExerciseVolume{
		{Exercise: "Bench Press", Volume: 500},
		{Exercise: "Squat", Volume: 500},
	}}
	if top := s.Top(); top == nil || top.Exercise != "Bench Press" {
		t.Errorf("Expected stable tie-break, got %+v", top)
	}
}

func TestVolumeSummary_TopEmpty(t *testing.T) {
	if top := (VolumeSummary{}).Top(); top != nil {
		t.Errorf("Expected nil top for empty summary, got %+v", top)
	}
}
