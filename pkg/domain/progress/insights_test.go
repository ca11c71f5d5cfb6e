package progress

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// benchProgression builds entries giving bench press a clear PR in-window.
func benchProgression(now time.Time) []LogEntry {
	return []LogEntry{
		entry("s1", "Bench Press", now.AddDate(0, 0, -20), Set{Weight: 80, Reps: 5}),
		entry("s2", "Bench Press", now.AddDate(0, 0, -5), Set{Weight: 90, Reps: 5}),
	}
}

func TestComputeInsights_EmptyInputs(t *testing.T) {
	got, err := ComputeInsights(nil, nil, day(2024, 3, 1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero != nil {
		t.Errorf("Expected no hero, got %+v", got.Hero)
	}
	if len(got.Secondary) != 0 {
		t.Errorf("Expected no secondary insights, got %d", len(got.Secondary))
	}
}

func TestComputeInsights_PRHero(t *testing.T) {
	now := day(2024, 3, 1)
	got, err := ComputeInsights(benchProgression(now), nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero == nil || got.Hero.Kind != InsightPersonalRecord {
		t.Fatalf("Expected personal record hero, got %+v", got.Hero)
	}
	if got.Hero.Exercise != "Bench Press" {
		t.Errorf("Expected Bench Press, got %q", got.Hero.Exercise)
	}
}

func TestComputeInsights_BelowThresholdNeverPR(t *testing.T) {
	now := day(2024, 3, 1)
	entries := []LogEntry{
		entry("s1", "Curl", now.AddDate(0, 0, -10), Set{Weight: 20, Reps: 10}),
		entry("s2", "Curl", now.AddDate(0, 0, -2), Set{Weight: 22, Reps: 10}),
	}
	got, err := ComputeInsights(entries, nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero != nil && got.Hero.Kind == InsightPersonalRecord {
		t.Errorf("Expected no PR for +2.0 increase, got %+v", got.Hero)
	}
	for _, s := range got.Secondary {
		if s.Kind == InsightPersonalRecord {
			t.Errorf("Expected no PR anywhere in output, got %+v", s)
		}
	}
}

func TestComputeInsights_VolumeDemotedWhenPRPresent(t *testing.T) {
	// Scenario: volume over threshold AND a PR. PR takes hero, volume
	// drops to the first secondary slot.
	now := day(2024, 3, 1)
	entries := benchProgression(now)
	// 12,000 kg of squat volume.
	for i := 0; i < 12; i++ {
		entries = append(entries,
			entry("v"+string(rune('a'+i)), "Squat", now.AddDate(0, 0, -i-1), Set{Weight: 100, Reps: 10}))
	}

	got, err := ComputeInsights(entries, nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero == nil || got.Hero.Kind != InsightPersonalRecord {
		t.Fatalf("Expected PR hero, got %+v", got.Hero)
	}
	if len(got.Secondary) == 0 || got.Secondary[0].Kind != InsightVolumeMilestone {
		t.Fatalf("Expected volume milestone demoted to secondary, got %+v", got.Secondary)
	}
}

func TestComputeInsights_VolumeHeroWithoutPR(t *testing.T) {
	now := day(2024, 3, 1)
	var entries []LogEntry
	for i := 0; i < 12; i++ {
		entries = append(entries,
			entry("v"+string(rune('a'+i)), "Squat", now.AddDate(0, 0, -i-1), Set{Weight: 100, Reps: 10}))
	}

	got, err := ComputeInsights(entries, nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero == nil || got.Hero.Kind != InsightVolumeMilestone {
		t.Fatalf("Expected volume milestone hero with no PR, got %+v", got.Hero)
	}
}

func TestComputeInsights_ConsistencySignal(t *testing.T) {
	now := day(2024, 3, 1)
	var sessions []Session
	for i := 0; i < ConsistencySessionFloor; i++ {
		sessions = append(sessions, Session{
			ID:          "s" + string(rune('a'+i)),
			CompletedAt: now.AddDate(0, 0, -i-1),
		})
	}

	got, err := ComputeInsights(nil, sessions, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero == nil || got.Hero.Kind != InsightConsistency {
		t.Fatalf("Expected consistency hero, got %+v", got.Hero)
	}
}

func TestComputeInsights_SecondaryCapped(t *testing.T) {
	// All four kinds qualify; hero plus two secondaries survive.
	now := day(2024, 3, 1)
	entries := benchProgression(now)
	for i := 0; i < 12; i++ {
		entries = append(entries,
			entry("v"+string(rune('a'+i)), "Squat", now.AddDate(0, 0, -i-1), Set{Weight: 100, Reps: 10}))
	}
	entries = append(entries,
		entry("t1", "Deadlift", now.AddDate(0, 0, -6), Set{Weight: 140, Reps: 3}),
		entry("t2", "Deadlift", now.AddDate(0, 0, -4), Set{Weight: 140, Reps: 3}),
		entry("t3", "Deadlift", now.AddDate(0, 0, -2), Set{Weight: 140, Reps: 3}),
	)
	var sessions []Session
	for i := 0; i < 14; i++ {
		sessions = append(sessions, Session{
			ID:          "c" + string(rune('a'+i)),
			CompletedAt: now.AddDate(0, 0, -i-1),
		})
	}

	got, err := ComputeInsights(entries, sessions, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Hero == nil || got.Hero.Kind != InsightPersonalRecord {
		t.Fatalf("Expected PR hero, got %+v", got.Hero)
	}
	if len(got.Secondary) != MaxSecondaryInsights {
		t.Fatalf("Expected %d secondary insights, got %d", MaxSecondaryInsights, len(got.Secondary))
	}
	if got.Secondary[0].Kind != InsightVolumeMilestone || got.Secondary[1].Kind != InsightConsistency {
		t.Errorf("Expected [volume, consistency] secondaries, got [%s, %s]",
			got.Secondary[0].Kind, got.Secondary[1].Kind)
	}
}

func TestComputeInsights_Idempotent(t *testing.T) {
	now := day(2024, 3, 1)
	entries := benchProgression(now)
	entries = append(entries,
		entry("t1", "Deadlift", now.AddDate(0, 0, -6), Set{Weight: 140, Reps: 3}),
		entry("t2", "Deadlift", now.AddDate(0, 0, -4), Set{Weight: 140, Reps: 3}),
		entry("t3", "Deadlift", now.AddDate(0, 0, -2), Set{Weight: 140, Reps: 3}),
	)

	first, err := ComputeInsights(entries, nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := ComputeInsights(entries, nil, now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Expected identical output on run %d:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestComputeInsights_DuplicateSessionIDRejected(t *testing.T) {
	now := day(2024, 3, 1)
	sessions := []Session{
		{ID: "s1", CompletedAt: now.AddDate(0, 0, -1)},
		{ID: "s1", CompletedAt: now.AddDate(0, 0, -2)},
	}
	_, err := ComputeInsights(nil, sessions, now)
	if !errors.Is(err, ErrDuplicateSession) {
		t.Errorf("Expected ErrDuplicateSession, got %v", err)
	}
}

func TestComputeInsights_FutureSessionRejected(t *testing.T) {
	now := day(2024, 3, 1)
	sessions := []Session{{ID: "s1", CompletedAt: now.AddDate(0, 0, 1)}}
	_, err := ComputeInsights(nil, sessions, now)
	if !errors.Is(err, ErrSessionInFuture) {
		t.Errorf("Expected ErrSessionInFuture, got %v", err)
	}
}

func TestComputeInsights_StagnationContributesOne(t *testing.T) {
	now := day(2024, 3, 1)
	var entries []LogEntry
	for _, ex := range []string{"Bench Press", "Squat"} {
		for i := 0; i < 3; i++ {
			entries = append(entries,
				entry(ex+string(rune('1'+i)), ex, now.AddDate(0, 0, -6+i*2), Set{Weight: 100, Reps: 5}))
		}
	}

	got, err := ComputeInsights(entries, nil, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	count := 0
	if got.Hero != nil && got.Hero.Kind == InsightStagnationTip {
		count++
		if got.Hero.Exercise != "Bench Press" {
			t.Errorf("Expected first stagnant exercise surfaced, got %q", got.Hero.Exercise)
		}
	}
	for _, s := range got.Secondary {
		if s.Kind == InsightStagnationTip {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one stagnation insight, got %d", count)
	}
}
