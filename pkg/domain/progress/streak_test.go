package progress

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestComputeStreak_Empty(t *testing.T) {
	now := day(2024, 1, 3)
	if got := ComputeStreak(nil, now); got != 0 {
		t.Errorf("Expected 0 for no dates, got %d", got)
	}
}

func TestComputeStreak_ThreeConsecutiveDays(t *testing.T) {
	// Sessions on Jan 1..3, now = Jan 3.
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)}
	if got := ComputeStreak(dates, day(2024, 1, 3)); got != 3 {
		t.Errorf("Expected streak=3, got %d", got)
	}
}

func TestComputeStreak_RequiresToday(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2)}
	if got := ComputeStreak(dates, day(2024, 1, 3)); got != 0 {
		t.Errorf("Expected 0 when today has no log, got %d", got)
	}
}

func TestComputeStreak_GraceDay(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2)}
	got := ComputeStreakWithOptions(dates, day(2024, 1, 3), StreakOptions{GraceDays: 1})
	if got != 2 {
		t.Errorf("Expected streak=2 with one grace day, got %d", got)
	}
}

func TestComputeStreak_GapBreaks(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 3)}
	if got := ComputeStreak(dates, day(2024, 1, 3)); got != 1 {
		t.Errorf("Expected streak=1 across a gap, got %d", got)
	}
}

func TestComputeStreak_SameDayCountsOnce(t *testing.T) {
	dates := []time.Time{
		day(2024, 1, 2),
		time.Date(2024, 1, 3, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 19, 30, 0, 0, time.UTC),
	}
	if got := ComputeStreak(dates, day(2024, 1, 3)); got != 2 {
		t.Errorf("Expected two logs on one day to count once (streak=2), got %d", got)
	}
}

func TestComputeStreak_IgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 1, 0, 0, time.UTC),
	}
	now := time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC)
	if got := ComputeStreak(dates, now); got != 2 {
		t.Errorf("Expected streak=2 regardless of time-of-day, got %d", got)
	}
}
