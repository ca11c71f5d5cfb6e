// Package progress computes ranked training insights and challenge progress
// from raw workout log records. All computation is pure: the package does no
// I/O and owns no state, so callers may invoke it concurrently for different
// clients with independent input snapshots.
package progress

import "time"

// Set is one performed set within a log entry. Upstream sources are
// permissive: a missing or non-numeric weight/reps arrives here as zero
// rather than being dropped, so zero-volume sets are legitimate data.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// LogEntry is one exercise's recorded sets within a session. Entries are
// pre-joined to their session by the storage layer.
type LogEntry struct {
	SessionID    string    `json:"sessionId"`
	ExerciseName string    `json:"exerciseName"`
	CompletedAt  time.Time `json:"completedAt"`
	Sets         []Set     `json:"sets"`
}

// Session is a single completed workout occurrence.
type Session struct {
	ID          string    `json:"id"`
	CompletedAt time.Time `json:"completedAt"`
}

// ChallengeAssignment is a fixed-length challenge a client is enrolled in.
// The store guarantees at most one active assignment per client.
type ChallengeAssignment struct {
	ChallengeType    string    `json:"challengeType"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	TotalWeeks       int       `json:"totalWeeks"`
	RequiredSessions int       `json:"requiredSessions"`
	IsActive         bool      `json:"isActive"`
}

// InsightKind identifies which detector produced an insight.
type InsightKind string

const (
	InsightPersonalRecord  InsightKind = "personal_record"
	InsightConsistency     InsightKind = "consistency"
	InsightStagnationTip   InsightKind = "stagnation_tip"
	InsightVolumeMilestone InsightKind = "volume_milestone"
)

// Insight is a derived, ephemeral message surfaced to the client. Insights
// are recomputed from scratch on every invocation and never persisted by
// this package.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Message  string      `json:"message"`
	Exercise string      `json:"exercise,omitempty"`
	Rank     int         `json:"rank"`
}

// InsightSet is the ranked output of ComputeInsights. An empty set (nil
// Hero, no Secondary) is a valid terminal state, not an error.
type InsightSet struct {
	Hero      *Insight  `json:"hero,omitempty"`
	Secondary []Insight `json:"secondary"`
}

// ChallengeStatus is the derived progress of an active challenge.
type ChallengeStatus struct {
	CurrentWeek       int     `json:"currentWeek"`
	DaysRemaining     int     `json:"daysRemaining"`
	SessionsCompleted int     `json:"sessionsCompleted"`
	OnTrack           bool    `json:"onTrack"`
	PercentComplete   float64 `json:"percentComplete"`
}
