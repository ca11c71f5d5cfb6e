// Package types holds the records shared between the storage layer, the
// cloud functions, and the HTTP API.
package types

import (
	"time"

	"github.com/coachpulse/server/pkg/domain/progress"
)

// PubSubMessage is the payload of a Pub/Sub event via Cloud Event.
type PubSubMessage struct {
	Message struct {
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}

// UserRecord is a coached client's account document.
type UserRecord struct {
	UserID                string
	DisplayName           string
	Tier                  string // "hobbyist" or "pro"
	IsAdmin               bool
	TrialEndsAt           *time.Time
	RefreshCountThisMonth int
	RefreshCountResetAt   *time.Time
	FCMTokens             []string
	CreatedAt             time.Time
}

// InsightSnapshot is the persisted result of one engine run. The engine
// itself never stores anything; snapshots exist so the app can render the
// last known result instantly while a refresh is in flight.
type InsightSnapshot struct {
	SnapshotID string                    `json:"snapshot_id"`
	UserID     string                    `json:"user_id"`
	ComputedAt time.Time                 `json:"computed_at"`
	Hero       *progress.Insight         `json:"hero,omitempty"`
	Secondary  []progress.Insight        `json:"secondary"`
	Streak     int                       `json:"streak"`
	Challenge  *progress.ChallengeStatus `json:"challenge,omitempty"`
}

// InsightMarkerDay records which insight kinds a client has already been
// notified about (or has dismissed) on one calendar day. The document ID is
// the day in YYYY-MM-DD form, so a push for the same hero kind is sent at
// most once per day.
type InsightMarkerDay struct {
	Day   string
	Kinds []string
}

// ExecutionRecord tracks one function invocation for observability.
type ExecutionRecord struct {
	ExecutionID string
	Service     string
	UserID      string
	TriggerType string
	Status      string
	Error       string
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Execution statuses.
const (
	StatusStarted = "STARTED"
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
	StatusSkipped = "SKIPPED"
)

// RefreshRequest is the Pub/Sub payload that triggers an insight refresh
// for one client.
type RefreshRequest struct {
	UserID string `json:"user_id"`
}

// InsightsComputedEvent is published after a successful engine run.
type InsightsComputedEvent struct {
	UserID     string    `json:"user_id"`
	SnapshotID string    `json:"snapshot_id"`
	ComputedAt time.Time `json:"computed_at"`
	HeroKind   string    `json:"hero_kind,omitempty"`
}
