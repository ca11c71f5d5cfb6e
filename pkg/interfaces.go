package shared

import (
	"context"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
	GetUser(ctx context.Context, id string) (*types.UserRecord, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) error

	// Refresh count (for tier limits)
	IncrementRefreshCount(ctx context.Context, userID string) error
	ResetRefreshCount(ctx context.Context, userID string) error

	// Workout data, pre-joined for the engine
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error)
	ListLogEntries(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error)

	// GetActiveChallenge returns nil with no error when the client has no
	// active assignment.
	GetActiveChallenge(ctx context.Context, userID string) (*progress.ChallengeAssignment, error)

	// Insight snapshots
	SetInsightSnapshot(ctx context.Context, userID string, snap *types.InsightSnapshot) error
	GetLatestInsightSnapshot(ctx context.Context, userID string) (*types.InsightSnapshot, error)

	// Dismissed/notified insight kinds, keyed by (userID, calendar day).
	// Owned by callers; the engine itself never reads these.
	GetInsightMarkers(ctx context.Context, userID string, day string) ([]string, error)
	AddInsightMarker(ctx context.Context, userID string, day string, kind string) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Notification Interfaces ---

type NotificationService interface {
	SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}
