package insights

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/coachpulse/server/pkg/bootstrap"
	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/framework"
	"github.com/coachpulse/server/pkg/testing/mocks"
	"github.com/coachpulse/server/pkg/types"
)

func newTestContext(db *mocks.MockDatabase, notify *mocks.MockNotificationService) *framework.FrameworkContext {
	return &framework.FrameworkContext{
		Service: &bootstrap.Service{
			DB:     db,
			Store:  &mocks.MockBlobStore{},
			Pub:    &mocks.MockPublisher{},
			Notify: notify,
			Config: &bootstrap.Config{ProjectID: "test-project"},
		},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		ExecutionID: "exec-1",
	}
}

func refreshEvent(t *testing.T, userID string) cloudevents.Event {
	t.Helper()
	payload, err := json.Marshal(types.RefreshRequest{UserID: userID})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var msg types.PubSubMessage
	msg.Message.Data = payload

	e := cloudevents.NewEvent()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//test")
	if err := e.SetData(cloudevents.ApplicationJSON, msg); err != nil {
		t.Fatalf("set event data: %v", err)
	}
	return e
}

// prSessions returns a month of data containing a clear squat PR.
func prData(now time.Time) ([]progress.LogEntry, []progress.Session) {
	d1 := now.AddDate(0, 0, -14)
	d2 := now.AddDate(0, 0, -2)

	entries := []progress.LogEntry{
		{SessionID: "s1", ExerciseName: "Squat", CompletedAt: d1, Sets: []progress.Set{{Weight: 80, Reps: 5}}},
		{SessionID: "s2", ExerciseName: "Squat", CompletedAt: d2, Sets: []progress.Set{{Weight: 90, Reps: 5}}},
	}
	sessions := []progress.Session{
		{ID: "s1", CompletedAt: d1},
		{ID: "s2", CompletedAt: d2},
	}
	return entries, sessions
}

func TestRefreshHandler_PersistsSnapshotAndNotifies(t *testing.T) {
	now := time.Now()
	entries, sessions := prData(now)

	var savedSnapshot *types.InsightSnapshot
	var markerKind string
	pushed := false

	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			reset := now
			return &types.UserRecord{UserID: id, Tier: "hobbyist", FCMTokens: []string{"tok"}, RefreshCountResetAt: &reset}, nil
		},
		ListLogEntriesFunc: func(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error) {
			return entries, nil
		},
		ListSessionsFunc: func(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error) {
			return sessions, nil
		},
		SetInsightSnapshotFunc: func(ctx context.Context, userID string, snap *types.InsightSnapshot) error {
			savedSnapshot = snap
			return nil
		},
		AddInsightMarkerFunc: func(ctx context.Context, userID string, day string, kind string) error {
			markerKind = kind
			return nil
		},
	}
	notify := &mocks.MockNotificationService{
		SendPushNotificationFunc: func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
			pushed = true
			return nil
		},
	}

	outputs, err := refreshHandler(context.Background(), refreshEvent(t, "user-1"), newTestContext(db, notify))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if savedSnapshot == nil {
		t.Fatal("expected snapshot to be persisted")
	}
	if savedSnapshot.Hero == nil || savedSnapshot.Hero.Kind != progress.InsightPersonalRecord {
		t.Errorf("expected personal_record hero, got %+v", savedSnapshot.Hero)
	}
	if !pushed {
		t.Error("expected hero push to be sent")
	}
	if markerKind != string(progress.InsightPersonalRecord) {
		t.Errorf("expected marker for hero kind, got %q", markerKind)
	}

	out, ok := outputs.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected outputs type %T", outputs)
	}
	if out["status"] != types.StatusSuccess {
		t.Errorf("expected SUCCESS status, got %v", out["status"])
	}
	if out["hero_kind"] != "personal_record" {
		t.Errorf("expected personal_record hero kind, got %v", out["hero_kind"])
	}
}

func TestRefreshHandler_TierLimitSkips(t *testing.T) {
	now := time.Now()
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			reset := now
			return &types.UserRecord{UserID: id, Tier: "hobbyist", RefreshCountThisMonth: 30, RefreshCountResetAt: &reset}, nil
		},
		SetInsightSnapshotFunc: func(ctx context.Context, userID string, snap *types.InsightSnapshot) error {
			t.Error("snapshot must not be written when tier-limited")
			return nil
		},
	}

	outputs, err := refreshHandler(context.Background(), refreshEvent(t, "user-1"), newTestContext(db, &mocks.MockNotificationService{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	out := outputs.(map[string]interface{})
	if out["status"] != types.StatusSkipped {
		t.Errorf("expected SKIPPED status, got %v", out["status"])
	}
}

func TestRefreshHandler_HeroAlreadyNotifiedToday(t *testing.T) {
	now := time.Now()
	entries, sessions := prData(now)

	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			reset := now
			return &types.UserRecord{UserID: id, Tier: "hobbyist", FCMTokens: []string{"tok"}, RefreshCountResetAt: &reset}, nil
		},
		ListLogEntriesFunc: func(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error) {
			return entries, nil
		},
		ListSessionsFunc: func(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error) {
			return sessions, nil
		},
		GetInsightMarkersFunc: func(ctx context.Context, userID string, day string) ([]string, error) {
			return []string{"personal_record"}, nil
		},
	}
	notify := &mocks.MockNotificationService{
		SendPushNotificationFunc: func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
			t.Error("push must not be sent twice for the same kind on one day")
			return nil
		},
	}

	if _, err := refreshHandler(context.Background(), refreshEvent(t, "user-1"), newTestContext(db, notify)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func TestRefreshHandler_EmptyHistoryStillSucceeds(t *testing.T) {
	now := time.Now()
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			reset := now
			return &types.UserRecord{UserID: id, Tier: "hobbyist", RefreshCountResetAt: &reset}, nil
		},
	}

	outputs, err := refreshHandler(context.Background(), refreshEvent(t, "user-1"), newTestContext(db, &mocks.MockNotificationService{}))
	if err != nil {
		t.Fatalf("handler failed on empty history: %v", err)
	}

	out := outputs.(map[string]interface{})
	if out["hero_kind"] != "" {
		t.Errorf("expected no hero for empty history, got %v", out["hero_kind"])
	}
	if out["streak"] != 0 {
		t.Errorf("expected zero streak, got %v", out["streak"])
	}
}

func TestParseRefreshRequest_MissingUserID(t *testing.T) {
	e := refreshEvent(t, "")
	if _, err := parseRefreshRequest(e); err == nil {
		t.Error("expected error for missing user_id")
	}
}
