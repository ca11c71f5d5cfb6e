package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	shared "github.com/coachpulse/server/pkg"
	"github.com/coachpulse/server/pkg/bootstrap"
	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/domain/tier"
	"github.com/coachpulse/server/pkg/framework"
	"github.com/coachpulse/server/pkg/infrastructure/ai"
	infrapubsub "github.com/coachpulse/server/pkg/infrastructure/pubsub"
	"github.com/coachpulse/server/pkg/types"
)

const cloudEventSource = "//coachpulse/functions/insights"

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("RefreshInsights", RefreshInsights)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
	})
	return svc, svcErr
}

// RefreshInsights is the entry point
func RefreshInsights(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent("insights", svc, refreshHandler)(ctx, e)
}

// refreshHandler runs the analytics engine for one client and persists the
// result as a snapshot.
func refreshHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	req, err := parseRefreshRequest(e)
	if err != nil {
		return nil, err
	}

	user, err := fwCtx.Service.DB.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", req.UserID, err)
	}

	if tier.ShouldResetRefreshCount(user) {
		if err := fwCtx.Service.DB.ResetRefreshCount(ctx, user.UserID); err != nil {
			fwCtx.Logger.Warn("Failed to reset refresh count", "error", err)
		} else {
			user.RefreshCountThisMonth = 0
		}
	}

	if allowed, reason := tier.CanRefresh(user); !allowed {
		fwCtx.Logger.Info("Refresh denied by tier limit", "reason", reason)
		return map[string]interface{}{
			"status": types.StatusSkipped,
			"reason": reason,
		}, nil
	}

	now := time.Now()
	snapshot, err := computeSnapshot(ctx, fwCtx.Service.DB, user.UserID, now)
	if err != nil {
		return nil, err
	}

	// Pro-tier hero messages go through the AI phraser. A phrasing failure
	// never fails the refresh.
	if snapshot.Hero != nil && tier.HasAIPhrasing(user) {
		phraser := &ai.HeroPhraser{APIKey: fwCtx.Service.Config.GeminiAPIKey}
		phrased, err := phraser.RephraseHero(ctx, snapshot.Hero, snapshot.Streak)
		if err != nil {
			fwCtx.Logger.Warn("AI phrasing failed, keeping template message", "error", err)
		} else if phrased != "" {
			snapshot.Hero.Message = phrased
		}
	}

	if err := fwCtx.Service.DB.SetInsightSnapshot(ctx, user.UserID, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if err := fwCtx.Service.DB.IncrementRefreshCount(ctx, user.UserID); err != nil {
		fwCtx.Logger.Warn("Failed to increment refresh count", "error", err)
	}

	archiveSnapshot(ctx, fwCtx, snapshot)
	publishComputedEvent(ctx, fwCtx, snapshot)
	notifyHero(ctx, fwCtx, user, snapshot, now)

	heroKind := ""
	if snapshot.Hero != nil {
		heroKind = string(snapshot.Hero.Kind)
	}

	return map[string]interface{}{
		"status":          types.StatusSuccess,
		"snapshot_id":     snapshot.SnapshotID,
		"hero_kind":       heroKind,
		"secondary_count": len(snapshot.Secondary),
		"streak":          snapshot.Streak,
	}, nil
}

func parseRefreshRequest(e cloudevents.Event) (*types.RefreshRequest, error) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil {
		return nil, fmt.Errorf("failed to parse pubsub envelope: %w", err)
	}

	var req types.RefreshRequest
	if err := json.Unmarshal(msg.Message.Data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse refresh request: %w", err)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("refresh request missing user_id")
	}
	return &req, nil
}

// computeSnapshot loads the analytics window and runs the engine.
func computeSnapshot(ctx context.Context, db shared.Database, userID string, now time.Time) (*types.InsightSnapshot, error) {
	from := now.AddDate(0, 0, -progress.AnalyticsWindowDays)

	entries, err := db.ListLogEntries(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}
	sessions, err := db.ListSessions(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	challenge, err := db.GetActiveChallenge(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	insightSet, err := progress.ComputeInsights(entries, sessions, now)
	if err != nil {
		return nil, fmt.Errorf("insight computation rejected input: %w", err)
	}

	challengeStatus, err := progress.ComputeChallengeStatus(challenge, sessions, entries, now)
	if err != nil {
		return nil, fmt.Errorf("challenge computation rejected input: %w", err)
	}

	return &types.InsightSnapshot{
		SnapshotID: uuid.NewString(),
		UserID:     userID,
		ComputedAt: now.UTC(),
		Hero:       insightSet.Hero,
		Secondary:  insightSet.Secondary,
		Streak:     progress.ComputeStreak(progress.SessionDates(sessions), now),
		Challenge:  challengeStatus,
	}, nil
}

// archiveSnapshot writes the snapshot JSON to GCS for audit/debugging.
// Best effort.
func archiveSnapshot(ctx context.Context, fwCtx *framework.FrameworkContext, snapshot *types.InsightSnapshot) {
	bucketName := fwCtx.Service.Config.GCSArtifactBucket
	if bucketName == "" {
		return
	}

	jsonBytes, err := json.Marshal(snapshot)
	if err != nil {
		fwCtx.Logger.Warn("Failed to marshal snapshot for GCS", "error", err)
		return
	}

	gcsPath := fmt.Sprintf("insight_snapshots/%s/%s.json", snapshot.UserID, snapshot.SnapshotID)
	if err := fwCtx.Service.Store.Write(ctx, bucketName, gcsPath, jsonBytes); err != nil {
		fwCtx.Logger.Warn("Failed to upload snapshot to GCS", "error", err)
		return
	}
	fwCtx.Logger.Debug("Snapshot archived", "uri", fmt.Sprintf("gs://%s/%s", bucketName, gcsPath))
}

func publishComputedEvent(ctx context.Context, fwCtx *framework.FrameworkContext, snapshot *types.InsightSnapshot) {
	heroKind := ""
	if snapshot.Hero != nil {
		heroKind = string(snapshot.Hero.Kind)
	}

	computedEvent, err := infrapubsub.NewCloudEvent(
		cloudEventSource,
		"com.coachpulse.insights.computed",
		types.InsightsComputedEvent{
			UserID:     snapshot.UserID,
			SnapshotID: snapshot.SnapshotID,
			ComputedAt: snapshot.ComputedAt,
			HeroKind:   heroKind,
		},
	)
	if err != nil {
		fwCtx.Logger.Error("Failed to create computed event", "error", err)
		return
	}

	msgID, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicInsightsComputed, computedEvent)
	if err != nil {
		fwCtx.Logger.Error("Failed to publish computed event", "error", err)
		return
	}
	fwCtx.Logger.Info("Published computed event", "message_id", msgID)
}

// notifyHero pushes the hero insight to the client's devices, at most once
// per kind per calendar day.
func notifyHero(ctx context.Context, fwCtx *framework.FrameworkContext, user *types.UserRecord, snapshot *types.InsightSnapshot, now time.Time) {
	hero := snapshot.Hero
	if hero == nil || len(user.FCMTokens) == 0 {
		return
	}

	day := now.Format("2006-01-02")
	seen, err := fwCtx.Service.DB.GetInsightMarkers(ctx, user.UserID, day)
	if err != nil {
		fwCtx.Logger.Warn("Failed to load insight markers, skipping push", "error", err)
		return
	}
	for _, kind := range seen {
		if kind == string(hero.Kind) {
			fwCtx.Logger.Debug("Hero already notified today", "kind", kind)
			return
		}
	}

	err = fwCtx.Service.Notify.SendPushNotification(ctx, user.UserID, hero.Title, hero.Message, user.FCMTokens, map[string]string{
		"snapshot_id": snapshot.SnapshotID,
		"kind":        string(hero.Kind),
	})
	if err != nil {
		fwCtx.Logger.Warn("Failed to send hero push", "error", err)
		return
	}

	if err := fwCtx.Service.DB.AddInsightMarker(ctx, user.UserID, day, string(hero.Kind)); err != nil {
		fwCtx.Logger.Warn("Failed to record insight marker", "error", err)
	}
}
