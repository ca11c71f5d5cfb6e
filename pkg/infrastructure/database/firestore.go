package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/coachpulse/server/pkg/domain/progress"
	storage "github.com/coachpulse/server/pkg/storage/firestore"
	"github.com/coachpulse/server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
// It wraps our typed storage client
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	return a.storage.Executions().Doc(record.ExecutionID).Set(ctx, record)
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Executions().Doc(id).Update(ctx, data)
}

func (a *FirestoreAdapter) GetUser(ctx context.Context, id string) (*types.UserRecord, error) {
	return a.storage.Users().Doc(id).Get(ctx)
}

func (a *FirestoreAdapter) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Users().Doc(id).Update(ctx, data)
}

func (a *FirestoreAdapter) IncrementRefreshCount(ctx context.Context, userID string) error {
	_, err := a.Client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "refresh_count_this_month", Value: firestore.Increment(1)},
	})
	return err
}

func (a *FirestoreAdapter) ResetRefreshCount(ctx context.Context, userID string) error {
	return a.storage.Users().Doc(userID).Update(ctx, map[string]interface{}{
		"refresh_count_this_month": 0,
		"refresh_count_reset_at":   time.Now().UTC(),
	})
}

func (a *FirestoreAdapter) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error) {
	docs, err := a.storage.Sessions(userID).Query().
		Where("completed_at", ">=", from).
		Where("completed_at", "<=", to).
		OrderBy("completed_at", firestore.Asc).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]progress.Session, 0, len(docs))
	for _, d := range docs {
		sessions = append(sessions, *d)
	}
	return sessions, nil
}

func (a *FirestoreAdapter) ListLogEntries(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error) {
	docs, err := a.storage.SetLogs(userID).Query().
		Where("completed_at", ">=", from).
		Where("completed_at", "<=", to).
		OrderBy("completed_at", firestore.Asc).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]progress.LogEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, *d)
	}
	return entries, nil
}

func (a *FirestoreAdapter) GetActiveChallenge(ctx context.Context, userID string) (*progress.ChallengeAssignment, error) {
	docs, err := a.storage.Challenges(userID).Query().
		Where("is_active", "==", true).
		Limit(1).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (a *FirestoreAdapter) SetInsightSnapshot(ctx context.Context, userID string, snap *types.InsightSnapshot) error {
	return a.storage.InsightSnapshots(userID).Doc(snap.SnapshotID).Set(ctx, snap)
}

func (a *FirestoreAdapter) GetLatestInsightSnapshot(ctx context.Context, userID string) (*types.InsightSnapshot, error) {
	docs, err := a.storage.InsightSnapshots(userID).Query().
		OrderBy("computed_at", firestore.Desc).
		Limit(1).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (a *FirestoreAdapter) GetInsightMarkers(ctx context.Context, userID string, day string) ([]string, error) {
	// Query instead of Doc().Get() so a missing day is an empty result,
	// not a NotFound error.
	docs, err := a.storage.InsightMarkers(userID).Query().
		Where("day", "==", day).
		Limit(1).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0].Kinds, nil
}

func (a *FirestoreAdapter) AddInsightMarker(ctx context.Context, userID string, day string, kind string) error {
	ref := a.Client.Collection("users").Doc(userID).Collection("insight_markers").Doc(day)
	_, err := ref.Set(ctx, map[string]interface{}{
		"day":   day,
		"kinds": firestore.ArrayUnion(kind),
	}, firestore.MergeAll)
	return err
}
