package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	SetExecutionFunc             func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc          func(ctx context.Context, id string, data map[string]interface{}) error
	GetUserFunc                  func(ctx context.Context, id string) (*types.UserRecord, error)
	UpdateUserFunc               func(ctx context.Context, id string, data map[string]interface{}) error
	IncrementRefreshCountFunc    func(ctx context.Context, userID string) error
	ResetRefreshCountFunc        func(ctx context.Context, userID string) error
	ListSessionsFunc             func(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error)
	ListLogEntriesFunc           func(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error)
	GetActiveChallengeFunc       func(ctx context.Context, userID string) (*progress.ChallengeAssignment, error)
	SetInsightSnapshotFunc       func(ctx context.Context, userID string, snap *types.InsightSnapshot) error
	GetLatestInsightSnapshotFunc func(ctx context.Context, userID string) (*types.InsightSnapshot, error)
	GetInsightMarkersFunc        func(ctx context.Context, userID string, day string) ([]string, error)
	AddInsightMarkerFunc         func(ctx context.Context, userID string, day string, kind string) error
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}
func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) GetUser(ctx context.Context, id string) (*types.UserRecord, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, fmt.Errorf("user not found")
}
func (m *MockDatabase) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) IncrementRefreshCount(ctx context.Context, userID string) error {
	if m.IncrementRefreshCountFunc != nil {
		return m.IncrementRefreshCountFunc(ctx, userID)
	}
	return nil
}
func (m *MockDatabase) ResetRefreshCount(ctx context.Context, userID string) error {
	if m.ResetRefreshCountFunc != nil {
		return m.ResetRefreshCountFunc(ctx, userID)
	}
	return nil
}
func (m *MockDatabase) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]progress.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, userID, from, to)
	}
	return nil, nil
}
func (m *MockDatabase) ListLogEntries(ctx context.Context, userID string, from, to time.Time) ([]progress.LogEntry, error) {
	if m.ListLogEntriesFunc != nil {
		return m.ListLogEntriesFunc(ctx, userID, from, to)
	}
	return nil, nil
}
func (m *MockDatabase) GetActiveChallenge(ctx context.Context, userID string) (*progress.ChallengeAssignment, error) {
	if m.GetActiveChallengeFunc != nil {
		return m.GetActiveChallengeFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockDatabase) SetInsightSnapshot(ctx context.Context, userID string, snap *types.InsightSnapshot) error {
	if m.SetInsightSnapshotFunc != nil {
		return m.SetInsightSnapshotFunc(ctx, userID, snap)
	}
	return nil
}
func (m *MockDatabase) GetLatestInsightSnapshot(ctx context.Context, userID string) (*types.InsightSnapshot, error) {
	if m.GetLatestInsightSnapshotFunc != nil {
		return m.GetLatestInsightSnapshotFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockDatabase) GetInsightMarkers(ctx context.Context, userID string, day string) ([]string, error) {
	if m.GetInsightMarkersFunc != nil {
		return m.GetInsightMarkersFunc(ctx, userID, day)
	}
	return nil, nil
}
func (m *MockDatabase) AddInsightMarker(ctx context.Context, userID string, day string, kind string) error {
	if m.AddInsightMarkerFunc != nil {
		return m.AddInsightMarkerFunc(ctx, userID, day, kind)
	}
	return nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}
func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Notifications ---
type MockNotificationService struct {
	SendPushNotificationFunc func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}

func (m *MockNotificationService) SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
	if m.SendPushNotificationFunc != nil {
		return m.SendPushNotificationFunc(ctx, userID, title, body, tokens, data)
	}
	return nil
}
