package firestore

import (
	"cloud.google.com/go/firestore"

	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Users() *Collection[types.UserRecord] {
	return &Collection[types.UserRecord]{
		Ref:           c.fs.Collection("users"),
		ToFirestore:   UserToFirestore,
		FromFirestore: FirestoreToUser,
	}
}

func (c *Client) Executions() *Collection[types.ExecutionRecord] {
	return &Collection[types.ExecutionRecord]{
		Ref:           c.fs.Collection("executions"),
		ToFirestore:   ExecutionToFirestore,
		FromFirestore: FirestoreToExecution,
	}
}

// Sessions are sub-collections of Users: users/{uid}/sessions/{id}
func (c *Client) Sessions(userId string) *Collection[progress.Session] {
	return &Collection[progress.Session]{
		Ref:           c.fs.Collection("users").Doc(userId).Collection("sessions"),
		ToFirestore:   SessionToFirestore,
		FromFirestore: FirestoreToSession,
	}
}

// SetLogs are sub-collections of Users: users/{uid}/set_logs/{id}
// One document per exercise per session, carrying the sets performed.
func (c *Client) SetLogs(userId string) *Collection[progress.LogEntry] {
	return &Collection[progress.LogEntry]{
		Ref:           c.fs.Collection("users").Doc(userId).Collection("set_logs"),
		ToFirestore:   LogEntryToFirestore,
		FromFirestore: FirestoreToLogEntry,
	}
}

// Challenges are sub-collections of Users: users/{uid}/challenges/{id}
func (c *Client) Challenges(userId string) *Collection[progress.ChallengeAssignment] {
	return &Collection[progress.ChallengeAssignment]{
		Ref:           c.fs.Collection("users").Doc(userId).Collection("challenges"),
		ToFirestore:   ChallengeToFirestore,
		FromFirestore: FirestoreToChallenge,
	}
}

// InsightSnapshots are sub-collections of Users: users/{uid}/insight_snapshots/{id}
func (c *Client) InsightSnapshots(userId string) *Collection[types.InsightSnapshot] {
	return &Collection[types.InsightSnapshot]{
		Ref:           c.fs.Collection("users").Doc(userId).Collection("insight_snapshots"),
		ToFirestore:   SnapshotToFirestore,
		FromFirestore: FirestoreToSnapshot,
	}
}

// InsightMarkers are sub-collections of Users: users/{uid}/insight_markers/{day}
// The document ID is the calendar day (YYYY-MM-DD).
func (c *Client) InsightMarkers(userId string) *Collection[types.InsightMarkerDay] {
	return &Collection[types.InsightMarkerDay]{
		Ref:           c.fs.Collection("users").Doc(userId).Collection("insight_markers"),
		ToFirestore:   MarkerDayToFirestore,
		FromFirestore: FirestoreToMarkerDay,
	}
}
