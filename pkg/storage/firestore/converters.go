package firestore

import (
	"time"

	"github.com/coachpulse/server/pkg/domain/progress"
	"github.com/coachpulse/server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get float from map (Firestore numbers come back as
// int64 or float64 depending on how they were written)
func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		}
	}
	return 0
}

func getInt(m map[string]interface{}, key string) int {
	return int(getFloat(m, key))
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func getTimePtr(m map[string]interface{}, key string) *time.Time {
	t := getTime(m, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

// getStringSlice handles both shapes a string list shows up in: Firestore
// snapshots decode arrays as []interface{}, while our own ToFirestore maps
// carry []string directly.
func getStringSlice(m map[string]interface{}, key string) []string {
	switch raw := m[key].(type) {
	case []string:
		return append([]string(nil), raw...)
	case []interface{}:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// --- UserRecord Converters ---

func UserToFirestore(u *types.UserRecord) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":                  u.UserID,
		"display_name":             u.DisplayName,
		"tier":                     u.Tier,
		"is_admin":                 u.IsAdmin,
		"refresh_count_this_month": u.RefreshCountThisMonth,
		"created_at":               u.CreatedAt,
	}

	if u.TrialEndsAt != nil {
		m["trial_ends_at"] = *u.TrialEndsAt
	}
	if u.RefreshCountResetAt != nil {
		m["refresh_count_reset_at"] = *u.RefreshCountResetAt
	}
	if len(u.FCMTokens) > 0 {
		m["fcm_tokens"] = u.FCMTokens
	}

	return m
}

func FirestoreToUser(m map[string]interface{}) *types.UserRecord {
	return &types.UserRecord{
		UserID:                getString(m, "user_id"),
		DisplayName:           getString(m, "display_name"),
		Tier:                  getString(m, "tier"),
		IsAdmin:               getBool(m, "is_admin"),
		TrialEndsAt:           getTimePtr(m, "trial_ends_at"),
		RefreshCountThisMonth: getInt(m, "refresh_count_this_month"),
		RefreshCountResetAt:   getTimePtr(m, "refresh_count_reset_at"),
		FCMTokens:             getStringSlice(m, "fcm_tokens"),
		CreatedAt:             getTime(m, "created_at"),
	}
}

// --- ExecutionRecord Converters ---

func ExecutionToFirestore(r *types.ExecutionRecord) map[string]interface{} {
	m := map[string]interface{}{
		"execution_id": r.ExecutionID,
		"service":      r.Service,
		"user_id":      r.UserID,
		"trigger_type": r.TriggerType,
		"status":       r.Status,
		"started_at":   r.StartedAt,
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	if r.FinishedAt != nil {
		m["finished_at"] = *r.FinishedAt
	}
	return m
}

func FirestoreToExecution(m map[string]interface{}) *types.ExecutionRecord {
	return &types.ExecutionRecord{
		ExecutionID: getString(m, "execution_id"),
		Service:     getString(m, "service"),
		UserID:      getString(m, "user_id"),
		TriggerType: getString(m, "trigger_type"),
		Status:      getString(m, "status"),
		Error:       getString(m, "error"),
		StartedAt:   getTime(m, "started_at"),
		FinishedAt:  getTimePtr(m, "finished_at"),
	}
}

// --- Session Converters ---

func SessionToFirestore(s *progress.Session) map[string]interface{} {
	return map[string]interface{}{
		"session_id":   s.ID,
		"completed_at": s.CompletedAt,
	}
}

func FirestoreToSession(m map[string]interface{}) *progress.Session {
	return &progress.Session{
		ID:          getString(m, "session_id"),
		CompletedAt: getTime(m, "completed_at"),
	}
}

// --- LogEntry Converters ---

func LogEntryToFirestore(e *progress.LogEntry) map[string]interface{} {
	sets := make([]map[string]interface{}, len(e.Sets))
	for i, s := range e.Sets {
		sets[i] = map[string]interface{}{
			"weight": s.Weight,
			"reps":   s.Reps,
		}
	}
	return map[string]interface{}{
		"session_id":    e.SessionID,
		"exercise_name": e.ExerciseName,
		"completed_at":  e.CompletedAt,
		"sets":          sets,
	}
}

func FirestoreToLogEntry(m map[string]interface{}) *progress.LogEntry {
	entry := &progress.LogEntry{
		SessionID:    getString(m, "session_id"),
		ExerciseName: getString(m, "exercise_name"),
		CompletedAt:  getTime(m, "completed_at"),
	}

	if raw, ok := m["sets"].([]interface{}); ok {
		entry.Sets = make([]progress.Set, 0, len(raw))
		for _, item := range raw {
			sm, ok := item.(map[string]interface{})
			if !ok {
				entry.Sets = append(entry.Sets, progress.Set{})
				continue
			}
			entry.Sets = append(entry.Sets, progress.Set{
				Weight: getFloat(sm, "weight"),
				Reps:   getInt(sm, "reps"),
			})
		}
	}

	return entry
}

// --- ChallengeAssignment Converters ---

func ChallengeToFirestore(c *progress.ChallengeAssignment) map[string]interface{} {
	return map[string]interface{}{
		"challenge_type":    c.ChallengeType,
		"start_date":        c.StartDate,
		"end_date":          c.EndDate,
		"total_weeks":       c.TotalWeeks,
		"required_sessions": c.RequiredSessions,
		"is_active":         c.IsActive,
	}
}

func FirestoreToChallenge(m map[string]interface{}) *progress.ChallengeAssignment {
	return &progress.ChallengeAssignment{
		ChallengeType:    getString(m, "challenge_type"),
		StartDate:        getTime(m, "start_date"),
		EndDate:          getTime(m, "end_date"),
		TotalWeeks:       getInt(m, "total_weeks"),
		RequiredSessions: getInt(m, "required_sessions"),
		IsActive:         getBool(m, "is_active"),
	}
}

// --- InsightSnapshot Converters ---

func insightToMap(i *progress.Insight) map[string]interface{} {
	return map[string]interface{}{
		"kind":     string(i.Kind),
		"title":    i.Title,
		"subtitle": i.Subtitle,
		"message":  i.Message,
		"exercise": i.Exercise,
		"rank":     i.Rank,
	}
}

func mapToInsight(m map[string]interface{}) progress.Insight {
	return progress.Insight{
		Kind:     progress.InsightKind(getString(m, "kind")),
		Title:    getString(m, "title"),
		Subtitle: getString(m, "subtitle"),
		Message:  getString(m, "message"),
		Exercise: getString(m, "exercise"),
		Rank:     getInt(m, "rank"),
	}
}

func SnapshotToFirestore(s *types.InsightSnapshot) map[string]interface{} {
	m := map[string]interface{}{
		"snapshot_id": s.SnapshotID,
		"user_id":     s.UserID,
		"computed_at": s.ComputedAt,
		"streak":      s.Streak,
	}

	if s.Hero != nil {
		m["hero"] = insightToMap(s.Hero)
	}

	secondary := make([]map[string]interface{}, len(s.Secondary))
	for i := range s.Secondary {
		secondary[i] = insightToMap(&s.Secondary[i])
	}
	m["secondary"] = secondary

	if s.Challenge != nil {
		m["challenge"] = map[string]interface{}{
			"current_week":       s.Challenge.CurrentWeek,
			"days_remaining":     s.Challenge.DaysRemaining,
			"sessions_completed": s.Challenge.SessionsCompleted,
			"on_track":           s.Challenge.OnTrack,
			"percent_complete":   s.Challenge.PercentComplete,
		}
	}

	return m
}

func FirestoreToSnapshot(m map[string]interface{}) *types.InsightSnapshot {
	snap := &types.InsightSnapshot{
		SnapshotID: getString(m, "snapshot_id"),
		UserID:     getString(m, "user_id"),
		ComputedAt: getTime(m, "computed_at"),
		Streak:     getInt(m, "streak"),
	}

	if hm, ok := m["hero"].(map[string]interface{}); ok {
		hero := mapToInsight(hm)
		snap.Hero = &hero
	}

	if raw, ok := m["secondary"].([]interface{}); ok {
		snap.Secondary = make([]progress.Insight, 0, len(raw))
		for _, item := range raw {
			if im, ok := item.(map[string]interface{}); ok {
				snap.Secondary = append(snap.Secondary, mapToInsight(im))
			}
		}
	}

	if cm, ok := m["challenge"].(map[string]interface{}); ok {
		snap.Challenge = &progress.ChallengeStatus{
			CurrentWeek:       getInt(cm, "current_week"),
			DaysRemaining:     getInt(cm, "days_remaining"),
			SessionsCompleted: getInt(cm, "sessions_completed"),
			OnTrack:           getBool(cm, "on_track"),
			PercentComplete:   getFloat(cm, "percent_complete"),
		}
	}

	return snap
}

// --- InsightMarkerDay Converters ---

func MarkerDayToFirestore(d *types.InsightMarkerDay) map[string]interface{} {
	return map[string]interface{}{
		"day":   d.Day,
		"kinds": d.Kinds,
	}
}

func FirestoreToMarkerDay(m map[string]interface{}) *types.InsightMarkerDay {
	return &types.InsightMarkerDay{
		Day:   getString(m, "day"),
		Kinds: getStringSlice(m, "kinds"),
	}
}
