// Package ingest normalizes the assorted upstream log shapes into the
// engine's types. Historical clients and exports disagree on field names
// and numeric encodings; everything is mapped here so the progress engine
// only ever sees one shape.
package ingest

import (
	"strconv"
	"time"

	"github.com/coachpulse/server/pkg/domain/progress"
)

// toFloat coerces the numeric shapes Firestore and old JSON exports
// produce. Firestore returns int64 for integers, JSON gives float64, and
// some legacy clients logged numbers as strings. Anything else is 0: a
// malformed weight is permissively zeroed, never dropped, because fixing
// it up-stack would change user-visible totals.
func toFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// toTime accepts time.Time (Firestore), RFC 3339 strings (JSON exports),
// and epoch milliseconds (the oldest mobile client).
func toTime(m map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case time.Time:
			return t
		case string:
			if parsed, err := time.Parse(time.RFC3339, t); err == nil {
				return parsed
			}
		case float64:
			return time.UnixMilli(int64(t)).UTC()
		case int64:
			return time.UnixMilli(t).UTC()
		}
	}
	return time.Time{}
}

// LogEntries maps raw documents into engine log entries. Entries with no
// recognizable exercise name are kept under an empty name and filtered by
// the engine's window grouping, matching the old behavior.
func LogEntries(raw []map[string]any) []progress.LogEntry {
	out := make([]progress.LogEntry, 0, len(raw))
	for _, doc := range raw {
		entry := progress.LogEntry{
			SessionID:    toString(doc, "sessionId", "session_id"),
			ExerciseName: toString(doc, "exerciseName", "exercise_name", "exercise", "name"),
			CompletedAt:  toTime(doc, "sessionTimestamp", "session_timestamp", "completedAt", "completed_at", "timestamp"),
		}
		if sets, ok := doc["sets"].([]any); ok {
			for _, s := range sets {
				sm, ok := s.(map[string]any)
				if !ok {
					// Unreadable set still counts as a zero-volume set.
					entry.Sets = append(entry.Sets, progress.Set{})
					continue
				}
				entry.Sets = append(entry.Sets, progress.Set{
					Weight: toFloat(firstOf(sm, "weight", "weightKg", "weight_kg")),
					Reps:   int(toFloat(firstOf(sm, "reps", "repetitions"))),
				})
			}
		}
		out = append(out, entry)
	}
	return out
}

// Sessions maps raw session documents into engine sessions.
func Sessions(raw []map[string]any) []progress.Session {
	out := make([]progress.Session, 0, len(raw))
	for _, doc := range raw {
		out = append(out, progress.Session{
			ID:          toString(doc, "id", "sessionId", "session_id"),
			CompletedAt: toTime(doc, "completedAt", "completed_at", "date"),
		})
	}
	return out
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
