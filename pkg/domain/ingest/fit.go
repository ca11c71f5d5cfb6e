package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/coachpulse/server/pkg/domain/progress"
)

var titleCaser = cases.Title(language.English)

// FromFIT imports strength sets recorded on a watch. Each Set message in
// the file becomes one set; sets are grouped into log entries by exercise
// category. The whole file is treated as one session keyed by the file's
// creation time.
func FromFIT(data []byte) ([]progress.LogEntry, *progress.Session, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty FIT data")
	}

	dec := decoder.New(bytes.NewReader(data))

	var startTime time.Time
	type setAcc struct {
		name string
		sets []progress.Set
	}
	var order []string
	accs := make(map[string]*setAcc)

	for dec.Next() {
		fitData, err := dec.Decode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}

		for i := range fitData.Messages {
			msg := &fitData.Messages[i]
			switch msg.Num {
			case typedef.MesgNumFileId:
				fileId := mesgdef.NewFileId(msg)
				if startTime.IsZero() && !fileId.TimeCreated.IsZero() {
					startTime = fileId.TimeCreated.UTC()
				}

			case typedef.MesgNumSet:
				set := mesgdef.NewSet(msg)
				if set.SetType != typedef.SetTypeActive {
					continue // rest markers carry no lift data
				}
				name := exerciseNameFromCategories(set.Category)
				acc, ok := accs[name]
				if !ok {
					acc = &setAcc{name: name}
					accs[name] = acc
					order = append(order, name)
				}

				reps := 0
				if set.Repetitions != basetype.Uint16Invalid {
					reps = int(set.Repetitions)
				}
				weight := 0.0
				if set.Weight != basetype.Uint16Invalid {
					weight = set.WeightScaled()
				}
				acc.sets = append(acc.sets, progress.Set{Weight: weight, Reps: reps})

				if startTime.IsZero() && !set.StartTime.IsZero() {
					startTime = set.StartTime.UTC()
				}
			}
		}
	}

	if len(order) == 0 {
		return nil, nil, fmt.Errorf("no active set messages in FIT file")
	}

	session := &progress.Session{
		ID:          fmt.Sprintf("fit-%d", startTime.Unix()),
		CompletedAt: startTime,
	}

	entries := make([]progress.LogEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, progress.LogEntry{
			SessionID:    session.ID,
			ExerciseName: name,
			CompletedAt:  startTime,
			Sets:         accs[name].sets,
		})
	}
	return entries, session, nil
}

// exerciseNameFromCategories turns FIT exercise categories into a display
// name ("bench_press" -> "Bench Press"). Files from older watches omit the
// category entirely.
func exerciseNameFromCategories(categories []typedef.ExerciseCategory) string {
	if len(categories) == 0 || categories[0] == typedef.ExerciseCategoryInvalid {
		return "Unknown Exercise"
	}
	raw := categories[0].String()
	return titleCaser.String(strings.ReplaceAll(raw, "_", " "))
}
