// progress-inspect runs the analytics engine over a local workout export
// and prints the result. Useful for debugging why a client did (or did
// not) get a particular insight without touching production data.
//
// Accepts either a JSON export of log entries and sessions, or a raw FIT
// file from a watch:
//
//	progress-inspect -file export.json
//	progress-inspect -file workout.fit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/coachpulse/server/pkg/domain/ingest"
	"github.com/coachpulse/server/pkg/domain/progress"
)

type jsonExport struct {
	Entries  []map[string]any `json:"entries"`
	Sessions []map[string]any `json:"sessions"`
}

func main() {
	filePath := flag.String("file", "", "path to a JSON export or FIT file")
	asOf := flag.String("as-of", "", "reference date (YYYY-MM-DD, default today)")
	showSeries := flag.Bool("series", false, "print per-exercise max weight series")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: progress-inspect -file <export.json|workout.fit> [-as-of YYYY-MM-DD] [-series]")
		os.Exit(1)
	}

	now := time.Now()
	if *asOf != "" {
		parsed, err := time.Parse("2006-01-02", *asOf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -as-of date: %v\n", err)
			os.Exit(1)
		}
		// End of day so same-day sessions count
		now = parsed.Add(23 * time.Hour)
	}

	entries, sessions, err := loadData(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d log entries, %d sessions (as of %s)\n\n",
		len(entries), len(sessions), now.Format("2006-01-02"))

	insights, err := progress.ComputeInsights(entries, sessions, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine rejected input: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "INSIGHTS")
	if insights.Hero == nil {
		fmt.Fprintln(w, "  (none)")
	} else {
		fmt.Fprintf(w, "  hero\t%s\t%s\n", insights.Hero.Kind, insights.Hero.Title)
		for _, sec := range insights.Secondary {
			fmt.Fprintf(w, "  secondary\t%s\t%s\n", sec.Kind, sec.Title)
		}
	}
	fmt.Fprintln(w)

	streak := progress.ComputeStreak(progress.SessionDates(sessions), now)
	fmt.Fprintf(w, "STREAK\t%d days\n\n", streak)

	vol := progress.AggregateVolume(entries, progress.NewWindow(now, progress.AnalyticsWindowDays))
	fmt.Fprintf(w, "VOLUME\t%.0f kg total\n", vol.Total)
	for _, ev := range vol.PerExercise {
		fmt.Fprintf(w, "  %s\t%.0f kg\n", ev.Exercise, ev.Volume)
	}
	fmt.Fprintln(w)

	if *showSeries {
		fmt.Fprintln(w, "MAX WEIGHT SERIES")
		series := progress.MaxWeightSeries(entries, progress.NewWindow(now, progress.AnalyticsWindowDays))
		for _, s := range series {
			points := make([]string, len(s.Points))
			for i, p := range s.Points {
				points[i] = fmt.Sprintf("%.1f", p.MaxWeight)
			}
			fmt.Fprintf(w, "  %s\t%s\n", s.Exercise, strings.Join(points, " -> "))
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

func loadData(path string) ([]progress.LogEntry, []progress.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	if strings.HasSuffix(strings.ToLower(path), ".fit") {
		entries, session, err := ingest.FromFIT(data)
		if err != nil {
			return nil, nil, err
		}
		return entries, []progress.Session{*session}, nil
	}

	var export jsonExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, nil, fmt.Errorf("not valid JSON export: %w", err)
	}
	return ingest.LogEntries(export.Entries), ingest.Sessions(export.Sessions), nil
}
