package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Report is the full diagnostic output.
type Report struct {
	Generated time.Time        `json:"generated"`
	Total     int              `json:"total"`
	Healthy   int              `json:"healthy"`
	Broken    int              `json:"broken"`
	Feeds     []FeedDiagnostic `json:"feeds"`
}

func newReport(now time.Time, feeds []FeedDiagnostic) Report {
	r := Report{Generated: now.UTC(), Total: len(feeds), Feeds: feeds}
	for _, d := range feeds {
		if d.Healthy() {
			r.Healthy++
		} else {
			r.Broken++
		}
	}
	return r
}

func writeJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, r Report) error {
	// errWriter keeps the first write error so the report body stays readable.
	ew := &errWriter{w: w}

	ew.printf("===============================================\n")
	ew.printf("Feed Diagnostic Report\n")
	ew.printf("Generated: %s\n", r.Generated.Format(time.RFC3339))
	ew.printf("Total Sources: %d\n", r.Total)
	ew.printf("===============================================\n\n")

	ew.printf("SUMMARY:\n")
	ew.printf("  Working: %d (%.1f%%)\n", r.Healthy, percent(r.Healthy, r.Total))
	ew.printf("  Broken: %d (%.1f%%)\n", r.Broken, percent(r.Broken, r.Total))

	counts := make(map[string]int)
	for _, d := range r.Feeds {
		counts[d.Status]++
	}
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	ew.printf("\nSTATUS BREAKDOWN:\n")
	for _, s := range statuses {
		ew.printf("  %s: %d\n", s, counts[s])
	}

	ew.printf("\nWORKING FEEDS (%d):\n", r.Healthy)
	ew.printf("-------------------------------------------\n")
	for _, d := range r.Feeds {
		if !d.Healthy() {
			continue
		}
		ew.printf("Title: %s\n", d.Title)
		ew.printf("  URL: %s\n", d.URL)
		ew.printf("  Items: %d | Invalid: %d | With image: %d | Date fallbacks: %d\n",
			d.ItemCount, d.InvalidEntries, d.WithImage, d.DateFallbacks)
		ew.printf("  Latest: %s | Response: %dms\n\n", d.LatestDate, d.ResponseTime)
	}

	ew.printf("\nBROKEN FEEDS (%d):\n", r.Broken)
	ew.printf("-------------------------------------------\n")
	for _, d := range r.Feeds {
		if d.Healthy() {
			continue
		}
		ew.printf("URL: %s\n", d.URL)
		ew.printf("  Status: %s | HTTP: %d\n", d.Status, d.HTTPCode)
		ew.printf("  Error: %s\n", d.ErrorMessage)
		ew.printf("  Response: %dms\n\n", d.ResponseTime)
	}

	return ew.err
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
