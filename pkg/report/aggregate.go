package report

import (
	"log"
	"sort"
	"strings"
	"time"
)

// SubmissionRecord is the slice of a submission the summary view needs.
// SubmissionDate may be nil for legacy rows imported without a timestamp.
type SubmissionRecord struct {
	ReporterName   string
	SubmissionDate *time.Time
}

// ReporterSummary aggregates all submissions filed under one reporter name.
// Derived on every request, never persisted.
type ReporterSummary struct {
	ReporterName       string     `json:"reporterName"`
	SubmissionsCount   int        `json:"submissionsCount"`
	LastSubmissionDate *time.Time `json:"lastSubmissionDate"`
}

// Summarize groups submissions by trimmed reporter name and computes the
// per-reporter count and most recent submission time. Records whose name is
// empty after trimming are skipped, not an error. Output is sorted by last
// submission time descending; when either side has no timestamp the pair
// compares equal and keeps its relative order.
func Summarize(records []SubmissionRecord) []ReporterSummary {
	byName := make(map[string]*ReporterSummary)
	order := make([]string, 0, len(records))

	for _, rec := range records {
		name := strings.TrimSpace(rec.ReporterName)
		if name == "" {
			log.Printf("skipping submission with empty reporter name")
			continue
		}
		s, ok := byName[name]
		if !ok {
			s = &ReporterSummary{ReporterName: name}
			byName[name] = s
			order = append(order, name)
		}
		s.SubmissionsCount++
		if rec.SubmissionDate != nil {
			if s.LastSubmissionDate == nil || rec.SubmissionDate.After(*s.LastSubmissionDate) {
				d := *rec.SubmissionDate
				s.LastSubmissionDate = &d
			}
		}
	}

	out := make([]ReporterSummary, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastSubmissionDate, out[j].LastSubmissionDate
		if a == nil || b == nil {
			return false
		}
		return a.After(*b)
	})
	return out
}
