package report

import (
	"sort"
	"time"

	"checkup/models"
)

// PhotoMeta is the photo projection for history views: metadata only, never
// the inline payload.
type PhotoMeta struct {
	FileName   string `json:"filename"`
	URL        string `json:"url,omitempty"`
	StorageKey string `json:"obsKey,omitempty"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
}

// NeedsFixingItem is a property report whose condition is exactly
// "Needs Fixing".
type NeedsFixingItem struct {
	ID           uint        `json:"id"`
	PropertyID   string      `json:"propertyId"`
	PropertyName string      `json:"propertyName"`
	Comments     *string     `json:"comments"`
	Photos       []PhotoMeta `json:"photos"`
}

// HistoryEntry is one submission in a reporter's history view.
type HistoryEntry struct {
	ID                 string            `json:"id"`
	ReporterName       string            `json:"reporterName"`
	BranchName         string            `json:"branchName"`
	DateStarted        time.Time         `json:"dateStarted"`
	DateEnded          time.Time         `json:"dateEnded"`
	SubmissionDate     time.Time         `json:"submissionDate"`
	AdditionalComments *string           `json:"additionalComments"`
	NeedsFixing        []NeedsFixingItem `json:"needsFixing"`
}

// History projects one reporter's submissions into the admin drill-down view,
// newest first. Only property reports with condition exactly
// ConditionNeedsFixing appear; comments or photos attached to other
// conditions by old or dirty rows are filtered out here, not rejected.
// An unknown reporter yields an empty list, not an error.
func History(subs []models.Submission) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(subs))
	for _, sub := range subs {
		entry := HistoryEntry{
			ID:                 sub.PublicID,
			ReporterName:       sub.ReporterName,
			BranchName:         sub.BranchName,
			DateStarted:        sub.DateStarted,
			DateEnded:          sub.DateEnded,
			SubmissionDate:     sub.SubmissionDate,
			AdditionalComments: sub.AdditionalComments,
			NeedsFixing:        []NeedsFixingItem{},
		}
		for _, prop := range sub.Properties {
			if prop.Condition != ConditionNeedsFixing {
				continue
			}
			item := NeedsFixingItem{
				ID:           prop.ID,
				PropertyID:   prop.PropertyID,
				PropertyName: prop.PropertyName,
				Comments:     prop.Comments,
				Photos:       make([]PhotoMeta, 0, len(prop.Photos)),
			}
			for _, ph := range prop.Photos {
				item.Photos = append(item.Photos, PhotoMeta{
					FileName:   ph.FileName,
					URL:        ph.URL,
					StorageKey: ph.StorageKey,
					MimeType:   ph.MimeType,
					Size:       ph.Size,
				})
			}
			entry.NeedsFixing = append(entry.NeedsFixing, item)
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmissionDate.After(out[j].SubmissionDate)
	})
	return out
}
