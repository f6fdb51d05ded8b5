package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation ceilings for a submitted check-up.
const (
	MinReporterNameLen   = 2
	MaxReporterNameLen   = 150
	MaxCommentLen        = 500
	MaxAdditionalLen     = 1000
	MaxPhotosPerProperty = 5
	MaxPhotoBytes        = 5 * 1024 * 1024
	MaxTotalPhotoBytes   = 20 * 1024 * 1024
)

// AllowedPhotoTypes is the image MIME allow-list.
var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

func AllowedPhotoType(mime string) bool {
	for _, t := range AllowedPhotoTypes {
		if t == mime {
			return true
		}
	}
	return false
}

// SubmissionInput is the wire shape of a submitted check-up form.
type SubmissionInput struct {
	ReporterName       string          `json:"reporterName"`
	BranchName         string          `json:"branchName"`
	DateStarted        string          `json:"dateStarted"`
	DateEnded          string          `json:"dateEnded"`
	SubmissionDate     string          `json:"submissionDate"`
	Properties         []PropertyInput `json:"properties"`
	AdditionalComments *string         `json:"additionalComments"`
	Metadata           *MetadataInput  `json:"metadata"`
}

type PropertyInput struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Condition string       `json:"condition"`
	Comments  *string      `json:"comments"`
	Photos    []PhotoInput `json:"photos"`
}

type PhotoInput struct {
	FileName   string `json:"filename"`
	Base64     string `json:"base64,omitempty"`
	URL        string `json:"url,omitempty"`
	StorageKey string `json:"obsKey,omitempty"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	PropertyID string `json:"propertyId"`
}

type MetadataInput struct {
	UserAgent        string `json:"userAgent,omitempty"`
	ScreenResolution string `json:"screenResolution,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
}

// FieldError pinpoints one violated rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDate accepts RFC3339 or a bare YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ValidateSubmission checks every rule and returns every violation, not just
// the first. It runs before any side-effecting work; an empty result means
// the input may be persisted.
func ValidateSubmission(in SubmissionInput) []FieldError {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Length applies to the name as submitted, counted in characters.
	nameLen := utf8.RuneCountInString(in.ReporterName)
	if nameLen < MinReporterNameLen {
		add("reporterName", "name is required (min %d characters)", MinReporterNameLen)
	} else if nameLen > MaxReporterNameLen {
		add("reporterName", "name must not exceed %d characters", MaxReporterNameLen)
	}

	if !KnownBranch(in.BranchName) {
		add("branchName", "please select a branch")
	}

	started, errStarted := ParseDate(in.DateStarted)
	if errStarted != nil {
		add("dateStarted", "please provide a valid start date")
	}
	ended, errEnded := ParseDate(in.DateEnded)
	if errEnded != nil {
		add("dateEnded", "please provide a valid end date")
	}
	if errStarted == nil && errEnded == nil && ended.Before(started) {
		add("dateEnded", "date ended must be the same or later than date started")
	}

	if _, err := time.Parse(time.RFC3339, in.SubmissionDate); err != nil {
		add("submissionDate", "submission date must be an RFC3339 timestamp")
	}

	if in.AdditionalComments != nil && len(*in.AdditionalComments) > MaxAdditionalLen {
		add("additionalComments", "additional comments must not exceed %d characters", MaxAdditionalLen)
	}

	if len(in.Properties) == 0 {
		add("properties", "at least one property report is required")
	}

	var totalPhotoBytes int64
	for i, prop := range in.Properties {
		field := fmt.Sprintf("properties[%d]", i)
		if !KnownProperty(prop.ID) {
			add(field+".id", "unknown property %q", prop.ID)
		}
		if !KnownCondition(prop.Condition) {
			add(field+".condition", "condition must be one of Good, Needs Fixing, Not Available")
		}
		if prop.Condition == ConditionNeedsFixing {
			if prop.Comments == nil || strings.TrimSpace(*prop.Comments) == "" {
				add(field+".comments", "comments are required when condition is 'Needs Fixing'")
			}
		}
		if prop.Comments != nil && len(*prop.Comments) > MaxCommentLen {
			add(field+".comments", "comments must not exceed %d characters", MaxCommentLen)
		}
		if len(prop.Photos) > MaxPhotosPerProperty {
			add(field+".photos", "at most %d photos per property", MaxPhotosPerProperty)
		}
		for j, ph := range prop.Photos {
			photoField := fmt.Sprintf("%s.photos[%d]", field, j)
			if ph.Base64 == "" && ph.URL == "" {
				add(photoField, "photo must have either inline data or a storage URL")
			}
			if !AllowedPhotoType(ph.MimeType) {
				add(photoField+".mimeType", "invalid file type, allowed: %s", strings.Join(AllowedPhotoTypes, ", "))
			}
			if ph.Size > MaxPhotoBytes {
				add(photoField+".size", "file size exceeds %dMB limit", MaxPhotoBytes/1024/1024)
			}
			totalPhotoBytes += ph.Size
		}
	}
	if totalPhotoBytes > MaxTotalPhotoBytes {
		add("properties", "total photo size exceeds %dMB limit", MaxTotalPhotoBytes/1024/1024)
	}

	return errs
}
