package models

import "time"

// Submission is one monthly facility check-up report. A row is immutable once
// inserted; there is no update or delete path.
type Submission struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"-"`
	PublicID           string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	ReporterName       string    `gorm:"size:150;not null;index" json:"reporterName"`
	BranchName         string    `gorm:"size:64;not null" json:"branchName"`
	DateStarted        time.Time `gorm:"not null" json:"dateStarted"`
	DateEnded          time.Time `gorm:"not null" json:"dateEnded"`
	SubmissionDate     time.Time `gorm:"not null;index" json:"submissionDate"`
	AdditionalComments *string   `gorm:"size:1000" json:"additionalComments"`
	// Client metadata, informational only.
	UserAgent        string `gorm:"size:512" json:"userAgent,omitempty"`
	ScreenResolution string `gorm:"size:32" json:"screenResolution,omitempty"`
	Timezone         string `gorm:"size:64" json:"timezone,omitempty"`

	Properties []PropertyReport `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"properties"`
}

// PropertyReport records the condition of one office property within a
// submission. The form layer clears comments and photos when the condition is
// not "Needs Fixing"; readers must not rely on that holding for old rows.
type PropertyReport struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	SubmissionID uint      `gorm:"index;not null" json:"-"`
	PropertyID   string    `gorm:"size:64;not null" json:"propertyId"`
	PropertyName string    `gorm:"size:128;not null" json:"propertyName"`
	Condition    string    `gorm:"size:32;not null" json:"condition"`
	Comments     *string   `gorm:"size:500" json:"comments"`

	Photos []Photo `gorm:"foreignKey:PropertyReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"photos"`
}

// Photo holds one uploaded image for a property report. Exactly one data
// location is set: Base64 for inline storage or URL+StorageKey when the bytes
// live in object storage.
type Photo struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
	PropertyReportID uint      `gorm:"index;not null" json:"-"`
	PropertyID       string    `gorm:"size:64;not null" json:"propertyId"`
	FileName         string    `gorm:"size:255;not null" json:"filename"`
	MimeType         string    `gorm:"size:128;not null" json:"mimeType"`
	Size             int64     `gorm:"not null" json:"size"`
	Base64           string    `gorm:"type:text" json:"base64,omitempty"`
	URL              string    `gorm:"size:1024" json:"url,omitempty"`
	StorageKey       string    `gorm:"size:512" json:"obsKey,omitempty"`
}
