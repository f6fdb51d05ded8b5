package photostore

import "fmt"

// Rules a photo can violate before any encoding or network work happens.
const (
	RuleType = "type"
	RuleSize = "size"
)

// ValidationError reports a photo that violates upload policy. It is raised
// before any bytes are encoded or sent anywhere.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("photo rejected (%s): %s", e.Rule, e.Message)
}

// UploadError wraps a failed object-storage call. It is fatal for that photo
// only and never triggers an inline fallback; the caller decides whether to
// retry or abandon the photo.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "object storage upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }
