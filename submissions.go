package main

import (
	"log"
	"net/http"
	"time"

	"checkup/models"
	"checkup/pkg/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// submitCheckupHandler accepts one check-up form. Validation runs fully
// before any side-effecting work and reports every violated rule. The
// submission and its property reports are inserted as a unit; a partial
// failure rolls back and surfaces as a persistence error. The outbound
// webhook is best effort: its failure never overturns a stored submission.
func submitCheckupHandler(notifier *webhookNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in report.SubmissionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "message": "could not read JSON input"})
			return
		}
		if errs := report.ValidateSubmission(in); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
			return
		}

		sub := buildSubmission(in)
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&sub).Error
		}); err != nil {
			log.Printf("failed to save submission from %q: %v", in.ReporterName, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to save the submission"})
			return
		}

		resp := gin.H{
			"success":      true,
			"message":      "health check-up submitted successfully",
			"submissionId": sub.PublicID,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		}
		if err := notifier.Send(c.Request.Context(), in); err != nil {
			log.Printf("webhook delivery failed: %v", err)
			resp["warning"] = "submission stored but notification delivery failed"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// buildSubmission maps a validated input to persistence models. Dates parsed
// here were already checked by ValidateSubmission.
func buildSubmission(in report.SubmissionInput) models.Submission {
	started, _ := report.ParseDate(in.DateStarted)
	ended, _ := report.ParseDate(in.DateEnded)
	submitted, _ := time.Parse(time.RFC3339, in.SubmissionDate)

	sub := models.Submission{
		PublicID:           uuid.NewString(),
		ReporterName:       in.ReporterName,
		BranchName:         in.BranchName,
		DateStarted:        started,
		DateEnded:          ended,
		SubmissionDate:     submitted,
		AdditionalComments: in.AdditionalComments,
	}
	if in.Metadata != nil {
		sub.UserAgent = in.Metadata.UserAgent
		sub.ScreenResolution = in.Metadata.ScreenResolution
		sub.Timezone = in.Metadata.Timezone
	}
	for _, prop := range in.Properties {
		pr := models.PropertyReport{
			PropertyID:   prop.ID,
			PropertyName: prop.Name,
			Condition:    prop.Condition,
			Comments:     prop.Comments,
		}
		// The form clears comments and photos for conditions other than
		// "Needs Fixing"; enforce that on write so new rows stay clean.
		if prop.Condition != report.ConditionNeedsFixing {
			pr.Comments = nil
		} else {
			for _, ph := range prop.Photos {
				pr.Photos = append(pr.Photos, models.Photo{
					PropertyID: ph.PropertyID,
					FileName:   ph.FileName,
					MimeType:   ph.MimeType,
					Size:       ph.Size,
					Base64:     ph.Base64,
					URL:        ph.URL,
					StorageKey: ph.StorageKey,
				})
			}
		}
		sub.Properties = append(sub.Properties, pr)
	}
	return sub
}

// mySubmissionsHandler returns the caller's own submissions, matched by
// trimmed reporter name against the account username, newest first.
func mySubmissionsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var subs []models.Submission
	if err := db.Preload("Properties.Photos").
		Where("TRIM(reporter_name) = ?", user.Username).
		Order("submission_date DESC").
		Find(&subs).Error; err != nil {
		log.Printf("my-submissions query failed for %q: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}
