package report

import (
	"fmt"
	"log"
	"os"
	"time"

	"checkup/models"
	rpt "checkup/pkg/report"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// Run prints the reporter summary table, or one reporter's submission
// history when reporter is non-empty. Same aggregation the admin API uses.
func Run(reporter string) {
	gdb := mustDBFromEnv()

	if reporter != "" {
		var subs []models.Submission
		if err := gdb.Preload("Properties.Photos").
			Where("TRIM(reporter_name) = ?", reporter).
			Order("submission_date DESC").
			Find(&subs).Error; err != nil {
			log.Fatalf("history query failed: %v", err)
		}
		for _, entry := range rpt.History(subs) {
			fmt.Printf("%s|%s|%s|%d needs fixing\n",
				entry.ID, entry.BranchName, entry.SubmissionDate.Format(time.RFC3339), len(entry.NeedsFixing))
			for _, item := range entry.NeedsFixing {
				comments := ""
				if item.Comments != nil {
					comments = *item.Comments
				}
				fmt.Printf("  %s: %s (%d photos)\n", item.PropertyName, comments, len(item.Photos))
			}
		}
		return
	}

	var rows []struct {
		ReporterName   string
		SubmissionDate *time.Time
	}
	if err := gdb.Model(&models.Submission{}).
		Select("reporter_name, submission_date").
		Scan(&rows).Error; err != nil {
		log.Fatalf("query failed: %v", err)
	}
	recs := make([]rpt.SubmissionRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, rpt.SubmissionRecord{ReporterName: r.ReporterName, SubmissionDate: r.SubmissionDate})
	}
	fmt.Printf("Reporters (%d rows):\n", len(rows))
	for _, s := range rpt.Summarize(recs) {
		last := "-"
		if s.LastSubmissionDate != nil {
			last = s.LastSubmissionDate.Format(time.RFC3339)
		}
		fmt.Printf("  %-30s submissions=%-4d last=%s\n", s.ReporterName, s.SubmissionsCount, last)
	}
}
