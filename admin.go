package main

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"checkup/models"
	"checkup/pkg/report"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// listReportersHandler returns per-reporter summaries over all submissions.
// Recomputed on every request; there is no caching layer.
func listReportersHandler(c *gin.Context) {
	var rows []struct {
		ReporterName   string
		SubmissionDate *time.Time
	}
	if err := db.Model(&models.Submission{}).
		Select("reporter_name, submission_date").
		Scan(&rows).Error; err != nil {
		log.Printf("reporter summary query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to load submissions"})
		return
	}
	recs := make([]report.SubmissionRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, report.SubmissionRecord{ReporterName: r.ReporterName, SubmissionDate: r.SubmissionDate})
	}
	c.JSON(http.StatusOK, gin.H{"reporters": report.Summarize(recs)})
}

// reporterHistoryHandler returns one reporter's submission history with the
// needs-fixing drill-down. An unknown reporter yields an empty list.
func reporterHistoryHandler(c *gin.Context) {
	// gin URL-decodes path params; trim before matching.
	name := strings.TrimSpace(c.Param("reporterName"))
	var subs []models.Submission
	if err := db.Preload("Properties.Photos").
		Where("TRIM(reporter_name) = ?", name).
		Order("submission_date DESC").
		Find(&subs).Error; err != nil {
		log.Printf("history query failed for %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to load reporter history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reporterName": name,
		"submissions":  report.History(subs),
	})
}

func listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := db.Preload("Role").Order("created_at").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to list users"})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		role := roleReporter
		if u.Role.Name != "" {
			role = u.Role.Name
		}
		out = append(out, gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"email":     u.Email,
			"role":      role,
			"branch":    u.Branch,
			"createdAt": u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func createUserHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Branch   string `json:"branch"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "message": "could not read JSON input"})
		return
	}
	// reject before touching the identity store
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "message": "username and password are required"})
		return
	}
	roleName := req.Role
	if roleName == "" {
		roleName = roleReporter
	}
	if roleName != roleAdmin && roleName != roleReporter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "message": "role must be admin or reporter"})
		return
	}
	branch := req.Branch
	if branch == "" {
		branch = "Not Assigned"
	}

	username := strings.TrimSpace(req.Username)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate username", "message": "a user with this username already exists"})
		return
	}
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "role lookup failed"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to hash password"})
		return
	}
	rid := role.ID
	user := models.User{
		Username:       username,
		Email:          loginEmail(username),
		Branch:         branch,
		HashedPassword: hashed,
		RoleID:         &rid,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate username", "message": "a user with this username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to create user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      roleName,
		"branch":    user.Branch,
		"createdAt": user.CreatedAt,
	}})
}

func deleteUserHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "message": "user not found"})
		return
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "message": "user not found"})
		return
	}
	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failed", "message": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
