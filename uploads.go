package main

import (
	"errors"
	"io"
	"net/http"

	"checkup/pkg/photostore"

	"github.com/gin-gonic/gin"
)

// uploadProbeHandler is the cheap capability probe: 200 when object storage
// is configured, 503 otherwise, so clients can decide their encoding
// strategy before committing to a full upload.
func uploadProbeHandler(store *photostore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Enabled() {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	}
}

// uploadImageHandler stores a single photo through the configured strategy
// and returns the resulting reference (remote URL+key, or inline payload
// when object storage is off).
func uploadImageHandler(store *photostore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "message": "no file provided"})
			return
		}
		propertyID := c.PostForm("propertyId")

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "message": "could not read file"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "message": "could not read file"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		ref, err := store.Store(c.Request.Context(), data, fileHeader.Filename, contentType, propertyID)
		if err != nil {
			var ve *photostore.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "rule": ve.Rule, "message": ve.Message})
				return
			}
			var ue *photostore.UploadError
			if errors.As(err, &ue) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed", "message": ue.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "message": "unexpected error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"reference": ref,
		})
	}
}
