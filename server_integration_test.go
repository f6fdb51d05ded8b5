package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"checkup/pkg/photostore"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	initDB()
	store, err := photostore.New(photostore.Config{})
	if err != nil {
		t.Fatalf("photostore init: %v", err)
	}
	r := gin.Default()
	setupRoutes(r, store, newWebhookNotifier())
	return r
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp := performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(body), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login %s failed status=%d body=%s", username, resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}
	return token
}

func checkupPayload(reporter string) map[string]any {
	return map[string]any{
		"reporterName":   reporter,
		"branchName":     "Head Office",
		"dateStarted":    "2024-01-01",
		"dateEnded":      "2024-01-31",
		"submissionDate": time.Now().UTC().Format(time.RFC3339),
		"properties": []map[string]any{
			{"id": "aircon", "name": "Aircon", "condition": "Good", "comments": nil, "photos": []any{}},
			{"id": "door", "name": "Door", "condition": "Needs Fixing", "comments": "hinge broken", "photos": []any{}},
		},
		"additionalComments": nil,
	}
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register reporter
	regBody, _ := json.Marshal(map[string]string{"username": "reporter1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	token := loginAs(t, r, "reporter1", "pass123")

	// 2. Submit a check-up
	body, _ := json.Marshal(checkupPayload("reporter1"))
	resp = performRequest(r, http.MethodPost, "/submit-checkup", bytes.NewBuffer(body), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("submit failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var submitResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &submitResp)
	if id, _ := submitResp["submissionId"].(string); id == "" {
		t.Fatalf("no submissionId in response: %+v", submitResp)
	}

	// 3. Invalid submission reports every violation
	bad := checkupPayload("reporter1")
	bad["branchName"] = "Nowhere"
	bad["dateEnded"] = "2023-12-01"
	body, _ = json.Marshal(bad)
	resp = performRequest(r, http.MethodPost, "/submit-checkup", bytes.NewBuffer(body), token, "application/json")
	if resp.Code != 400 {
		t.Fatalf("expected 400 for invalid submission, got %d body=%s", resp.Code, resp.Body.String())
	}
	var errResp struct {
		Details []map[string]string `json:"details"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &errResp)
	if len(errResp.Details) < 2 {
		t.Fatalf("expected all violations listed, got %s", resp.Body.String())
	}

	// 4. My submissions
	resp = performRequest(r, http.MethodGet, "/my-submissions", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("my-submissions failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Reporter cannot reach admin endpoints
	resp = performRequest(r, http.MethodGet, "/admin/submissions", nil, token, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for reporter on admin route, got %d", resp.Code)
	}

	// 6. Admin sees summaries and history
	adminToken := loginAs(t, r, "admin", "admin123")
	resp = performRequest(r, http.MethodGet, "/admin/submissions", nil, adminToken, "")
	if resp.Code != 200 {
		t.Fatalf("admin summaries failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/admin/submissions/reporter1", nil, adminToken, "")
	if resp.Code != 200 {
		t.Fatalf("reporter history failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var histResp struct {
		Submissions []struct {
			NeedsFixing []map[string]any `json:"needsFixing"`
		} `json:"submissions"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &histResp)
	if len(histResp.Submissions) == 0 || len(histResp.Submissions[0].NeedsFixing) == 0 {
		t.Fatalf("expected needsFixing drill-down in history: %s", resp.Body.String())
	}

	// 7. Unknown reporter history is an empty list, not an error
	resp = performRequest(r, http.MethodGet, "/admin/submissions/nobody-here", nil, adminToken, "")
	if resp.Code != 200 {
		t.Fatalf("expected 200 empty history, got %d", resp.Code)
	}

	// 8. User management
	createBody, _ := json.Marshal(map[string]string{"username": "newbie", "password": "pass123", "branch": "Branch A"})
	resp = performRequest(r, http.MethodPost, "/admin/users", bytes.NewBuffer(createBody), adminToken, "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("create user failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/admin/users", nil, adminToken, "")
	if resp.Code != 200 {
		t.Fatalf("list users failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodDelete, "/admin/users/999999", nil, adminToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting unknown user, got %d", resp.Code)
	}
	// Non-numeric ids must not reach the database as a WHERE clause.
	resp = performRequest(r, http.MethodDelete, "/admin/users/id%20%3D%20id%20OR%20username%3D%27admin%27", nil, adminToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting non-numeric user id, got %d", resp.Code)
	}
	loginAs(t, r, "admin", "admin123")

	// 9. Upload probe reports storage disabled
	resp = performRequest(r, http.MethodHead, "/upload-image", nil, token, "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 probe with storage disabled, got %d", resp.Code)
	}

	// 10. Anonymous access is denied
	unauth := performRequest(r, http.MethodGet, "/my-submissions", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
