package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"checkup/pkg/report"
)

// webhookNotifier forwards accepted submissions to an external workflow with
// a single best-effort POST. No retries; a failure is the caller's to log.
type webhookNotifier struct {
	url    string
	key    string
	client *http.Client
}

// newWebhookNotifier reads WEBHOOK_URL / WEBHOOK_KEY. An empty URL disables
// delivery; Send then becomes a no-op.
func newWebhookNotifier() *webhookNotifier {
	return &webhookNotifier{
		url:    os.Getenv("WEBHOOK_URL"),
		key:    os.Getenv("WEBHOOK_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *webhookNotifier) Send(ctx context.Context, in report.SubmissionInput) error {
	if n == nil || n.url == "" {
		return nil
	}
	payload := map[string]any{
		"reporterName":       in.ReporterName,
		"branchName":         in.BranchName,
		"submissionDate":     in.SubmissionDate,
		"properties":         in.Properties,
		"additionalComments": in.AdditionalComments,
		"metadata":           in.Metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.key != "" {
		req.Header.Set("Authorization", "Bearer "+n.key)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
