// Package automation posts received leads to the workflow-automation
// webhook so downstream processes (routing, follow-up sequences) can run.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hampstead_backend/internal/events"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

// LeadForwarder delivers a scored lead to the automation pipeline.
type LeadForwarder interface {
	ForwardLead(ctx context.Context, leadID string, payload events.LeadPayload) error
}

// WebhookClient posts leads as JSON to a configured webhook URL.
type WebhookClient struct {
	url    string
	client *http.Client
	log    *logger.Logger
	now    func() time.Time
}

// NewWebhookClient creates a webhook client, or nil when no URL is configured.
func NewWebhookClient(cfg config.WebhookConfig, log *logger.Logger) *WebhookClient {
	if !cfg.IsWebhookEnabled() {
		return nil
	}
	return &WebhookClient{
		url:    cfg.GetAutomationWebhookURL(),
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
		now:    time.Now,
	}
}

type webhookPayload struct {
	LeadID    string             `json:"lead_id"`
	LeadData  events.LeadPayload `json:"lead_data"`
	Score     interface{}        `json:"score"`
	Timestamp string             `json:"timestamp"`
}

// ForwardLead posts the lead and its score to the webhook.
func (c *WebhookClient) ForwardLead(ctx context.Context, leadID string, payload events.LeadPayload) error {
	body, err := json.Marshal(webhookPayload{
		LeadID:    leadID,
		LeadData:  payload,
		Score:     payload.Score,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("webhook request failed", "lead_id", leadID, "error", err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("webhook delivery rejected", "lead_id", leadID, "status", resp.StatusCode)
		return fmt.Errorf("webhook error: %d", resp.StatusCode)
	}

	c.log.Info("lead_sent_to_webhook", "lead_id", leadID)
	return nil
}
