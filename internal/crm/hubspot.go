// Package crm synchronizes scored leads into HubSpot as contacts.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"hampstead_backend/internal/events"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

const contactsURL = "https://api.hubapi.com/crm/v3/objects/contacts"

// ContactSyncer pushes a scored lead into the CRM.
type ContactSyncer interface {
	SyncLead(ctx context.Context, leadID string, payload events.LeadPayload) error
}

// HubSpotClient creates contacts via the HubSpot CRM v3 API.
type HubSpotClient struct {
	apiKey string
	client *http.Client
	log    *logger.Logger
}

// NewHubSpotClient creates a CRM client, or nil when no API key is configured.
func NewHubSpotClient(cfg config.CRMConfig, log *logger.Logger) *HubSpotClient {
	if !cfg.IsCRMEnabled() {
		return nil
	}
	return &HubSpotClient{
		apiKey: cfg.GetHubSpotAPIKey(),
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

type contactRequest struct {
	Properties map[string]string `json:"properties"`
}

// SyncLead creates a HubSpot contact carrying the lead's score properties.
func (c *HubSpotClient) SyncLead(ctx context.Context, leadID string, payload events.LeadPayload) error {
	body, err := json.Marshal(contactRequest{Properties: map[string]string{
		"firstname":          payload.FirstName,
		"lastname":           payload.LastName,
		"email":              payload.Email,
		"phone":              payload.Phone,
		"address":            payload.Address,
		"city":               payload.City,
		"zip":                payload.Postcode,
		"lead_score":         strconv.Itoa(payload.Score.TotalScore),
		"lead_qualification": payload.Score.Qualification,
		"project_type":       payload.ProjectType,
		"budget_range":       payload.BudgetRange,
		"timeline":           payload.Timeline,
		"lead_source":        payload.Source,
	}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, contactsURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("hubspot request failed", "lead_id", leadID, "error", err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Error("hubspot contact create failed",
			"lead_id", leadID,
			"status", resp.StatusCode,
			"response", string(detail),
		)
		return fmt.Errorf("hubspot api error: %d", resp.StatusCode)
	}

	c.log.Info("hubspot_contact_created", "lead_id", leadID)
	return nil
}
