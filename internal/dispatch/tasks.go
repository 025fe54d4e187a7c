package dispatch

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"hampstead_backend/internal/events"
)

// TaskLeadDeliver fans a received lead out to the CRM and the automation
// webhook.
const TaskLeadDeliver = "leads.deliver"

// LeadDeliveryPayload is the task body for a lead delivery.
type LeadDeliveryPayload struct {
	LeadID string             `json:"leadId"`
	Lead   events.LeadPayload `json:"lead"`
}

// NewLeadDeliveryTask wraps the payload in an asynq task.
func NewLeadDeliveryTask(payload LeadDeliveryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadDeliver, data), nil
}

// ParseLeadDeliveryPayload decodes the task body.
func ParseLeadDeliveryPayload(task *asynq.Task) (LeadDeliveryPayload, error) {
	var payload LeadDeliveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadDeliveryPayload{}, err
	}
	return payload, nil
}
