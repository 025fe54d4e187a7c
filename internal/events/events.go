// Package events defines the domain events exchanged between modules and
// re-exports the platform event bus so modules depend on a single import.
package events

import (
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/platform/events"
	"hampstead_backend/platform/logger"

	"github.com/shopspring/decimal"
)

// Re-exported bus types so modules do not import platform/events directly.
type (
	Event       = events.Event
	BaseEvent   = events.BaseEvent
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	Bus         = events.Bus
)

// NewInMemoryBus creates the process-local bus used by the composition root.
func NewInMemoryBus(log *logger.Logger) *events.InMemoryBus {
	return events.NewInMemoryBus(log)
}

// NewBaseEvent stamps a new event with its occurrence time.
func NewBaseEvent() BaseEvent {
	return events.NewBaseEvent()
}

// Event names.
const (
	EventLeadReceived   = "leads.lead_received"
	EventQuoteGenerated = "quotes.quote_generated"
)

// LeadPayload carries the denormalized submission so subscribers never need
// to reach back into the leads module.
type LeadPayload struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address,omitempty"`
	City        string         `json:"city,omitempty"`
	Postcode    string         `json:"postcode"`
	ProjectType string         `json:"project_type"`
	Description string         `json:"description,omitempty"`
	BudgetRange string         `json:"budget_range"`
	Timeline    string         `json:"timeline"`
	Source      string         `json:"source,omitempty"`
	Score       scoring.Result `json:"score"`
}

// LeadReceived is published after a lead is scored and accepted.
type LeadReceived struct {
	BaseEvent
	LeadID  string      `json:"lead_id"`
	Payload LeadPayload `json:"payload"`
}

// EventName identifies the event type on the bus.
func (e LeadReceived) EventName() string { return EventLeadReceived }

// NewLeadReceived builds the event for a freshly scored submission.
func NewLeadReceived(leadID string, payload LeadPayload) LeadReceived {
	return LeadReceived{
		BaseEvent: NewBaseEvent(),
		LeadID:    leadID,
		Payload:   payload,
	}
}

// QuoteGenerated is published after a quote has been priced and rendered.
type QuoteGenerated struct {
	BaseEvent
	QuoteID       string          `json:"quote_id"`
	QuoteNumber   string          `json:"quote_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ProjectType   string          `json:"project_type"`
	Total         decimal.Decimal `json:"total"`
}

// EventName identifies the event type on the bus.
func (e QuoteGenerated) EventName() string { return EventQuoteGenerated }

// NewQuoteGenerated builds the event for a completed quote.
func NewQuoteGenerated(quoteID, quoteNumber, customerName, customerEmail, projectType string, total decimal.Decimal) QuoteGenerated {
	return QuoteGenerated{
		BaseEvent:     NewBaseEvent(),
		QuoteID:       quoteID,
		QuoteNumber:   quoteNumber,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		ProjectType:   projectType,
		Total:         total,
	}
}
