// Package notification reacts to domain events with emails. It inverts the
// dependency: the leads module publishes events without knowing how, or
// whether, anyone gets told about them.
package notification

import (
	"context"
	"fmt"
	"strings"

	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	"hampstead_backend/internal/leads/scoring"
	leadservice "hampstead_backend/internal/leads/service"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

// Module sends internal alerts for leads that need a fast callback.
type Module struct {
	sender      email.Sender
	officeEmail string
	log         *logger.Logger
}

// New creates the notification module. Alerts go to the company office
// address.
func New(sender email.Sender, cfg config.CompanyConfig, log *logger.Logger) *Module {
	return &Module{
		sender:      sender,
		officeEmail: cfg.GetCompanyEmail(),
		log:         log,
	}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EventLeadReceived, events.HandlerFunc(m.onLeadReceived))
}

// onLeadReceived emails the office about hot leads. Warm and cold leads are
// handled through the normal follow-up queue, no alert needed.
func (m *Module) onLeadReceived(ctx context.Context, event events.Event) error {
	received, ok := event.(events.LeadReceived)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if received.Payload.Score.Qualification != scoring.QualificationHot {
		return nil
	}

	lead := received.Payload
	alert := email.HotLeadAlert{
		LeadID:       received.LeadID,
		Name:         strings.TrimSpace(lead.FirstName + " " + lead.LastName),
		Email:        lead.Email,
		Phone:        lead.Phone,
		Postcode:     lead.Postcode,
		ProjectType:  lead.ProjectType,
		BudgetRange:  lead.BudgetRange,
		TotalScore:   lead.Score.TotalScore,
		ResponseTime: leadservice.ResponseTime(lead.Score.Qualification),
	}

	if err := m.sender.SendHotLeadAlert(context.WithoutCancel(ctx), m.officeEmail, alert); err != nil {
		return fmt.Errorf("hot lead alert for %s: %w", received.LeadID, err)
	}

	m.log.Info("hot_lead_alert_sent", "lead_id", received.LeadID, "to", m.officeEmail)
	return nil
}
