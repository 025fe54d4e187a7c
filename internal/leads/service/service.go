// Package service implements the lead intake workflow: identifier
// assignment, phone normalization, scoring and event publication.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hampstead_backend/internal/events"
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/internal/leads/transport"
	"hampstead_backend/platform/logger"
	"hampstead_backend/platform/phone"

	"github.com/google/uuid"
)

const submissionMessage = "Thank you for your inquiry! We've received your request and will be in touch soon."

// Response time commitments per qualification level.
const (
	ResponseTimeHot  = "within 1 hour"
	ResponseTimeWarm = "within 4 hours"
	ResponseTimeCold = "within 24 hours"
)

// Service handles lead submissions.
type Service struct {
	engine *scoring.Engine
	bus    events.Bus
	log    *logger.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// New creates the leads service.
func New(engine *scoring.Engine, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		engine: engine,
		bus:    bus,
		log:    log,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Submit accepts a validated lead, scores it and publishes it for delivery.
// Delivery happens out of band; submission never waits on external systems.
func (s *Service) Submit(ctx context.Context, lead transport.LeadSubmission) (transport.LeadResponse, error) {
	leadID := s.nextLeadID()

	s.log.Info("lead_received",
		"lead_id", leadID,
		"email", lead.Contact.Email,
		"project_type", lead.Project.ProjectType,
	)

	score := s.Score(lead)

	s.log.Info("lead_scored",
		"lead_id", leadID,
		"total_score", score.TotalScore,
		"qualification", score.Qualification,
	)

	s.bus.Publish(ctx, events.NewLeadReceived(leadID, events.LeadPayload{
		FirstName:   lead.Contact.FirstName,
		LastName:    lead.Contact.LastName,
		Email:       lead.Contact.Email,
		Phone:       phone.NormalizeE164(lead.Contact.Phone),
		Address:     lead.Address.AddressLine1,
		City:        lead.Address.City,
		Postcode:    lead.Address.Postcode,
		ProjectType: lead.Project.ProjectType,
		Description: lead.Project.Description,
		BudgetRange: lead.Project.BudgetRange,
		Timeline:    lead.Project.Timeline,
		Source:      lead.Source,
		Score:       score,
	}))

	return transport.LeadResponse{
		Success:               true,
		LeadID:                leadID,
		Message:               submissionMessage,
		EstimatedResponseTime: ResponseTime(score.Qualification),
	}, nil
}

// Score calculates the scoring breakdown without submitting the lead.
func (s *Service) Score(lead transport.LeadSubmission) scoring.Result {
	return s.engine.Score(scoring.Input{
		BudgetRange: lead.Project.BudgetRange,
		Timeline:    lead.Project.Timeline,
		Postcode:    lead.Address.Postcode,
		ProjectType: lead.Project.ProjectType,
	})
}

// ResponseTime maps a qualification level to the committed callback window.
func ResponseTime(qualification string) string {
	switch qualification {
	case scoring.QualificationHot:
		return ResponseTimeHot
	case scoring.QualificationWarm:
		return ResponseTimeWarm
	default:
		return ResponseTimeCold
	}
}

// nextLeadID generates a lead identifier like "LEAD-20241204-A1B2C3D4".
func (s *Service) nextLeadID() string {
	hex := strings.ToUpper(strings.ReplaceAll(s.newID().String(), "-", ""))
	return fmt.Sprintf("LEAD-%s-%s", s.now().UTC().Format("20060102"), hex[:8])
}
