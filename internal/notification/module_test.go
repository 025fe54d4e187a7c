package notification

import (
	"context"
	"testing"

	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/platform/logger"
)

type captureSender struct {
	email.NoopSender
	alerts []email.HotLeadAlert
	to     []string
}

func (s *captureSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert email.HotLeadAlert) error {
	s.to = append(s.to, toEmail)
	s.alerts = append(s.alerts, alert)
	return nil
}

type testCompany struct{}

func (testCompany) GetCompanyName() string       { return "Hampstead Renovations Ltd" }
func (testCompany) GetCompanyAddress() string    { return "45 Heath Street, London NW3 6TE" }
func (testCompany) GetCompanyPhone() string      { return "020 7123 4567" }
func (testCompany) GetCompanyEmail() string      { return "office@hampsteadrenovations.co.uk" }
func (testCompany) GetCompanyVATNumber() string  { return "GB 123 4567 89" }
func (testCompany) GetCompanyRegNumber() string  { return "12345678" }
func (testCompany) GetBankName() string          { return "Barclays Bank" }
func (testCompany) GetBankSortCode() string      { return "20-00-00" }
func (testCompany) GetBankAccountNumber() string { return "12345678" }

func leadEvent(qualification string, score int) events.LeadReceived {
	return events.NewLeadReceived("LEAD-20241204-A1B2C3D4", events.LeadPayload{
		FirstName:   "Sarah",
		LastName:    "Mitchell",
		Email:       "sarah@example.com",
		Phone:       "+442074851234",
		Postcode:    "NW3 1HE",
		ProjectType: "full_renovation",
		BudgetRange: "100000-200000",
		Timeline:    "asap",
		Score:       scoring.Result{TotalScore: score, Qualification: qualification},
	})
}

func TestHotLeadTriggersAlert(t *testing.T) {
	sender := &captureSender{}
	m := New(sender, testCompany{}, logger.New("development"))

	if err := m.onLeadReceived(context.Background(), leadEvent(scoring.QualificationHot, 95)); err != nil {
		t.Fatalf("onLeadReceived failed: %v", err)
	}

	if len(sender.alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(sender.alerts))
	}
	alert := sender.alerts[0]
	if alert.Name != "Sarah Mitchell" {
		t.Errorf("Name = %q", alert.Name)
	}
	if alert.ResponseTime != "within 1 hour" {
		t.Errorf("ResponseTime = %q, want within 1 hour", alert.ResponseTime)
	}
	if sender.to[0] != "office@hampsteadrenovations.co.uk" {
		t.Errorf("sent to %q, want office address", sender.to[0])
	}
}

func TestWarmLeadDoesNotAlert(t *testing.T) {
	sender := &captureSender{}
	m := New(sender, testCompany{}, logger.New("development"))

	if err := m.onLeadReceived(context.Background(), leadEvent(scoring.QualificationWarm, 60)); err != nil {
		t.Fatalf("onLeadReceived failed: %v", err)
	}
	if len(sender.alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for warm lead", len(sender.alerts))
	}
}
