package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"hampstead_backend/internal/events"
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/internal/leads/transport"
	"hampstead_backend/internal/rules"
	"hampstead_backend/platform/logger"

	"github.com/google/uuid"
)

type captureBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *captureBus) Subscribe(eventName string, handler events.Handler) {}

func (b *captureBus) last(t *testing.T) events.Event {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		t.Fatal("no event published")
	}
	return b.events[len(b.events)-1]
}

func testScoringRules() *rules.ScoringRules {
	return &rules.ScoringRules{
		Budget:      rules.AxisRules{Default: 10, Weights: map[string]int{"200000_plus": 30, "under_10000": 6, "25000-50000": 18}},
		Timeline:    rules.AxisRules{Default: 10, Weights: map[string]int{"asap": 25, "flexible": 14, "3-6_months": 16}},
		ProjectType: rules.AxisRules{Default: 10, Weights: map[string]int{"full_renovation": 20, "painting": 8, "kitchen": 16}},
		Location: rules.LocationRules{
			PremiumPrefixes: []string{"NW3", "NW6", "NW8", "NW11", "N6", "N2", "N10"},
			PremiumPoints:   25, NorthPoints: 20, WestPoints: 18, Default: 12,
		},
		Qualification: rules.QualificationRules{Hot: 80, Warm: 50},
	}
}

func newTestService(bus events.Bus) *Service {
	engine := scoring.NewEngine(testScoringRules(), nil)
	svc := New(engine, bus, logger.New("development"))
	svc.now = func() time.Time { return time.Date(2024, time.December, 4, 10, 30, 0, 0, time.UTC) }
	svc.newID = func() uuid.UUID { return uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000") }
	return svc
}

func hotSubmission() transport.LeadSubmission {
	return transport.LeadSubmission{
		Contact: transport.ContactDetails{
			FirstName: "Sarah",
			LastName:  "Mitchell",
			Email:     "sarah@example.com",
			Phone:     "020 7485 1234",
		},
		Address: transport.AddressDetails{
			AddressLine1: "12 Well Walk",
			City:         "London",
			Postcode:     "NW3 1BX",
		},
		Project: transport.ProjectDetails{
			ProjectType: "full_renovation",
			BudgetRange: "200000_plus",
			Timeline:    "asap",
		},
		Source: "web_form",
	}
}

func TestSubmitAssignsLeadID(t *testing.T) {
	bus := &captureBus{}
	resp, err := newTestService(bus).Submit(context.Background(), hotSubmission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.LeadID != "LEAD-20241204-A1B2C3D4" {
		t.Fatalf("lead ID = %q, want LEAD-20241204-A1B2C3D4", resp.LeadID)
	}
	if resp.Message == "" {
		t.Fatal("expected confirmation message")
	}
}

func TestSubmitLeadIDFormat(t *testing.T) {
	bus := &captureBus{}
	svc := New(scoring.NewEngine(testScoringRules(), nil), bus, logger.New("development"))

	resp, err := svc.Submit(context.Background(), hotSubmission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	pattern := regexp.MustCompile(`^LEAD-\d{8}-[0-9A-F]{8}$`)
	if !pattern.MatchString(resp.LeadID) {
		t.Fatalf("lead ID %q does not match expected format", resp.LeadID)
	}
}

func TestSubmitResponseTimes(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*transport.LeadSubmission)
		want    string
	}{
		{
			name:   "hot lead answered within the hour",
			mutate: func(l *transport.LeadSubmission) {},
			want:   ResponseTimeHot,
		},
		{
			name: "warm lead within four hours",
			mutate: func(l *transport.LeadSubmission) {
				l.Project.BudgetRange = "25000-50000"
				l.Project.Timeline = "3-6_months"
				l.Project.ProjectType = "kitchen"
				l.Address.Postcode = "SE1 1AA"
			},
			want: ResponseTimeWarm,
		},
		{
			name: "cold lead within a day",
			mutate: func(l *transport.LeadSubmission) {
				l.Project.BudgetRange = "under_10000"
				l.Project.Timeline = "flexible"
				l.Project.ProjectType = "painting"
				l.Address.Postcode = "SE1 1AA"
			},
			want: ResponseTimeCold,
		},
	}

	for _, tt := range tests {
		bus := &captureBus{}
		lead := hotSubmission()
		tt.mutate(&lead)

		resp, err := newTestService(bus).Submit(context.Background(), lead)
		if err != nil {
			t.Fatalf("%s: Submit failed: %v", tt.name, err)
		}
		if resp.EstimatedResponseTime != tt.want {
			t.Fatalf("%s: response time = %q, want %q", tt.name, resp.EstimatedResponseTime, tt.want)
		}
	}
}

func TestSubmitPublishesLeadReceived(t *testing.T) {
	bus := &captureBus{}
	svc := newTestService(bus)

	resp, err := svc.Submit(context.Background(), hotSubmission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	event, ok := bus.last(t).(events.LeadReceived)
	if !ok {
		t.Fatalf("published event has type %T, want LeadReceived", bus.last(t))
	}
	if event.EventName() != events.EventLeadReceived {
		t.Fatalf("event name = %q", event.EventName())
	}
	if event.LeadID != resp.LeadID {
		t.Fatalf("event lead ID = %q, want %q", event.LeadID, resp.LeadID)
	}
	if event.Payload.Phone != "+442074851234" {
		t.Fatalf("phone not normalized: %q", event.Payload.Phone)
	}
	if event.Payload.Score.Qualification != scoring.QualificationHot {
		t.Fatalf("qualification = %q, want hot", event.Payload.Score.Qualification)
	}
	if event.Payload.Score.TotalScore != 100 {
		t.Fatalf("total score = %d, want 100", event.Payload.Score.TotalScore)
	}
}

func TestScoreDoesNotPublish(t *testing.T) {
	bus := &captureBus{}
	svc := newTestService(bus)

	result := svc.Score(hotSubmission())
	if result.TotalScore != 100 {
		t.Fatalf("total score = %d, want 100", result.TotalScore)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 0 {
		t.Fatalf("score-only request published %d events", len(bus.events))
	}
}
