package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hampstead_backend/internal/events"
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/platform/logger"
)

type stubForwarder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *stubForwarder) ForwardLead(ctx context.Context, leadID string, payload events.LeadPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, leadID)
	return s.err
}

type stubSyncer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *stubSyncer) SyncLead(ctx context.Context, leadID string, payload events.LeadPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, leadID)
	return s.err
}

func testPayload() LeadDeliveryPayload {
	return LeadDeliveryPayload{
		LeadID: "LEAD-20241204-A1B2C3D4",
		Lead: events.LeadPayload{
			FirstName:   "Sarah",
			LastName:    "Mitchell",
			Email:       "sarah@example.com",
			Phone:       "+442074851234",
			Postcode:    "NW3 1HE",
			ProjectType: "kitchen",
			BudgetRange: "50000-100000",
			Timeline:    "asap",
			Score:       scoring.Result{TotalScore: 95, Qualification: scoring.QualificationHot},
		},
	}
}

func TestFanoutDeliversToAllTargets(t *testing.T) {
	forwarder := &stubForwarder{}
	syncer := &stubSyncer{}
	fanout := NewFanout(forwarder, syncer, logger.New("development"))

	if err := fanout.Deliver(context.Background(), testPayload()); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if len(forwarder.calls) != 1 || forwarder.calls[0] != "LEAD-20241204-A1B2C3D4" {
		t.Errorf("forwarder calls = %v", forwarder.calls)
	}
	if len(syncer.calls) != 1 {
		t.Errorf("syncer calls = %v", syncer.calls)
	}
}

func TestFanoutSkipsNilTargets(t *testing.T) {
	fanout := NewFanout(nil, nil, logger.New("development"))

	if err := fanout.Deliver(context.Background(), testPayload()); err != nil {
		t.Fatalf("Deliver with no targets should be a no-op, got %v", err)
	}
}

func TestFanoutPropagatesTargetError(t *testing.T) {
	forwarder := &stubForwarder{err: errors.New("connection refused")}
	syncer := &stubSyncer{}
	fanout := NewFanout(forwarder, syncer, logger.New("development"))

	if err := fanout.Deliver(context.Background(), testPayload()); err == nil {
		t.Fatal("expected error from failing target")
	}
	if len(syncer.calls) != 1 {
		t.Errorf("syncer should still be attempted, calls = %v", syncer.calls)
	}
}

type stubEnqueuer struct {
	payloads []LeadDeliveryPayload
	err      error
}

func (s *stubEnqueuer) EnqueueLeadDelivery(ctx context.Context, payload LeadDeliveryPayload) error {
	s.payloads = append(s.payloads, payload)
	return s.err
}

func TestSubscriberEnqueuesWhenQueueConfigured(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	forwarder := &stubForwarder{}
	sub := NewSubscriber(enqueuer, NewFanout(forwarder, nil, logger.New("development")), logger.New("development"))

	event := events.NewLeadReceived("LEAD-20241204-A1B2C3D4", testPayload().Lead)
	if err := sub.onLeadReceived(context.Background(), event); err != nil {
		t.Fatalf("onLeadReceived failed: %v", err)
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("enqueued %d payloads, want 1", len(enqueuer.payloads))
	}
	if len(forwarder.calls) != 0 {
		t.Errorf("inline delivery should not run when queueing, calls = %v", forwarder.calls)
	}
}

func TestSubscriberDeliversInlineWithoutQueue(t *testing.T) {
	forwarder := &stubForwarder{}
	sub := NewSubscriber(nil, NewFanout(forwarder, nil, logger.New("development")), logger.New("development"))

	event := events.NewLeadReceived("LEAD-20241204-A1B2C3D4", testPayload().Lead)
	if err := sub.onLeadReceived(context.Background(), event); err != nil {
		t.Fatalf("onLeadReceived failed: %v", err)
	}

	if len(forwarder.calls) != 1 {
		t.Errorf("forwarder calls = %v, want 1 inline delivery", forwarder.calls)
	}
}
