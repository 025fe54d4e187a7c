package dispatch

import (
	"context"
	"fmt"

	"hampstead_backend/internal/events"
	"hampstead_backend/platform/logger"
)

// Subscriber reacts to received leads: it enqueues a delivery task when the
// queue is configured, or delivers inline otherwise.
type Subscriber struct {
	enqueuer Enqueuer
	fanout   *Fanout
	log      *logger.Logger
}

// NewSubscriber creates the dispatch subscriber. The enqueuer may be nil
// when Redis is not configured; delivery then happens in-process.
func NewSubscriber(enqueuer Enqueuer, fanout *Fanout, log *logger.Logger) *Subscriber {
	return &Subscriber{
		enqueuer: enqueuer,
		fanout:   fanout,
		log:      log,
	}
}

// RegisterHandlers subscribes to the lead-received event.
func (s *Subscriber) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EventLeadReceived, events.HandlerFunc(s.onLeadReceived))
}

func (s *Subscriber) onLeadReceived(ctx context.Context, event events.Event) error {
	received, ok := event.(events.LeadReceived)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	payload := LeadDeliveryPayload{
		LeadID: received.LeadID,
		Lead:   received.Payload,
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueLeadDelivery(ctx, payload); err != nil {
			return fmt.Errorf("enqueue lead delivery: %w", err)
		}
		s.log.Info("lead_delivery_enqueued", "lead_id", payload.LeadID)
		return nil
	}

	// Inline path runs detached from the request context so delivery is
	// not cancelled when the HTTP response is written.
	return s.fanout.Deliver(context.WithoutCancel(ctx), payload)
}
