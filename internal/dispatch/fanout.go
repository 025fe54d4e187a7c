package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hampstead_backend/internal/automation"
	"hampstead_backend/internal/crm"
	"hampstead_backend/platform/logger"
)

// Fanout delivers one lead to every configured target concurrently. Targets
// are optional; a nil forwarder or syncer is skipped.
type Fanout struct {
	forwarder automation.LeadForwarder
	syncer    crm.ContactSyncer
	log       *logger.Logger
}

// NewFanout creates the delivery fanout.
func NewFanout(forwarder automation.LeadForwarder, syncer crm.ContactSyncer, log *logger.Logger) *Fanout {
	return &Fanout{
		forwarder: forwarder,
		syncer:    syncer,
		log:       log,
	}
}

// Deliver pushes the lead to the webhook and the CRM in parallel. Each
// target failure is logged; the combined error drives queue retries.
func (f *Fanout) Deliver(ctx context.Context, payload LeadDeliveryPayload) error {
	g, ctx := errgroup.WithContext(ctx)

	if f.forwarder != nil {
		g.Go(func() error {
			err := f.forwarder.ForwardLead(ctx, payload.LeadID, payload.Lead)
			f.report("webhook", payload.LeadID, err)
			return err
		})
	}
	if f.syncer != nil {
		g.Go(func() error {
			err := f.syncer.SyncLead(ctx, payload.LeadID, payload.Lead)
			f.report("hubspot", payload.LeadID, err)
			return err
		})
	}

	return g.Wait()
}

func (f *Fanout) report(target, leadID string, err error) {
	if err != nil {
		f.log.DeliveryEvent(target, leadID, false, err.Error())
		return
	}
	f.log.DeliveryEvent(target, leadID, true, "")
}
