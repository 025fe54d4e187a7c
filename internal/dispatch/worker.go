package dispatch

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

// Worker consumes lead delivery tasks from the queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	fanout *Fanout
	log    *logger.Logger
}

// NewWorker creates the queue consumer. Errors when Redis is not configured.
func NewWorker(cfg config.DeliveryConfig, fanout *Fanout, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetDeliveryQueue()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetDeliveryConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		fanout: fanout,
		log:    log,
	}

	mux.HandleFunc(TaskLeadDeliver, w.handleLeadDeliver)

	return w, nil
}

// Run blocks serving tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the server and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleLeadDeliver(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadDeliveryPayload(task)
	if err != nil {
		return fmt.Errorf("lead delivery payload: %w", err)
	}

	w.log.Info("lead_delivery_started", "lead_id", payload.LeadID)
	return w.fanout.Deliver(ctx, payload)
}
