package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hampstead_backend/internal/automation"
	"hampstead_backend/internal/crm"
	"hampstead_backend/internal/dispatch"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting delivery worker", "env", cfg.Env, "queue", cfg.GetDeliveryQueue())

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the delivery worker")
	}

	forwarder := automation.NewWebhookClient(cfg, log)
	syncer := crm.NewHubSpotClient(cfg, log)
	if forwarder == nil && syncer == nil {
		log.Warn("no delivery targets configured; tasks will complete without effect")
	}

	fanout := dispatch.NewFanout(forwarderOrNil(forwarder), syncerOrNil(syncer), log)

	worker, err := dispatch.NewWorker(cfg, fanout, log)
	if err != nil {
		log.Error("failed to initialize delivery worker", "error", err)
		panic("failed to initialize delivery worker: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, draining tasks")
		worker.Shutdown()
	case err := <-srvErr:
		if err != nil {
			log.Error("worker error", "error", err)
			panic("worker error: " + err.Error())
		}
	}
}

func forwarderOrNil(c *automation.WebhookClient) automation.LeadForwarder {
	if c == nil {
		return nil
	}
	return c
}

func syncerOrNil(c *crm.HubSpotClient) crm.ContactSyncer {
	if c == nil {
		return nil
	}
	return c
}
