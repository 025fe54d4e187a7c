package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/automation"
	"hampstead_backend/internal/crm"
	"hampstead_backend/internal/dispatch"
	"hampstead_backend/internal/documents"
	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	apphttp "hampstead_backend/internal/http"
	"hampstead_backend/internal/http/router"
	"hampstead_backend/internal/leads"
	"hampstead_backend/internal/notification"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/internal/quotes"
	"hampstead_backend/internal/rules"
	sharedvalidator "hampstead_backend/internal/shared/validator"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
	"hampstead_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Rule tables are the heart of the service; refuse to start without them.
	ruleSet, err := rules.Load(cfg.GetScoringRulesPath(), cfg.GetPricingMatrixPath())
	if err != nil {
		log.Error("failed to load rule tables", "error", err)
		panic("failed to load rule tables: " + err.Error())
	}
	log.Info("rule tables loaded",
		"scoring_rules", cfg.GetScoringRulesPath(),
		"pricing_matrix", cfg.GetPricingMatrixPath(),
	)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()
	if err := sharedvalidator.RegisterDomainFormats(val); err != nil {
		panic("failed to register validation formats: " + err.Error())
	}

	sender := email.NewSender(cfg)

	// Document storage (MinIO); optional, the API runs without it.
	var store storage.DocumentStore
	if cfg.IsMinIOEnabled() {
		minioStore, err := storage.NewMinIOStore(cfg)
		if err != nil {
			log.Error("failed to initialize storage", "error", err)
			panic("failed to initialize storage: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure documents bucket", 5, 2*time.Second, func() error {
			return minioStore.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		store = minioStore
		log.Info("storage initialized", "bucket", cfg.GetMinioBucketDocuments())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document storage disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// Lead delivery: queued via Redis when configured, inline otherwise
	forwarder := automation.NewWebhookClient(cfg, log)
	syncer := crm.NewHubSpotClient(cfg, log)
	fanout := dispatch.NewFanout(nilIfForwarder(forwarder), nilIfSyncer(syncer), log)

	enqueuer, closeEnqueuer := initDeliveryQueue(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}
	dispatchSubscriber := dispatch.NewSubscriber(enqueuer, fanout, log)
	dispatchSubscriber.RegisterHandlers(eventBus)

	generator := pdf.New(cfg)

	leadsModule := leads.NewModule(ruleSet.Scoring, eventBus, val, log)
	quotesModule := quotes.NewModule(ruleSet.Pricing, generator, store, sender, eventBus, val, log)
	documentsModule := documents.NewModule(generator, store, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   readiness{cfg: cfg},
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			quotesModule,
			documentsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// readiness reports which external integrations are configured.
type readiness struct {
	cfg *config.Config
}

func (r readiness) Readiness(ctx context.Context) map[string]bool {
	return map[string]bool{
		"hubspot_configured":  r.cfg.IsCRMEnabled(),
		"webhook_configured":  r.cfg.IsWebhookEnabled(),
		"storage_configured":  r.cfg.IsMinIOEnabled(),
		"delivery_configured": r.cfg.IsDeliveryEnabled(),
		"email_configured":    r.cfg.GetEmailEnabled(),
	}
}

// nilIfForwarder keeps a typed-nil *WebhookClient out of the interface value.
func nilIfForwarder(c *automation.WebhookClient) automation.LeadForwarder {
	if c == nil {
		return nil
	}
	return c
}

// nilIfSyncer keeps a typed-nil *HubSpotClient out of the interface value.
func nilIfSyncer(c *crm.HubSpotClient) crm.ContactSyncer {
	if c == nil {
		return nil
	}
	return c
}

func initDeliveryQueue(cfg config.DeliveryConfig, log *logger.Logger) (dispatch.Enqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead delivery runs in-process")
		return nil, nil
	}

	client, err := dispatch.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize delivery queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
