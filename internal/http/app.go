// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"hampstead_backend/internal/events"
	"hampstead_backend/platform/config"
	"hampstead_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.APIKeyConfig
}

// HealthChecker reports which optional integrations are configured for the
// readiness endpoint.
type HealthChecker interface {
	Readiness(ctx context.Context) map[string]bool
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and API key settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for the readiness check.
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
