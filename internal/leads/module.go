// Package leads is the lead intake bounded context: it receives submissions
// from the public web form, scores them and hands them off for delivery.
package leads

import (
	"hampstead_backend/internal/events"
	apphttp "hampstead_backend/internal/http"
	"hampstead_backend/internal/leads/handler"
	"hampstead_backend/internal/leads/scoring"
	"hampstead_backend/internal/leads/service"
	"hampstead_backend/internal/rules"
	"hampstead_backend/platform/logger"
	"hampstead_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(scoringRules *rules.ScoringRules, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	engine := scoring.NewEngine(scoringRules, log)
	svc := service.New(engine, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public form endpoints, rate limited per IP
	ctx.V1.POST("/leads", ctx.SubmitRateLimiter.RateLimit(), m.handler.Submit)

	configGroup := ctx.V1.Group("/config")
	configGroup.GET("/project-types", m.handler.ProjectTypes)
	configGroup.GET("/budget-ranges", m.handler.BudgetRanges)
	configGroup.GET("/timelines", m.handler.Timelines)

	// Score-only endpoint for internal tooling
	ctx.Protected.POST("/leads/score", ctx.ScoreRateLimiter.RateLimit(), m.handler.Score)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
