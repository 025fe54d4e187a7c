// Package quotes is the quotation bounded context: it prices project
// specifications against the catalog and produces quote documents.
package quotes

import (
	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	apphttp "hampstead_backend/internal/http"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/internal/quotes/handler"
	"hampstead_backend/internal/quotes/pricing"
	"hampstead_backend/internal/quotes/service"
	"hampstead_backend/internal/rules"
	"hampstead_backend/platform/logger"
	"hampstead_backend/platform/validator"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the quotes module with all its
// dependencies. The store may be nil when object storage is not configured.
func NewModule(matrix *rules.PricingMatrix, gen *pdf.Generator, store storage.DocumentStore, sender email.Sender, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	engine := pricing.NewEngine(matrix, log)
	svc := service.New(engine, matrix, gen, store, sender, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	quotes := ctx.Protected.Group("/quotes")
	quotes.POST("/calculate", m.handler.Calculate)
	quotes.GET("/pricing-matrix", m.handler.PricingMatrix)

	ctx.Protected.POST("/quotes", m.handler.Generate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
