// Package documents is the office-documents bounded context: it produces
// invoices and building contracts from accepted quotes.
package documents

import (
	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/documents/handler"
	"hampstead_backend/internal/documents/service"
	apphttp "hampstead_backend/internal/http"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/platform/logger"
	"hampstead_backend/platform/validator"
)

// Module is the documents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the documents module. The store may be
// nil when object storage is not configured.
func NewModule(gen *pdf.Generator, store storage.DocumentStore, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(gen, store, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "documents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts document routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	docs := ctx.Protected.Group("/documents")
	docs.POST("/invoices", m.handler.CreateInvoice)
	docs.POST("/contracts", m.handler.CreateContract)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
