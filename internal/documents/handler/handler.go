// Package handler exposes the API-key protected document endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hampstead_backend/internal/documents/service"
	"hampstead_backend/internal/documents/transport"
	"hampstead_backend/platform/httpkit"
	"hampstead_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for invoice and contract generation.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new documents handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateInvoice generates an invoice PDF.
// POST /api/v1/documents/invoices
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req transport.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateContract generates a building contract PDF.
// POST /api/v1/documents/contracts
func (h *Handler) CreateContract(c *gin.Context) {
	var req transport.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateContract(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
