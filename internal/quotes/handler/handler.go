// Package handler exposes the API-key protected quote endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hampstead_backend/internal/quotes/service"
	"hampstead_backend/internal/quotes/transport"
	"hampstead_backend/platform/httpkit"
	"hampstead_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for quote generation.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Calculate returns a pricing preview without generating a document.
// POST /api/v1/quotes/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req transport.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	httpkit.OK(c, h.svc.Calculate(req))
}

// Generate produces a full quote with PDF and optional delivery.
// POST /api/v1/quotes
func (h *Handler) Generate(c *gin.Context) {
	var req transport.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PricingMatrix echoes the loaded pricing catalog.
// GET /api/v1/quotes/pricing-matrix
func (h *Handler) PricingMatrix(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"status":         "success",
		"pricing_matrix": h.svc.PricingMatrix(),
	})
}
