// Package handler exposes the public lead intake endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hampstead_backend/internal/leads/service"
	"hampstead_backend/internal/leads/transport"
	"hampstead_backend/platform/httpkit"
	"hampstead_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead intake.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit accepts a new lead from the web form.
// POST /api/v1/leads
func (h *Handler) Submit(c *gin.Context) {
	lead, ok := h.bindSubmission(c)
	if !ok {
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), lead)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Score calculates the scoring breakdown without submitting the lead.
// POST /api/v1/leads/score
func (h *Handler) Score(c *gin.Context) {
	lead, ok := h.bindSubmission(c)
	if !ok {
		return
	}
	httpkit.OK(c, h.svc.Score(lead))
}

// ProjectTypes returns the project type options for the form.
// GET /api/v1/config/project-types
func (h *Handler) ProjectTypes(c *gin.Context) {
	httpkit.OK(c, transport.ProjectTypes())
}

// BudgetRanges returns the budget range options for the form.
// GET /api/v1/config/budget-ranges
func (h *Handler) BudgetRanges(c *gin.Context) {
	httpkit.OK(c, transport.BudgetRanges())
}

// Timelines returns the timeline options for the form.
// GET /api/v1/config/timelines
func (h *Handler) Timelines(c *gin.Context) {
	httpkit.OK(c, transport.Timelines())
}

func (h *Handler) bindSubmission(c *gin.Context) (transport.LeadSubmission, bool) {
	var lead transport.LeadSubmission
	if err := c.ShouldBindJSON(&lead); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return lead, false
	}
	lead.Normalize()
	if err := h.val.Struct(lead); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return lead, false
	}
	return lead, true
}
