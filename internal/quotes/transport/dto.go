// Package transport defines the request and response shapes for the quotes API.
package transport

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hampstead_backend/internal/quotes/pricing"
)

// CustomerDetails identifies the customer a quote is prepared for.
type CustomerDetails struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	AddressLine1 string `json:"address_line1" validate:"required,max=200"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"omitempty,max=100"`
	Postcode     string `json:"postcode" validate:"required,uk_postcode"`
}

// FullAddress joins the address parts for display on documents.
func (c CustomerDetails) FullAddress() string {
	parts := []string{c.AddressLine1}
	if c.AddressLine2 != "" {
		parts = append(parts, c.AddressLine2)
	}
	parts = append(parts, c.City)
	return strings.Join(parts, ", ")
}

// ProjectDetails is the project specification to price.
type ProjectDetails struct {
	ProjectType     string   `json:"project_type" validate:"required,oneof=kitchen bathroom extension loft_conversion full_renovation"`
	Tier            string   `json:"tier" validate:"omitempty,oneof=essential premium luxury"`
	RoomCount       int      `json:"room_count" validate:"omitempty,min=1,max=20"`
	Requirements    []string `json:"requirements" validate:"omitempty,dive,max=500"`
	SpecialRequests string   `json:"special_requests" validate:"omitempty,max=2000"`
}

// QuoteRequest asks for a full quote document.
type QuoteRequest struct {
	Customer        CustomerDetails `json:"customer" validate:"required"`
	Project         ProjectDetails  `json:"project" validate:"required"`
	IncludeUpgrades *bool           `json:"include_upgrades"`
	StoreDocument   bool            `json:"store_document"`
	SendEmail       bool            `json:"send_email"`
	Notes           string          `json:"notes" validate:"omitempty,max=2000"`
}

// Normalize lowercases enums and applies defaults before validation.
func (r *QuoteRequest) Normalize() {
	r.Project.ProjectType = strings.ToLower(strings.TrimSpace(r.Project.ProjectType))
	r.Project.Tier = strings.ToLower(strings.TrimSpace(r.Project.Tier))
	if r.Project.Tier == "" {
		r.Project.Tier = "premium"
	}
	r.Customer.Postcode = strings.ToUpper(strings.TrimSpace(r.Customer.Postcode))
	if r.Customer.City == "" {
		r.Customer.City = "London"
	}
}

// UpgradesIncluded reports whether optional upgrade items should be priced.
// Defaults to true when the field is omitted.
func (r QuoteRequest) UpgradesIncluded() bool {
	return r.IncludeUpgrades == nil || *r.IncludeUpgrades
}

// CalculateRequest asks for a pricing preview without generating a document.
type CalculateRequest struct {
	ProjectType     string `json:"project_type" validate:"required,oneof=kitchen bathroom extension loft_conversion full_renovation"`
	Tier            string `json:"tier" validate:"omitempty,oneof=essential premium luxury"`
	Postcode        string `json:"postcode" validate:"required,uk_postcode"`
	IncludeUpgrades *bool  `json:"include_upgrades"`
}

// Normalize lowercases enums and applies defaults before validation.
func (r *CalculateRequest) Normalize() {
	r.ProjectType = strings.ToLower(strings.TrimSpace(r.ProjectType))
	r.Tier = strings.ToLower(strings.TrimSpace(r.Tier))
	if r.Tier == "" {
		r.Tier = "premium"
	}
	r.Postcode = strings.ToUpper(strings.TrimSpace(r.Postcode))
}

// UpgradesIncluded reports whether optional upgrade items should be priced.
func (r CalculateRequest) UpgradesIncluded() bool {
	return r.IncludeUpgrades == nil || *r.IncludeUpgrades
}

// CalculateResponse is the pricing preview payload.
type CalculateResponse struct {
	ProjectType string              `json:"project_type"`
	Tier        string              `json:"tier"`
	Quote       pricing.PricedQuote `json:"quote"`
}

// GeneratedQuote is the result of full quote generation.
type GeneratedQuote struct {
	QuoteID     string          `json:"quote_id"`
	QuoteNumber string          `json:"quote_number"`
	FileKey     string          `json:"file_key,omitempty"`
	DownloadURL string          `json:"download_url,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
	ValidUntil  time.Time       `json:"valid_until"`
	CreatedAt   time.Time       `json:"created_at"`
	Message     string          `json:"message"`
}
