// Package transport defines the request and response shapes for the
// documents API (invoices and contracts).
package transport

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice types recognised by the payment schedule.
const (
	InvoiceTypeDeposit = "deposit"
	InvoiceTypeInterim = "interim"
	InvoiceTypeFinal   = "final"
)

// CustomerDetails is the billing party on an invoice.
type CustomerDetails struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Company      string `json:"company" validate:"omitempty,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
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
	parts = append(parts, c.City, c.Postcode)
	return strings.Join(parts, ", ")
}

// InvoiceLineRequest is one billed row. VATRate defaults to 20 when omitted.
type InvoiceLineRequest struct {
	Description string           `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit" validate:"omitempty,max=20"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	VATRate     *decimal.Decimal `json:"vat_rate"`
}

// InvoiceRequest asks for an invoice document.
type InvoiceRequest struct {
	ContractReference string `json:"contract_reference" validate:"omitempty,max=50"`
	QuoteReference    string `json:"quote_reference" validate:"omitempty,max=50"`
	ProjectReference  string `json:"project_reference" validate:"omitempty,max=100"`

	InvoiceType        string `json:"invoice_type" validate:"omitempty,oneof=deposit interim final"`
	InvoiceDescription string `json:"invoice_description" validate:"required,max=200"`

	Customer        CustomerDetails `json:"customer" validate:"required"`
	PropertyAddress string          `json:"property_address" validate:"omitempty,max=400"`

	// Either explicit line items, or a contract total to derive the
	// schedule amount for the invoice type from.
	Lines         []InvoiceLineRequest `json:"line_items" validate:"omitempty,dive"`
	ContractTotal *decimal.Decimal     `json:"contract_total"`

	AmountPaid       decimal.Decimal `json:"amount_paid"`
	DueDate          *time.Time      `json:"due_date"`
	PaymentTermsDays int             `json:"payment_terms_days" validate:"omitempty,min=1,max=90"`

	Notes              string `json:"notes" validate:"omitempty,max=2000"`
	IncludeBankDetails *bool  `json:"include_bank_details"`
	StoreDocument      bool   `json:"store_document"`
}

// Normalize lowercases enums and applies defaults before validation.
func (r *InvoiceRequest) Normalize() {
	r.InvoiceType = strings.ToLower(strings.TrimSpace(r.InvoiceType))
	if r.InvoiceType == "" {
		r.InvoiceType = InvoiceTypeInterim
	}
	r.Customer.Postcode = strings.ToUpper(strings.TrimSpace(r.Customer.Postcode))
	if r.Customer.City == "" {
		r.Customer.City = "London"
	}
	if r.PaymentTermsDays == 0 {
		r.PaymentTermsDays = 7
	}
}

// BankDetailsIncluded reports whether the payment block should be rendered.
// Defaults to true when the field is omitted.
func (r InvoiceRequest) BankDetailsIncluded() bool {
	return r.IncludeBankDetails == nil || *r.IncludeBankDetails
}

// InvoiceResponse is the result of invoice generation.
type InvoiceResponse struct {
	Success       bool            `json:"success"`
	InvoiceNumber string          `json:"invoice_number"`
	FileKey       string          `json:"file_key,omitempty"`
	DownloadURL   string          `json:"download_url,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATTotal      decimal.Decimal `json:"vat_total"`
	Total         decimal.Decimal `json:"total"`
	TotalDue      decimal.Decimal `json:"total_due"`
	DueDate       time.Time       `json:"due_date"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Message       string          `json:"message"`
}

// ContractScopeRequest is one scope-of-works section.
type ContractScopeRequest struct {
	Category    string   `json:"category" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=2000"`
	Included    []string `json:"included_items" validate:"omitempty,dive,max=200"`
	Excluded    []string `json:"excluded_items" validate:"omitempty,dive,max=200"`
}

// ContractMilestoneRequest overrides one payment milestone.
type ContractMilestoneRequest struct {
	Stage          string `json:"stage" validate:"required,max=100"`
	Percentage     int    `json:"percentage" validate:"min=0,max=100"`
	DueDescription string `json:"due_description" validate:"omitempty,max=200"`
}

// ContractRequest asks for a building contract document.
type ContractRequest struct {
	QuoteReference string `json:"quote_reference" validate:"omitempty,max=50"`

	Client          CustomerDetails `json:"client" validate:"required"`
	PropertyAddress string          `json:"property_address" validate:"omitempty,max=400"`

	ProjectTitle       string                 `json:"project_title" validate:"required,max=200"`
	ProjectDescription string                 `json:"project_description" validate:"required,max=5000"`
	ScopeItems         []ContractScopeRequest `json:"scope_items" validate:"required,min=1,dive"`

	ContractValue decimal.Decimal `json:"contract_value"`

	Milestones []ContractMilestoneRequest `json:"payment_milestones" validate:"omitempty,dive"`

	EstimatedStartDate     *time.Time `json:"estimated_start_date"`
	EstimatedDurationWeeks int        `json:"estimated_duration_weeks" validate:"omitempty,min=1,max=156"`

	PlanningRequired        bool   `json:"planning_required"`
	PlanningReference       string `json:"planning_reference" validate:"omitempty,max=50"`
	BuildingControlRequired *bool  `json:"building_control_required"`
	PartyWallRequired       bool   `json:"party_wall_required"`

	SpecialConditions []string `json:"special_conditions" validate:"omitempty,dive,max=500"`

	StoreDocument bool `json:"store_document"`
}

// Normalize applies defaults before validation.
func (r *ContractRequest) Normalize() {
	r.Client.Postcode = strings.ToUpper(strings.TrimSpace(r.Client.Postcode))
	if r.Client.City == "" {
		r.Client.City = "London"
	}
	if r.PropertyAddress == "" {
		r.PropertyAddress = r.Client.FullAddress()
	}
	if r.EstimatedDurationWeeks == 0 {
		r.EstimatedDurationWeeks = 12
	}
}

// BuildingControlNeeded defaults to true when the field is omitted.
func (r ContractRequest) BuildingControlNeeded() bool {
	return r.BuildingControlRequired == nil || *r.BuildingControlRequired
}

// ContractResponse is the result of contract generation.
type ContractResponse struct {
	Success        bool            `json:"success"`
	ContractNumber string          `json:"contract_number"`
	FileKey        string          `json:"file_key,omitempty"`
	DownloadURL    string          `json:"download_url,omitempty"`
	ContractValue  decimal.Decimal `json:"contract_value"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	TotalIncVAT    decimal.Decimal `json:"total_including_vat"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Message        string          `json:"message"`
}
