// Package transport defines the request and response DTOs for the leads API.
package transport

import (
	"strings"

	"hampstead_backend/internal/leads/scoring"
)

// ContactDetails is the customer contact block of a submission.
type ContactDetails struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
}

// AddressDetails is the project address block of a submission.
type AddressDetails struct {
	AddressLine1 string `json:"address_line1" validate:"required,min=1,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,min=1,max=100"`
	Postcode     string `json:"postcode" validate:"required,uk_postcode"`
}

// ProjectDetails is the project requirements block of a submission.
type ProjectDetails struct {
	ProjectType  string `json:"project_type" validate:"required,oneof=kitchen bathroom extension loft_conversion full_renovation flooring electrical plumbing painting landscaping other"`
	BudgetRange  string `json:"budget_range" validate:"required,oneof=under_10000 10000-25000 25000-50000 50000-100000 100000-200000 200000_plus not_sure"`
	Timeline     string `json:"timeline" validate:"required,oneof=asap 1-3_months 3-6_months 6-12_months flexible"`
	PropertyType string `json:"property_type,omitempty" validate:"omitempty,max=100"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// LeadSubmission is a complete lead submission from the web form.
type LeadSubmission struct {
	Contact          ContactDetails `json:"contact" validate:"required"`
	Address          AddressDetails `json:"address" validate:"required"`
	Project          ProjectDetails `json:"project" validate:"required"`
	MarketingConsent bool           `json:"marketing_consent"`
	Source           string         `json:"source"`
	UTMSource        string         `json:"utm_source,omitempty"`
	UTMMedium        string         `json:"utm_medium,omitempty"`
	UTMCampaign      string         `json:"utm_campaign,omitempty"`
}

// Normalize folds the categorical fields to their canonical casing before
// validation, mirroring what the web form sends.
func (s *LeadSubmission) Normalize() {
	s.Project.ProjectType = strings.ToLower(strings.TrimSpace(s.Project.ProjectType))
	s.Project.BudgetRange = strings.ToLower(strings.TrimSpace(s.Project.BudgetRange))
	s.Project.Timeline = strings.ToLower(strings.TrimSpace(s.Project.Timeline))
	s.Address.Postcode = strings.ToUpper(strings.TrimSpace(s.Address.Postcode))
	if s.Source == "" {
		s.Source = "web_form"
	}
}

// LeadResponse is returned after a successful submission.
type LeadResponse struct {
	Success               bool   `json:"success"`
	LeadID                string `json:"lead_id"`
	Message               string `json:"message"`
	EstimatedResponseTime string `json:"estimated_response_time"`
}

// ScoreResponse is the scoring breakdown returned by the score endpoint.
type ScoreResponse = scoring.Result

// Option is a value/label pair for form select fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProjectTypeOptions lists the selectable project types.
type ProjectTypeOptions struct {
	ProjectTypes []Option `json:"project_types"`
}

// BudgetRangeOptions lists the selectable budget ranges.
type BudgetRangeOptions struct {
	BudgetRanges []Option `json:"budget_ranges"`
}

// TimelineOptions lists the selectable timelines.
type TimelineOptions struct {
	Timelines []Option `json:"timelines"`
}

// ProjectTypes returns the project type options shown on the form.
func ProjectTypes() ProjectTypeOptions {
	return ProjectTypeOptions{ProjectTypes: []Option{
		{Value: "kitchen", Label: "Kitchen Renovation"},
		{Value: "bathroom", Label: "Bathroom Renovation"},
		{Value: "extension", Label: "House Extension"},
		{Value: "loft_conversion", Label: "Loft Conversion"},
		{Value: "full_renovation", Label: "Full House Renovation"},
		{Value: "flooring", Label: "Flooring"},
		{Value: "electrical", Label: "Electrical Work"},
		{Value: "plumbing", Label: "Plumbing"},
		{Value: "painting", Label: "Painting & Decorating"},
		{Value: "landscaping", Label: "Garden & Landscaping"},
		{Value: "other", Label: "Other"},
	}}
}

// BudgetRanges returns the budget range options shown on the form.
func BudgetRanges() BudgetRangeOptions {
	return BudgetRangeOptions{BudgetRanges: []Option{
		{Value: "under_10000", Label: "Under £10,000"},
		{Value: "10000-25000", Label: "£10,000 - £25,000"},
		{Value: "25000-50000", Label: "£25,000 - £50,000"},
		{Value: "50000-100000", Label: "£50,000 - £100,000"},
		{Value: "100000-200000", Label: "£100,000 - £200,000"},
		{Value: "200000_plus", Label: "£200,000+"},
		{Value: "not_sure", Label: "Not sure yet"},
	}}
}

// Timelines returns the timeline options shown on the form.
func Timelines() TimelineOptions {
	return TimelineOptions{Timelines: []Option{
		{Value: "asap", Label: "As soon as possible"},
		{Value: "1-3_months", Label: "Within 1-3 months"},
		{Value: "3-6_months", Label: "Within 3-6 months"},
		{Value: "6-12_months", Label: "Within 6-12 months"},
		{Value: "flexible", Label: "I'm flexible"},
	}}
}
