package email

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestQuoteEmailBody(t *testing.T) {
	body := quoteEmailBody(QuoteEmail{
		CustomerName: "Sarah Mitchell",
		ProjectType:  "loft_conversion",
		QuoteNumber:  "HR-202412-A1B2C3",
		Total:        decimal.RequireFromString("48750.00"),
		ValidUntil:   time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
		Duration:     "8-10 weeks",
	})

	for _, want := range []string{
		"Dear Sarah,",
		"loft conversion project",
		"(HR-202412-A1B2C3)",
		"£48,750.00 including VAT",
		"approximately 8-10 weeks",
		"valid until 3rd January 2025",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestQuoteEmailBodyDefaults(t *testing.T) {
	body := quoteEmailBody(QuoteEmail{
		QuoteNumber: "HR-202412-A1B2C3",
		Total:       decimal.NewFromInt(1200),
		ValidUntil:  time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
	})

	if !strings.Contains(body, "Dear there,") {
		t.Fatalf("missing greeting fallback:\n%s", body)
	}
	if !strings.Contains(body, "your renovation project") {
		t.Fatalf("missing service fallback:\n%s", body)
	}
	if strings.Contains(body, "approximately") {
		t.Fatalf("duration paragraph should be omitted when unknown:\n%s", body)
	}
}

func TestHotLeadAlertBody(t *testing.T) {
	body := hotLeadAlertBody(HotLeadAlert{
		LeadID:       "LEAD-20241204-A1B2C3D4",
		Name:         "James Holloway",
		Email:        "james@example.com",
		Phone:        "+442074851234",
		Postcode:     "NW3 2QE",
		ProjectType:  "full_renovation",
		BudgetRange:  "200000_plus",
		TotalScore:   95,
		ResponseTime: "within 1 hour",
	})

	for _, want := range []string{
		"contacted within 1 hour",
		"LEAD-20241204-A1B2C3D4",
		"Full Renovation",
		"95/100",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("alert missing %q:\n%s", want, body)
		}
	}
}
