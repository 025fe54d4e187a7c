package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hampstead_backend/internal/quotes/pricing"
)

type testCompany struct{}

func (testCompany) GetCompanyName() string       { return "Hampstead Renovations Ltd" }
func (testCompany) GetCompanyAddress() string    { return "45 Heath Street, Hampstead, London NW3 6TE" }
func (testCompany) GetCompanyPhone() string      { return "020 7123 4567" }
func (testCompany) GetCompanyEmail() string      { return "info@hampsteadrenovations.co.uk" }
func (testCompany) GetCompanyVATNumber() string  { return "GB 123 4567 89" }
func (testCompany) GetCompanyRegNumber() string  { return "12345678" }
func (testCompany) GetBankName() string          { return "Barclays Bank" }
func (testCompany) GetBankSortCode() string      { return "20-00-00" }
func (testCompany) GetBankAccountNumber() string { return "12345678" }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertPDF(t *testing.T, raw []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF header")
	}
	if len(raw) < 1000 {
		t.Fatalf("output suspiciously small: %d bytes", len(raw))
	}
}

func TestRenderQuote(t *testing.T) {
	g := New(testCompany{})

	doc := QuoteDocument{
		QuoteNumber:   "HR-202412-AB12CD",
		IssuedAt:      time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Sarah Mitchell",
		CustomerEmail: "sarah@example.com",
		Address:       "12 Flask Walk",
		Postcode:      "NW3 1HE",
		ProjectType:   "kitchen",
		Tier:          "premium",
		DurationWeeks: "6-8 weeks",
		Phases:        []string{"Strip out", "First fix", "Second fix"},
		Quote: pricing.PricedQuote{
			Sections: []pricing.Section{
				{
					Name: "Kitchen",
					Items: []pricing.LineItem{
						{
							Description: "Base works",
							Quantity:    decimal.NewFromInt(1),
							Unit:        "job",
							UnitPrice:   d("25000.00"),
						},
					},
				},
			},
			Subtotal:              d("25000.00"),
			SubtotalAfterDiscount: d("25000.00"),
			VAT:                   d("5000.00"),
			Total:                 d("30000.00"),
		},
	}

	raw, err := g.RenderQuote(doc)
	assertPDF(t, raw, err)
}

func TestRenderInvoice(t *testing.T) {
	g := New(testCompany{})

	doc := InvoiceDocument{
		InvoiceNumber:  "INV-2024-1001",
		IssuedAt:       time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC),
		DueAt:          time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC),
		CustomerName:   "Sarah Mitchell",
		CustomerEmail:  "sarah@example.com",
		BillingAddress: "12 Flask Walk, London, NW3 1HE",
		QuoteReference: "HR-202412-AB12CD",
		Lines: []InvoiceLine{
			{
				Description: "Deposit on kitchen renovation",
				Quantity:    decimal.NewFromInt(1),
				Unit:        "job",
				UnitPrice:   d("2500.00"),
				VATRate:     decimal.NewFromInt(20),
				Net:         d("2500.00"),
				VAT:         d("500.00"),
				Gross:       d("3000.00"),
			},
		},
		Subtotal:           d("2500.00"),
		VATTotal:           d("500.00"),
		Total:              d("3000.00"),
		AmountPaid:         d("1000.00"),
		IncludeBankDetails: true,
		Notes:              "Thank you for your business.",
	}

	if got := doc.AmountDue(); !got.Equal(d("2000.00")) {
		t.Fatalf("AmountDue = %s, want 2000.00", got)
	}

	raw, err := g.RenderInvoice(doc)
	assertPDF(t, raw, err)
}

func TestRenderContract(t *testing.T) {
	g := New(testCompany{})

	doc := ContractDocument{
		ContractNumber:     "CON-2024-1001",
		QuoteReference:     "HR-202412-AB12CD",
		IssuedAt:           time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC),
		ClientName:         "Sarah Mitchell",
		ClientAddress:      "12 Flask Walk, London, NW3 1HE",
		ClientEmail:        "sarah@example.com",
		ClientPhone:        "+442074851234",
		PropertyAddress:    "12 Flask Walk, London, NW3 1HE",
		ProjectTitle:       "Kitchen Extension and Renovation",
		ProjectDescription: "Single storey rear extension with full kitchen refit.",
		ScopeItems: []ContractScope{
			{
				Category:    "Kitchen Extension",
				Description: "Construction of single storey rear extension.",
				Included:    []string{"Foundations", "Brickwork", "Roofing"},
				Excluded:    []string{"Landscaping"},
			},
		},
		ContractValue: d("50000.00"),
		VATAmount:     d("10000.00"),
		TotalIncVAT:   d("60000.00"),
		Milestones: []ContractMilestone{
			{Stage: "Deposit on signing", Percentage: 25, Amount: d("15000.00"), Due: "Due upon contract signing"},
			{Stage: "First Fix Complete", Percentage: 25, Amount: d("15000.00"), Due: "Upon completion of first fix"},
			{Stage: "Second Fix Complete", Percentage: 25, Amount: d("15000.00"), Due: "Upon completion of second fix"},
			{Stage: "Practical Completion", Percentage: 20, Amount: d("12000.00"), Due: "Upon practical completion"},
			{Stage: "Retention Release", Percentage: 5, Amount: d("3000.00"), Due: "12 months after completion"},
		},
		StartDate:               time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		DurationWeeks:           12,
		CompletionDate:          time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		BuildingControlRequired: true,
		SpecialConditions:       []string{"Client to supply kitchen appliances."},
	}

	raw, err := g.RenderContract(doc)
	assertPDF(t, raw, err)
}
