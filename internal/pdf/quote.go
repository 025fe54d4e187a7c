package pdf

import (
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"hampstead_backend/internal/quotes/pricing"
	"hampstead_backend/internal/shared/format"
)

// QuoteDocument carries everything rendered into a quotation PDF.
type QuoteDocument struct {
	QuoteNumber   string
	IssuedAt      time.Time
	ValidUntil    time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Postcode      string
	ProjectType   string
	Tier          string
	DurationWeeks string
	Phases        []string
	Quote         pricing.PricedQuote
}

// RenderQuote produces the quotation PDF.
func (g *Generator) RenderQuote(doc QuoteDocument) ([]byte, error) {
	pdf, tr := g.doc()
	g.letterhead(pdf, tr)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(170, 10, "QUOTATION", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(85, 6, "Quote Number: "+doc.QuoteNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Date: "+format.DateUK(doc.IssuedAt), "", 1, "R", false, 0, "")
	pdf.CellFormat(85, 6, "Prepared for: "+doc.CustomerName, "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Valid until: "+format.DateUK(doc.ValidUntil), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	g.sectionHeader(pdf, "Project Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(170, 6, "Project: "+format.DisplayName(doc.ProjectType)+" ("+format.DisplayName(doc.Tier)+" specification)", "", 1, "L", false, 0, "")
	pdf.CellFormat(170, 6, tr("Property: "+doc.Address+", "+doc.Postcode), "", 1, "L", false, 0, "")
	if doc.DurationWeeks != "" {
		pdf.CellFormat(170, 6, "Estimated duration: "+doc.DurationWeeks, "", 1, "L", false, 0, "")
	}
	for _, phase := range doc.Phases {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(170, 5, tr("  - "+phase), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range doc.Quote.Sections {
		g.renderQuoteSection(pdf, tr, section)
	}

	g.renderQuoteTotals(pdf, tr, doc.Quote)
	g.renderPaymentSchedule(pdf, tr, doc.Quote.Total)

	pdf.AddPage()
	g.renderQuoteTerms(pdf, tr)

	g.footer(pdf, tr)
	return output(pdf)
}

func (g *Generator) renderQuoteSection(pdf *gofpdf.Fpdf, tr func(string) string, section pricing.Section) {
	g.sectionHeader(pdf, section.Name)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range section.Items {
		pdf.CellFormat(80, 7, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, item.Quantity.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, tr(format.Currency(item.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, tr(format.Currency(item.Total())), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(145, 7, "Section subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, tr(format.Currency(section.Subtotal())), "1", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (g *Generator) renderQuoteTotals(pdf *gofpdf.Fpdf, tr func(string) string, quote pricing.PricedQuote) {
	g.sectionHeader(pdf, "Quote Total")

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, tr(value), "", 1, "R", false, 0, "")
	}

	row("Subtotal", format.Currency(quote.Subtotal), false)
	if quote.DiscountPercentage.IsPositive() {
		row("Volume discount ("+quote.DiscountPercentage.String()+"%)", "-"+format.Currency(quote.DiscountAmount), false)
		row("Subtotal after discount", format.Currency(quote.SubtotalAfterDiscount), false)
	}
	row("VAT (20%)", format.Currency(quote.VAT), false)
	row("Total", format.Currency(quote.Total), true)
	pdf.Ln(4)
}

func (g *Generator) renderPaymentSchedule(pdf *gofpdf.Fpdf, tr func(string) string, total decimal.Decimal) {
	g.sectionHeader(pdf, "Payment Schedule")

	deposit := total.Mul(decimal.RequireFromString("0.10")).Round(2)
	stage := total.Sub(deposit).Div(decimal.NewFromInt(2)).Round(2)
	final := total.Sub(deposit).Sub(stage)

	rows := []struct {
		stage  string
		due    string
		amount decimal.Decimal
	}{
		{"Deposit", "On acceptance", deposit},
		{"Stage payment", "At project midpoint", stage},
		{"Final payment", "On completion", final},
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(60, 7, "Stage", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(60, 7, r.stage, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, r.due, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, tr(format.Currency(r.amount)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

var quoteTerms = []string{
	"1. Quote Validity: This quotation is valid for 30 days from the date of issue. Prices may be subject to change after this period.",
	"2. Scope of Work: This quote covers the works as described above. Any additional works requested will be quoted separately and agreed in writing before commencement.",
	"3. Payment Terms: Payment schedule as outlined above. All payments to be made within 7 days of invoice. We accept bank transfer, credit/debit card, and cheque.",
	"4. Project Timeline: Estimated timelines are provided in good faith but may vary due to unforeseen circumstances, supply chain issues, or client-requested changes.",
	"5. Materials: All materials will be sourced from reputable UK suppliers. Specific brands or products can be specified at client's request, which may affect pricing.",
	"6. Access Requirements: Client agrees to provide reasonable access to the property during normal working hours (8:00 AM - 6:00 PM, Monday to Friday).",
	"7. Insurance: We maintain comprehensive public liability insurance (£5 million) and employer's liability insurance. Certificates available upon request.",
	"8. Guarantees: All workmanship is guaranteed for 2 years from completion. Product warranties as per manufacturer specifications.",
	"9. Variations: Any changes to the agreed specification must be confirmed in writing. A revised quotation will be provided for significant changes.",
	"10. Cancellation: Cancellation after contract signing may incur charges for work already completed and materials ordered.",
	"11. Disputes: We are members of the Federation of Master Builders and follow their code of practice. Any disputes will be handled in accordance with their resolution procedures.",
	"12. GDPR: Your personal data will be processed in accordance with our Privacy Policy.",
}

func (g *Generator) renderQuoteTerms(pdf *gofpdf.Fpdf, tr func(string) string) {
	g.sectionHeader(pdf, "Terms & Conditions")

	pdf.SetFont("Arial", "", 9)
	for _, term := range quoteTerms {
		pdf.MultiCell(170, 5, tr(term), "", "L", false)
		pdf.Ln(1)
	}

	pdf.Ln(6)
	g.sectionHeader(pdf, "Quote Acceptance")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(170, 5, "I confirm that I have read and agree to the terms and conditions above, and wish to proceed with the works as quoted.", "", "L", false)
	pdf.Ln(12)
	pdf.CellFormat(85, 6, "Signed: ____________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Date: ____________________________", "", 1, "L", false, 0, "")
}
