package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"hampstead_backend/internal/shared/format"
)

// InvoiceLine is a single billed row. Net, VAT and Gross are precomputed by
// the documents service so the renderer never does money arithmetic.
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
	Net         decimal.Decimal
	VAT         decimal.Decimal
	Gross       decimal.Decimal
}

// InvoiceDocument carries everything rendered into an invoice PDF.
type InvoiceDocument struct {
	InvoiceNumber string
	IssuedAt      time.Time
	DueAt         time.Time

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	BillingAddress  string
	PropertyAddress string

	ContractReference string
	QuoteReference    string
	ProjectReference  string

	Lines      []InvoiceLine
	Subtotal   decimal.Decimal
	VATTotal   decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal

	IncludeBankDetails bool
	Notes              string
}

// AmountDue is the outstanding balance after payments received.
func (d InvoiceDocument) AmountDue() decimal.Decimal {
	return d.Total.Sub(d.AmountPaid)
}

// RenderInvoice produces the invoice PDF.
func (g *Generator) RenderInvoice(doc InvoiceDocument) ([]byte, error) {
	pdf, tr := g.doc()
	g.letterhead(pdf, tr)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(170, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(85, 6, "Invoice Number: "+doc.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Date: "+format.DateUK(doc.IssuedAt), "", 1, "R", false, 0, "")
	pdf.CellFormat(85, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Due: "+format.DateUK(doc.DueAt), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	g.renderInvoiceAddresses(pdf, tr, doc)
	g.renderInvoiceReferences(pdf, doc)
	g.renderInvoiceLines(pdf, tr, doc.Lines)
	g.renderInvoiceTotals(pdf, tr, doc)

	if doc.IncludeBankDetails {
		if err := g.renderBankDetails(pdf, tr, doc); err != nil {
			return nil, err
		}
	}
	if doc.Notes != "" {
		g.sectionHeader(pdf, "Notes")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(170, 5, tr(doc.Notes), "", "L", false)
		pdf.Ln(4)
	}

	g.footer(pdf, tr)
	return output(pdf)
}

func (g *Generator) renderInvoiceAddresses(pdf *gofpdf.Fpdf, tr func(string) string, doc InvoiceDocument) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(85, 6, "Bill To", "", 0, "L", false, 0, "")
	if doc.PropertyAddress != "" {
		pdf.CellFormat(85, 6, "Property Address", "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "", 9)
	left := doc.CustomerName + "\n" + doc.BillingAddress
	if doc.CustomerEmail != "" {
		left += "\n" + doc.CustomerEmail
	}
	if doc.CustomerPhone != "" {
		left += "\n" + doc.CustomerPhone
	}

	y := pdf.GetY()
	pdf.MultiCell(85, 5, tr(left), "", "L", false)
	bottom := pdf.GetY()
	if doc.PropertyAddress != "" {
		pdf.SetXY(105, y)
		pdf.MultiCell(85, 5, tr(doc.PropertyAddress), "", "L", false)
		if pdf.GetY() > bottom {
			bottom = pdf.GetY()
		}
	}
	pdf.SetY(bottom)
	pdf.Ln(4)
}

func (g *Generator) renderInvoiceReferences(pdf *gofpdf.Fpdf, doc InvoiceDocument) {
	var refs []string
	if doc.ContractReference != "" {
		refs = append(refs, "Contract: "+doc.ContractReference)
	}
	if doc.QuoteReference != "" {
		refs = append(refs, "Quote: "+doc.QuoteReference)
	}
	if doc.ProjectReference != "" {
		refs = append(refs, "Project: "+doc.ProjectReference)
	}
	if len(refs) == 0 {
		return
	}
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(170, 5, strings.Join(refs, "  |  "), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

func (g *Generator) renderInvoiceLines(pdf *gofpdf.Fpdf, tr func(string) string, lines []InvoiceLine) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "VAT %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Net Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, line := range lines {
		pdf.CellFormat(70, 7, tr(line.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, line.Quantity.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(15, 7, line.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, tr(format.Currency(line.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 7, line.VATRate.String()+"%", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, tr(format.Currency(line.Net)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) renderInvoiceTotals(pdf *gofpdf.Fpdf, tr func(string) string, doc InvoiceDocument) {
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, tr(value), "", 1, "R", false, 0, "")
	}

	row("Subtotal", format.Currency(doc.Subtotal), false)
	row("VAT", format.Currency(doc.VATTotal), false)
	row("Total", format.Currency(doc.Total), doc.AmountPaid.IsPositive())
	if doc.AmountPaid.IsPositive() {
		row("Amount Paid", format.Currency(doc.AmountPaid), false)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(120, 9, "AMOUNT DUE", "T", 0, "R", false, 0, "")
	pdf.CellFormat(50, 9, tr(format.Currency(doc.AmountDue())), "T", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

// renderBankDetails draws the payment details block with a QR code that
// encodes the transfer reference so customers can scan it in banking apps.
func (g *Generator) renderBankDetails(pdf *gofpdf.Fpdf, tr func(string) string, doc InvoiceDocument) error {
	g.sectionHeader(pdf, "Payment Details")

	rows := []struct{ label, value string }{
		{"Bank", g.company.GetBankName()},
		{"Account Name", g.company.GetCompanyName()},
		{"Sort Code", g.company.GetBankSortCode()},
		{"Account Number", g.company.GetBankAccountNumber()},
		{"Reference", doc.InvoiceNumber},
	}

	top := pdf.GetY()
	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(35, 5, r.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(95, 5, r.value, "", 1, "L", false, 0, "")
	}

	qr, err := paymentQR(g.company.GetCompanyName(), g.company.GetBankSortCode(), g.company.GetBankAccountNumber(), doc.InvoiceNumber, doc.AmountDue())
	if err != nil {
		return err
	}
	imageName := "payment-qr-" + doc.InvoiceNumber
	pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions(imageName, 160, top, 28, 28, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(170, 5, "Please quote the invoice number when making payment. Payment is due within 7 days.", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	return nil
}

// paymentQR encodes the bank transfer details as a PNG QR code.
func paymentQR(accountName, sortCode, accountNumber, reference string, amount decimal.Decimal) ([]byte, error) {
	data := strings.Join([]string{
		"PAY", accountName, sortCode, accountNumber, reference, amount.StringFixed(2),
	}, "|")
	return qrcode.Encode(data, qrcode.Medium, 256)
}
