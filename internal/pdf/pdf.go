// Package pdf renders quotes, invoices and contracts as A4 PDF documents
// with the company letterhead.
package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"hampstead_backend/platform/config"
)

const tagline = "Premium Residential Renovations in North West London"

// Generator renders the company's document types. It is stateless and safe
// for concurrent use.
type Generator struct {
	company config.CompanyConfig
}

// New creates a document generator for the given company identity.
func New(company config.CompanyConfig) *Generator {
	return &Generator{company: company}
}

// doc creates an A4 portrait document with standard margins and returns the
// unicode translator used for the pound sign.
func (g *Generator) doc() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return pdf, tr
}

// letterhead draws the company header at the top of the current page.
func (g *Generator) letterhead(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(170, 10, g.company.GetCompanyName(), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(170, 6, tagline, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	contact := g.company.GetCompanyPhone() + " | " + g.company.GetCompanyEmail() + " | " + g.company.GetCompanyAddress()
	pdf.CellFormat(170, 5, tr(contact), "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)
}

// sectionHeader draws a highlighted section title.
func (g *Generator) sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(170, 8, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

// footer draws the registration line at the bottom of the current page.
func (g *Generator) footer(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetY(-22)
	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	reg := g.company.GetCompanyName() +
		" | Company No. " + g.company.GetCompanyRegNumber() +
		" | VAT No. " + g.company.GetCompanyVATNumber()
	pdf.CellFormat(170, 4, tr(reg), "", 1, "C", false, 0, "")
	pdf.CellFormat(170, 4, "This is a computer-generated document.", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// output finalizes the document into raw bytes.
func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
