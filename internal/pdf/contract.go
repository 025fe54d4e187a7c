package pdf

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"hampstead_backend/internal/shared/format"
)

// ContractScope is a numbered scope-of-works section.
type ContractScope struct {
	Category    string
	Description string
	Included    []string
	Excluded    []string
}

// ContractMilestone is a row in the payment schedule table.
type ContractMilestone struct {
	Stage      string
	Percentage int
	Amount     decimal.Decimal
	Due        string
}

// ContractDocument carries everything rendered into a building contract PDF.
type ContractDocument struct {
	ContractNumber string
	QuoteReference string
	IssuedAt       time.Time

	ClientName    string
	ClientAddress string
	ClientEmail   string
	ClientPhone   string

	PropertyAddress string

	ProjectTitle       string
	ProjectDescription string
	ScopeItems         []ContractScope

	ContractValue decimal.Decimal
	VATAmount     decimal.Decimal
	TotalIncVAT   decimal.Decimal

	Milestones []ContractMilestone

	StartDate      time.Time
	DurationWeeks  int
	CompletionDate time.Time

	PlanningRequired        bool
	PlanningReference       string
	BuildingControlRequired bool
	PartyWallRequired       bool

	SpecialConditions []string
}

// RenderContract produces the building contract PDF.
func (g *Generator) RenderContract(doc ContractDocument) ([]byte, error) {
	pdf, tr := g.doc()
	g.letterhead(pdf, tr)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(170, 10, "BUILDING CONTRACT", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(85, 6, "Contract Reference: "+doc.ContractNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 6, "Date: "+format.DateUK(doc.IssuedAt), "", 1, "R", false, 0, "")
	if doc.QuoteReference != "" {
		pdf.CellFormat(170, 6, "Quote Reference: "+doc.QuoteReference, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	g.renderContractParties(pdf, tr, doc)
	g.renderContractProject(pdf, tr, doc)
	g.renderContractScope(pdf, tr, doc.ScopeItems)
	g.renderContractSum(pdf, tr, doc)
	g.renderContractPayments(pdf, tr, doc.Milestones)
	g.renderContractTimeline(pdf, doc)
	g.renderContractTerms(pdf, tr)
	g.renderSpecialConditions(pdf, tr, doc.SpecialConditions)
	g.renderSignatures(pdf, doc)

	g.footer(pdf, tr)
	return output(pdf)
}

func (g *Generator) renderContractParties(pdf *gofpdf.Fpdf, tr func(string) string, doc ContractDocument) {
	g.sectionHeader(pdf, "1. The Parties")

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(170, 5, "The Contractor:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	contractor := g.company.GetCompanyName() + "\n" +
		g.company.GetCompanyAddress() + "\n" +
		"Company Registration: " + g.company.GetCompanyRegNumber() + "\n" +
		"VAT Registration: " + g.company.GetCompanyVATNumber()
	pdf.MultiCell(170, 5, tr(contractor), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(170, 5, "The Client:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	client := doc.ClientName + "\n" + doc.ClientAddress +
		"\nEmail: " + doc.ClientEmail + "\nPhone: " + doc.ClientPhone
	pdf.MultiCell(170, 5, tr(client), "", "L", false)
	pdf.Ln(4)
}

func (g *Generator) renderContractProject(pdf *gofpdf.Fpdf, tr func(string) string, doc ContractDocument) {
	g.sectionHeader(pdf, "2. The Project")

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(170, 5, tr("Property Address: "+doc.PropertyAddress), "", "L", false)
	pdf.MultiCell(170, 5, tr("Project Title: "+doc.ProjectTitle), "", "L", false)
	pdf.MultiCell(170, 5, tr("Project Description: "+doc.ProjectDescription), "", "L", false)

	var permissions []string
	if doc.PlanningRequired {
		if doc.PlanningReference != "" {
			permissions = append(permissions, "Planning Permission: Ref: "+doc.PlanningReference)
		} else {
			permissions = append(permissions, "Planning Permission: Required")
		}
	}
	if doc.BuildingControlRequired {
		permissions = append(permissions, "Building Control: Required")
	}
	if doc.PartyWallRequired {
		permissions = append(permissions, "Party Wall Agreement: Required")
	}
	if len(permissions) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(170, 5, "Permissions & Approvals:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, p := range permissions {
			pdf.CellFormat(170, 5, tr("  - "+p), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
}

func (g *Generator) renderContractScope(pdf *gofpdf.Fpdf, tr func(string) string, items []ContractScope) {
	g.sectionHeader(pdf, "3. Scope of Works")

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(170, 5, "The Contractor agrees to carry out and complete the following works:", "", "L", false)
	pdf.Ln(1)

	for i, scope := range items {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(170, 6, fmt.Sprintf("3.%d %s", i+1, scope.Category), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(170, 5, tr(scope.Description), "", "L", false)

		if len(scope.Included) > 0 {
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(170, 4, "Included in this section:", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			for _, item := range scope.Included {
				pdf.CellFormat(170, 5, tr("    - "+item), "", 1, "L", false, 0, "")
			}
		}
		if len(scope.Excluded) > 0 {
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(170, 4, "Excluded from this section:", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			for _, item := range scope.Excluded {
				pdf.CellFormat(170, 5, tr("    - "+item), "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(1)
	}
	pdf.Ln(3)
}

func (g *Generator) renderContractSum(pdf *gofpdf.Fpdf, tr func(string) string, doc ContractDocument) {
	g.sectionHeader(pdf, "4. Contract Sum")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(120, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(120, 7, "Contract Sum (excluding VAT)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, tr(format.Currency(doc.ContractValue)), "1", 1, "R", false, 0, "")
	pdf.CellFormat(120, 7, "VAT @ 20%", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, tr(format.Currency(doc.VATAmount)), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(120, 7, "Total Contract Sum (including VAT)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, tr(format.Currency(doc.TotalIncVAT)), "1", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (g *Generator) renderContractPayments(pdf *gofpdf.Fpdf, tr func(string) string, milestones []ContractMilestone) {
	g.sectionHeader(pdf, "5. Payment Schedule")

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(55, 7, "Stage", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Percentage", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Due", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, m := range milestones {
		pdf.CellFormat(55, 7, tr(m.Stage), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d%%", m.Percentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(format.Currency(m.Amount)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, tr(m.Due), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(170, 4, "Payments are due within 7 days of invoice. Late payments may incur interest at 4% above Bank of England base rate.", "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func (g *Generator) renderContractTimeline(pdf *gofpdf.Fpdf, doc ContractDocument) {
	g.sectionHeader(pdf, "6. Project Timeline")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(170, 5, "Estimated Start Date: "+format.DateUK(doc.StartDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(170, 5, fmt.Sprintf("Estimated Duration: %d weeks", doc.DurationWeeks), "", 1, "L", false, 0, "")
	pdf.CellFormat(170, 5, "Target Completion: "+format.DateUK(doc.CompletionDate), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(170, 4, "The above dates are estimates. The Contractor will notify the Client of any changes to the programme. Completion may be affected by unforeseen circumstances, weather conditions, or client-requested variations.", "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

var contractTerms = []struct{ num, title, text string }{
	{"7.1", "Variations", "Any changes to the scope of works must be agreed in writing. Variations may affect the contract sum and completion date."},
	{"7.2", "Access", "The Client shall provide the Contractor with access to the property during normal working hours (Monday to Friday, 8am to 5pm)."},
	{"7.3", "Insurance", "The Contractor maintains Public Liability Insurance of £5,000,000 and Employer's Liability Insurance of £10,000,000."},
	{"7.4", "Health & Safety", "The Contractor will comply with all relevant health and safety legislation and maintain a safe working environment."},
	{"7.5", "Materials", "All materials shall be new and of good quality unless otherwise agreed. Reasonable substitutions may be made with Client approval."},
	{"7.6", "Subcontractors", "The Contractor may employ specialist subcontractors for specific works. The Contractor remains responsible for their work."},
	{"7.7", "Defects Liability", "The Contractor will rectify any defects arising from workmanship or materials for a period of 12 months from practical completion."},
	{"7.8", "Disputes", "In the event of a dispute, both parties agree to attempt resolution through mediation before legal proceedings."},
	{"7.9", "Termination", "Either party may terminate this contract with 14 days written notice. The Client shall pay for all works completed to date."},
	{"7.10", "Governing Law", "This contract shall be governed by and construed in accordance with the laws of England and Wales."},
}

func (g *Generator) renderContractTerms(pdf *gofpdf.Fpdf, tr func(string) string) {
	g.sectionHeader(pdf, "7. Terms and Conditions")

	for _, term := range contractTerms {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(170, 5, term.num+" "+term.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(170, 5, tr(term.text), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(3)
}

func (g *Generator) renderSpecialConditions(pdf *gofpdf.Fpdf, tr func(string) string, conditions []string) {
	if len(conditions) == 0 {
		return
	}
	g.sectionHeader(pdf, "8. Special Conditions")
	pdf.SetFont("Arial", "", 9)
	for i, condition := range conditions {
		pdf.MultiCell(170, 5, tr(fmt.Sprintf("8.%d %s", i+1, condition)), "", "L", false)
	}
	pdf.Ln(4)
}

func (g *Generator) renderSignatures(pdf *gofpdf.Fpdf, doc ContractDocument) {
	pdf.AddPage()
	g.sectionHeader(pdf, "Signatures")

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(170, 5, "By signing below, both parties agree to be bound by the terms of this contract.", "", "L", false)
	pdf.Ln(8)

	block := func(party, name string) {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(170, 6, "For and on behalf of the "+party+":", "", 1, "L", false, 0, "")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(80, 5, "", "T", 1, "L", false, 0, "")
		pdf.CellFormat(170, 5, "Signature", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.CellFormat(170, 5, "Name: "+name, "", 1, "L", false, 0, "")
		pdf.CellFormat(170, 5, "Date: _______________________", "", 1, "L", false, 0, "")
		pdf.Ln(8)
	}

	block("Contractor", g.company.GetCompanyName())
	block("Client", doc.ClientName)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(170, 6, "Witness (optional):", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(85, 8, "Signature: _______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 8, "Name: _______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(85, 8, "Address: _______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(85, 8, "Date: _______________________", "", 1, "L", false, 0, "")
}
