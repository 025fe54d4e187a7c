// Package service implements invoice and contract generation: line-item
// financials, sequential document numbering and PDF production.
package service

import (
	"bytes"
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/documents/transport"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/internal/shared/format"
	"hampstead_backend/platform/apperr"
	"hampstead_backend/platform/logger"
)

// Document number counters start here; the first issued number is 1001.
const sequenceStart = 1000

// Storage folders, one per document family.
const (
	invoiceFolder  = "invoices"
	contractFolder = "contracts"
)

var (
	vatRate    = decimal.RequireFromString("0.20")
	hundred    = decimal.NewFromInt(100)
	defaultVAT = decimal.NewFromInt(20)
)

// schedulePercentages maps invoice type to its share of the contract total.
var schedulePercentages = map[string]decimal.Decimal{
	transport.InvoiceTypeDeposit: decimal.NewFromInt(10),
	transport.InvoiceTypeInterim: decimal.NewFromInt(45),
	transport.InvoiceTypeFinal:   decimal.NewFromInt(45),
}

// Service generates invoices and contracts. The store is optional; a nil
// store skips upload.
type Service struct {
	gen         *pdf.Generator
	store       storage.DocumentStore
	log         *logger.Logger
	invoiceSeq  *Sequence
	contractSeq *Sequence
	now         func() time.Time
}

// New creates the documents service.
func New(gen *pdf.Generator, store storage.DocumentStore, log *logger.Logger) *Service {
	return &Service{
		gen:         gen,
		store:       store,
		log:         log,
		invoiceSeq:  NewSequence(sequenceStart),
		contractSeq: NewSequence(sequenceStart),
		now:         time.Now,
	}
}

// CreateInvoice builds the financials, renders the PDF and optionally
// stores it.
func (s *Service) CreateInvoice(ctx context.Context, req transport.InvoiceRequest) (transport.InvoiceResponse, error) {
	now := s.now()

	lines, err := s.invoiceLines(req)
	if err != nil {
		return transport.InvoiceResponse{}, err
	}

	subtotal, vatTotal := decimal.Zero, decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Net)
		vatTotal = vatTotal.Add(line.VAT)
	}
	total := subtotal.Add(vatTotal)

	dueDate := now.AddDate(0, 0, req.PaymentTermsDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	number := format.InvoiceNumber(now, s.invoiceSeq.Next())

	s.log.Info("invoice_generation_started",
		"invoice_number", number,
		"invoice_type", req.InvoiceType,
		"customer", req.Customer.Name,
	)

	raw, err := s.gen.RenderInvoice(pdf.InvoiceDocument{
		InvoiceNumber:      number,
		IssuedAt:           now,
		DueAt:              dueDate,
		CustomerName:       req.Customer.Name,
		CustomerEmail:      req.Customer.Email,
		CustomerPhone:      req.Customer.Phone,
		BillingAddress:     req.Customer.FullAddress(),
		PropertyAddress:    req.PropertyAddress,
		ContractReference:  req.ContractReference,
		QuoteReference:     req.QuoteReference,
		ProjectReference:   req.ProjectReference,
		Lines:              lines,
		Subtotal:           subtotal,
		VATTotal:           vatTotal,
		Total:              total,
		AmountPaid:         req.AmountPaid,
		IncludeBankDetails: req.BankDetailsIncluded(),
		Notes:              req.Notes,
	})
	if err != nil {
		return transport.InvoiceResponse{}, apperr.Wrap(apperr.KindInternal, "invoice rendering failed", err)
	}

	resp := transport.InvoiceResponse{
		Success:       true,
		InvoiceNumber: number,
		Subtotal:      subtotal,
		VATTotal:      vatTotal,
		Total:         total,
		TotalDue:      total.Sub(req.AmountPaid),
		DueDate:       dueDate,
		GeneratedAt:   now,
		Message:       "Invoice generated successfully",
	}

	if req.StoreDocument && s.store != nil {
		resp.FileKey, resp.DownloadURL = s.upload(ctx, invoiceFolder, number, raw)
	}

	s.log.Info("invoice_generated",
		"invoice_number", number,
		"total", total.StringFixed(2),
		"total_due", resp.TotalDue.StringFixed(2),
	)
	return resp, nil
}

// invoiceLines computes net, VAT and gross per row. When no explicit lines
// are given the invoice bills its payment-schedule share of the contract
// total (deposit 10%, interim 45%, final 45%).
func (s *Service) invoiceLines(req transport.InvoiceRequest) ([]pdf.InvoiceLine, error) {
	requests := req.Lines
	if len(requests) == 0 {
		if req.ContractTotal == nil || !req.ContractTotal.IsPositive() {
			return nil, apperr.New(apperr.KindValidation, "either line_items or a positive contract_total is required")
		}
		pct := schedulePercentages[req.InvoiceType]
		share := req.ContractTotal.Mul(pct).Div(hundred).Round(2)
		requests = []transport.InvoiceLineRequest{{
			Description: req.InvoiceDescription,
			Quantity:    decimal.NewFromInt(1),
			Unit:        "job",
			UnitPrice:   share,
		}}
	}

	lines := make([]pdf.InvoiceLine, 0, len(requests))
	for _, r := range requests {
		quantity := r.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}
		unit := r.Unit
		if unit == "" {
			unit = "item"
		}
		rate := defaultVAT
		if r.VATRate != nil {
			rate = *r.VATRate
		}

		net := quantity.Mul(r.UnitPrice).Round(2)
		vat := net.Mul(rate).Div(hundred).Round(2)

		lines = append(lines, pdf.InvoiceLine{
			Description: r.Description,
			Quantity:    quantity,
			Unit:        unit,
			UnitPrice:   r.UnitPrice,
			VATRate:     rate,
			Net:         net,
			VAT:         vat,
			Gross:       net.Add(vat),
		})
	}
	return lines, nil
}

// CreateContract builds the contract sum, milestone schedule and PDF.
func (s *Service) CreateContract(ctx context.Context, req transport.ContractRequest) (transport.ContractResponse, error) {
	if !req.ContractValue.IsPositive() {
		return transport.ContractResponse{}, apperr.New(apperr.KindValidation, "contract_value must be positive")
	}

	now := s.now()
	vat := req.ContractValue.Mul(vatRate).Round(2)
	total := req.ContractValue.Add(vat)

	start := now.AddDate(0, 0, 14)
	if req.EstimatedStartDate != nil {
		start = *req.EstimatedStartDate
	}
	completion := start.AddDate(0, 0, req.EstimatedDurationWeeks*7)

	number := format.ContractNumber(now, s.contractSeq.Next())

	s.log.Info("contract_generation_started",
		"contract_number", number,
		"client", req.Client.Name,
		"project_title", req.ProjectTitle,
	)

	scopes := make([]pdf.ContractScope, 0, len(req.ScopeItems))
	for _, item := range req.ScopeItems {
		scopes = append(scopes, pdf.ContractScope{
			Category:    item.Category,
			Description: item.Description,
			Included:    item.Included,
			Excluded:    item.Excluded,
		})
	}

	raw, err := s.gen.RenderContract(pdf.ContractDocument{
		ContractNumber:          number,
		QuoteReference:          req.QuoteReference,
		IssuedAt:                now,
		ClientName:              req.Client.Name,
		ClientAddress:           req.Client.FullAddress(),
		ClientEmail:             req.Client.Email,
		ClientPhone:             req.Client.Phone,
		PropertyAddress:         req.PropertyAddress,
		ProjectTitle:            req.ProjectTitle,
		ProjectDescription:      req.ProjectDescription,
		ScopeItems:              scopes,
		ContractValue:           req.ContractValue,
		VATAmount:               vat,
		TotalIncVAT:             total,
		Milestones:              s.milestones(req, total),
		StartDate:               start,
		DurationWeeks:           req.EstimatedDurationWeeks,
		CompletionDate:          completion,
		PlanningRequired:        req.PlanningRequired,
		PlanningReference:       req.PlanningReference,
		BuildingControlRequired: req.BuildingControlNeeded(),
		PartyWallRequired:       req.PartyWallRequired,
		SpecialConditions:       req.SpecialConditions,
	})
	if err != nil {
		return transport.ContractResponse{}, apperr.Wrap(apperr.KindInternal, "contract rendering failed", err)
	}

	resp := transport.ContractResponse{
		Success:        true,
		ContractNumber: number,
		ContractValue:  req.ContractValue,
		VATAmount:      vat,
		TotalIncVAT:    total,
		GeneratedAt:    now,
		Message:        "Contract generated successfully",
	}

	if req.StoreDocument && s.store != nil {
		resp.FileKey, resp.DownloadURL = s.upload(ctx, contractFolder, number, raw)
	}

	s.log.Info("contract_generated",
		"contract_number", number,
		"total_including_vat", total.StringFixed(2),
	)
	return resp, nil
}

// milestones applies request overrides or the standard schedule. The last
// milestone absorbs rounding so amounts always sum to the contract total.
func (s *Service) milestones(req transport.ContractRequest, total decimal.Decimal) []pdf.ContractMilestone {
	type step struct {
		stage      string
		percentage int
		due        string
	}

	steps := []step{
		{"Deposit on signing", 25, "Due upon contract signing"},
		{"First Fix Complete", 25, "Upon completion of first fix"},
		{"Second Fix Complete", 25, "Upon completion of second fix"},
		{"Practical Completion", 20, "Upon practical completion"},
		{"Retention Release", 5, "12 months after completion"},
	}
	if len(req.Milestones) > 0 {
		steps = steps[:0]
		for _, m := range req.Milestones {
			steps = append(steps, step{m.Stage, m.Percentage, m.DueDescription})
		}
	}

	milestones := make([]pdf.ContractMilestone, 0, len(steps))
	allocated := decimal.Zero
	for i, st := range steps {
		amount := total.Mul(decimal.NewFromInt(int64(st.percentage))).Div(hundred).Round(2)
		if i == len(steps)-1 {
			amount = total.Sub(allocated)
		}
		allocated = allocated.Add(amount)
		milestones = append(milestones, pdf.ContractMilestone{
			Stage:      st.stage,
			Percentage: st.percentage,
			Amount:     amount,
			Due:        st.due,
		})
	}
	return milestones
}

func (s *Service) upload(ctx context.Context, folder, number string, raw []byte) (fileKey, downloadURL string) {
	key, err := s.store.UploadDocument(ctx, folder, number+".pdf", "application/pdf", bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		s.log.Error("document_upload_failed", "document_number", number, "error", err)
		return "", ""
	}
	presigned, err := s.store.PresignDownload(ctx, key)
	if err != nil {
		return key, ""
	}
	return key, presigned.URL
}
