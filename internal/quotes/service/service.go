// Package service implements quote generation: pricing, document numbering,
// PDF rendering, optional storage upload and customer email.
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/internal/quotes/pricing"
	"hampstead_backend/internal/quotes/transport"
	"hampstead_backend/internal/rules"
	"hampstead_backend/internal/shared/format"
	"hampstead_backend/platform/apperr"
	"hampstead_backend/platform/logger"
)

const (
	// QuoteValidityDays is how long a generated quote stays open.
	QuoteValidityDays = 30

	generatedMessage = "Quote generated successfully"
)

// Service orchestrates quote generation. The store and sender are optional;
// a nil store skips upload and a NoopSender skips customer email.
type Service struct {
	engine *pricing.Engine
	matrix *rules.PricingMatrix
	gen    *pdf.Generator
	store  storage.DocumentStore
	sender email.Sender
	bus    events.Bus
	log    *logger.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// New creates the quotes service.
func New(engine *pricing.Engine, matrix *rules.PricingMatrix, gen *pdf.Generator, store storage.DocumentStore, sender email.Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		engine: engine,
		matrix: matrix,
		gen:    gen,
		store:  store,
		sender: sender,
		bus:    bus,
		log:    log,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Calculate prices a project without producing a document.
func (s *Service) Calculate(req transport.CalculateRequest) transport.CalculateResponse {
	quote := s.engine.Price(req.ProjectType, req.Tier, req.Postcode, req.UpgradesIncluded())
	return transport.CalculateResponse{
		ProjectType: req.ProjectType,
		Tier:        req.Tier,
		Quote:       quote,
	}
}

// Generate produces a full quote: priced line items, a quote number, a PDF,
// and optionally a stored copy and a customer email.
func (s *Service) Generate(ctx context.Context, req transport.QuoteRequest) (transport.GeneratedQuote, error) {
	quoteID := s.newID().String()
	quoteNumber := s.nextQuoteNumber()
	now := s.now()
	validUntil := now.AddDate(0, 0, QuoteValidityDays)

	s.log.Info("quote_generation_started",
		"quote_number", quoteNumber,
		"customer", req.Customer.Name,
		"project_type", req.Project.ProjectType,
		"tier", req.Project.Tier,
	)

	priced := s.engine.Price(req.Project.ProjectType, req.Project.Tier, req.Customer.Postcode, req.UpgradesIncluded())
	if len(priced.Sections) == 0 {
		return transport.GeneratedQuote{}, apperr.New(apperr.KindValidation, "no priced items for project type "+req.Project.ProjectType)
	}

	timeline := s.engine.ProjectTimeline(req.Project.ProjectType)
	duration := timeline.DurationWeeks + " weeks"

	raw, err := s.gen.RenderQuote(pdf.QuoteDocument{
		QuoteNumber:   quoteNumber,
		IssuedAt:      now,
		ValidUntil:    validUntil,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		Address:       req.Customer.FullAddress(),
		Postcode:      req.Customer.Postcode,
		ProjectType:   req.Project.ProjectType,
		Tier:          req.Project.Tier,
		DurationWeeks: duration,
		Phases:        timeline.Phases,
		Quote:         priced,
	})
	if err != nil {
		return transport.GeneratedQuote{}, apperr.Wrap(apperr.KindInternal, "quote rendering failed", err)
	}

	result := transport.GeneratedQuote{
		QuoteID:     quoteID,
		QuoteNumber: quoteNumber,
		Subtotal:    priced.SubtotalAfterDiscount,
		Discount:    priced.DiscountAmount,
		VAT:         priced.VAT,
		Total:       priced.Total,
		ValidUntil:  validUntil,
		CreatedAt:   now,
		Message:     generatedMessage,
	}

	if req.StoreDocument && s.store != nil {
		folder := format.ProjectFolderName(now, req.Customer.Name, req.Customer.Postcode, req.Project.ProjectType)
		fileKey, err := s.store.UploadDocument(ctx, folder, quoteNumber+".pdf", "application/pdf", bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			// The quote itself succeeded; surface storage failure in logs only.
			s.log.Error("quote_upload_failed", "quote_number", quoteNumber, "error", err)
		} else {
			result.FileKey = fileKey
			if presigned, err := s.store.PresignDownload(ctx, fileKey); err == nil {
				result.DownloadURL = presigned.URL
			}
		}
	}

	if req.SendEmail {
		err := s.sender.SendQuoteEmail(ctx, req.Customer.Email, email.QuoteEmail{
			CustomerName: req.Customer.Name,
			ProjectType:  req.Project.ProjectType,
			QuoteNumber:  quoteNumber,
			Total:        priced.Total,
			ValidUntil:   validUntil,
			Duration:     duration,
		}, email.Attachment{
			Content:  raw,
			FileName: quoteNumber + ".pdf",
			MIMEType: "application/pdf",
		})
		if err != nil {
			s.log.Error("quote_email_failed", "quote_number", quoteNumber, "error", err)
		}
	}

	s.bus.Publish(ctx, events.NewQuoteGenerated(quoteID, quoteNumber, req.Customer.Name, req.Customer.Email, req.Project.ProjectType, priced.Total))

	s.log.Info("quote_generated",
		"quote_number", quoteNumber,
		"total", priced.Total.StringFixed(2),
		"file_key", result.FileKey,
	)
	return result, nil
}

// PricingMatrix exposes the loaded catalog for diagnostics.
func (s *Service) PricingMatrix() *rules.PricingMatrix {
	return s.matrix
}

// nextQuoteNumber generates a reference like "HR-202412-A1B2C3".
func (s *Service) nextQuoteNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(s.newID().String(), "-", ""))
	return fmt.Sprintf("HR-%s-%s", s.now().UTC().Format("200601"), hex[:6])
}
