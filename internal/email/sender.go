// Package email delivers quote documents and internal lead alerts over SMTP.
package email

import (
	"context"
	"time"

	"hampstead_backend/platform/config"

	"github.com/shopspring/decimal"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes
	FileName string // e.g. "HR-202412-A1B2C3.pdf"
	MIMEType string // e.g. "application/pdf"
}

// QuoteEmail carries the fields rendered into the quote delivery email.
type QuoteEmail struct {
	CustomerName string
	ProjectType  string
	QuoteNumber  string
	Total        decimal.Decimal
	ValidUntil   time.Time
	Duration     string
}

// HotLeadAlert carries the fields rendered into the internal hot-lead alert.
type HotLeadAlert struct {
	LeadID       string
	Name         string
	Email        string
	Phone        string
	Postcode     string
	ProjectType  string
	BudgetRange  string
	TotalScore   int
	ResponseTime string
}

type Sender interface {
	SendQuoteEmail(ctx context.Context, toEmail string, quote QuoteEmail, attachments ...Attachment) error
	SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error
}

// NoopSender is used when email delivery is disabled. All sends succeed
// without doing anything.
type NoopSender struct{}

func (NoopSender) SendQuoteEmail(ctx context.Context, toEmail string, quote QuoteEmail, attachments ...Attachment) error {
	return nil
}

func (NoopSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	return nil
}

// NewSender returns an SMTP sender when email is configured, otherwise a noop.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
