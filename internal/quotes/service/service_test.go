package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hampstead_backend/internal/adapters/storage"
	"hampstead_backend/internal/email"
	"hampstead_backend/internal/events"
	"hampstead_backend/internal/pdf"
	"hampstead_backend/internal/quotes/pricing"
	"hampstead_backend/internal/quotes/transport"
	"hampstead_backend/internal/rules"
	"hampstead_backend/platform/logger"
)

type captureBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *captureBus) Subscribe(eventName string, handler events.Handler) {}

func (b *captureBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

type captureStore struct {
	uploads []string
}

func (s *captureStore) UploadDocument(ctx context.Context, folder, fileName, contentType string, content io.Reader, size int64) (string, error) {
	key := folder + "/" + fileName
	s.uploads = append(s.uploads, key)
	return key, nil
}

func (s *captureStore) PresignDownload(ctx context.Context, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://minio.test/" + fileKey, FileKey: fileKey}, nil
}

func (s *captureStore) DownloadDocument(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (s *captureStore) DeleteDocument(ctx context.Context, fileKey string) error { return nil }

func (s *captureStore) EnsureBucketExists(ctx context.Context) error { return nil }

type captureSender struct {
	quoteEmails []email.QuoteEmail
	attachments int
}

func (s *captureSender) SendQuoteEmail(ctx context.Context, toEmail string, quote email.QuoteEmail, attachments ...email.Attachment) error {
	s.quoteEmails = append(s.quoteEmails, quote)
	s.attachments += len(attachments)
	return nil
}

func (s *captureSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert email.HotLeadAlert) error {
	return nil
}

type testCompany struct{}

func (testCompany) GetCompanyName() string       { return "Hampstead Renovations Ltd" }
func (testCompany) GetCompanyAddress() string    { return "45 Heath Street, London NW3 6TE" }
func (testCompany) GetCompanyPhone() string      { return "020 7123 4567" }
func (testCompany) GetCompanyEmail() string      { return "info@hampsteadrenovations.co.uk" }
func (testCompany) GetCompanyVATNumber() string  { return "GB 123 4567 89" }
func (testCompany) GetCompanyRegNumber() string  { return "12345678" }
func (testCompany) GetBankName() string          { return "Barclays Bank" }
func (testCompany) GetBankSortCode() string      { return "20-00-00" }
func (testCompany) GetBankAccountNumber() string { return "12345678" }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testMatrix() *rules.PricingMatrix {
	return &rules.PricingMatrix{
		Categories: map[string]rules.Category{
			"kitchen": {
				DisplayName: "Kitchen",
				BaseItems: []rules.CatalogItem{
					{
						Name:           "Base works",
						Unit:           "job",
						Quantity:       decimal.NewFromInt(1),
						PriceEssential: decPtr("10000.00"),
						PricePremium:   decPtr("25000.00"),
					},
				},
				Timeline: &rules.Timeline{
					DurationWeeks: "6-8",
					Phases:        []string{"Strip out", "First fix", "Second fix"},
				},
			},
		},
	}
}

func newTestService(bus events.Bus, store storage.DocumentStore, sender email.Sender) *Service {
	log := logger.New("development")
	matrix := testMatrix()
	engine := pricing.NewEngine(matrix, log)
	gen := pdf.New(testCompany{})

	svc := New(engine, matrix, gen, store, sender, bus, log)
	svc.now = func() time.Time { return time.Date(2024, 12, 4, 10, 0, 0, 0, time.UTC) }
	svc.newID = func() uuid.UUID { return uuid.MustParse("a1b2c3d4-e5f6-4788-99aa-bbccddeeff00") }
	return svc
}

func quoteRequest() transport.QuoteRequest {
	req := transport.QuoteRequest{
		Customer: transport.CustomerDetails{
			Name:         "Sarah Mitchell",
			Email:        "sarah@example.com",
			Phone:        "020 7485 1234",
			AddressLine1: "12 Flask Walk",
			Postcode:     "NW3 1HE",
		},
		Project: transport.ProjectDetails{
			ProjectType: "kitchen",
			Tier:        "premium",
		},
	}
	req.Normalize()
	return req
}

func TestGenerateAssignsNumberAndValidity(t *testing.T) {
	bus := &captureBus{}
	svc := newTestService(bus, nil, &captureSender{})

	result, err := svc.Generate(context.Background(), quoteRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.QuoteNumber != "HR-202412-A1B2C3" {
		t.Errorf("QuoteNumber = %q, want HR-202412-A1B2C3", result.QuoteNumber)
	}
	wantValid := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	if !result.ValidUntil.Equal(wantValid) {
		t.Errorf("ValidUntil = %v, want %v", result.ValidUntil, wantValid)
	}
	if !result.Subtotal.Equal(dec("25000.00")) {
		t.Errorf("Subtotal = %s, want 25000.00", result.Subtotal)
	}
	if !result.VAT.Equal(dec("5000.00")) {
		t.Errorf("VAT = %s, want 5000.00", result.VAT)
	}
	if !result.Total.Equal(dec("30000.00")) {
		t.Errorf("Total = %s, want 30000.00", result.Total)
	}
	if result.FileKey != "" {
		t.Errorf("FileKey = %q, want empty without a store", result.FileKey)
	}
}

func TestGeneratePublishesQuoteGenerated(t *testing.T) {
	bus := &captureBus{}
	svc := newTestService(bus, nil, &captureSender{})

	if _, err := svc.Generate(context.Background(), quoteRequest()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	event, ok := published[0].(events.QuoteGenerated)
	if !ok {
		t.Fatalf("published event has type %T, want QuoteGenerated", published[0])
	}
	if event.EventName() != events.EventQuoteGenerated {
		t.Errorf("EventName = %q, want %q", event.EventName(), events.EventQuoteGenerated)
	}
	if event.QuoteNumber != "HR-202412-A1B2C3" {
		t.Errorf("QuoteNumber = %q", event.QuoteNumber)
	}
	if !event.Total.Equal(dec("30000.00")) {
		t.Errorf("Total = %s, want 30000.00", event.Total)
	}
}

func TestGenerateStoresAndEmails(t *testing.T) {
	bus := &captureBus{}
	store := &captureStore{}
	sender := &captureSender{}
	svc := newTestService(bus, store, sender)

	req := quoteRequest()
	req.StoreDocument = true
	req.SendEmail = true

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(store.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(store.uploads))
	}
	if !strings.HasSuffix(store.uploads[0], "HR-202412-A1B2C3.pdf") {
		t.Errorf("upload key = %q, want quote number file name", store.uploads[0])
	}
	if result.FileKey != store.uploads[0] {
		t.Errorf("FileKey = %q, want %q", result.FileKey, store.uploads[0])
	}
	if !strings.HasPrefix(result.DownloadURL, "https://minio.test/") {
		t.Errorf("DownloadURL = %q", result.DownloadURL)
	}

	if len(sender.quoteEmails) != 1 {
		t.Fatalf("quote emails = %d, want 1", len(sender.quoteEmails))
	}
	sent := sender.quoteEmails[0]
	if sent.QuoteNumber != "HR-202412-A1B2C3" {
		t.Errorf("emailed QuoteNumber = %q", sent.QuoteNumber)
	}
	if sent.Duration != "6-8 weeks" {
		t.Errorf("emailed Duration = %q, want 6-8 weeks", sent.Duration)
	}
	if sender.attachments != 1 {
		t.Errorf("attachments = %d, want 1", sender.attachments)
	}
}

func TestGenerateUnknownProjectTypeFails(t *testing.T) {
	bus := &captureBus{}
	svc := newTestService(bus, nil, &captureSender{})

	req := quoteRequest()
	req.Project.ProjectType = "landscaping"

	if _, err := svc.Generate(context.Background(), req); err == nil {
		t.Fatal("expected error for project type with no priced items")
	}
	if got := len(bus.published()); got != 0 {
		t.Errorf("published %d events, want 0", got)
	}
}

func TestCalculateReturnsPreview(t *testing.T) {
	svc := newTestService(&captureBus{}, nil, &captureSender{})

	req := transport.CalculateRequest{ProjectType: "kitchen", Postcode: "NW3 1HE"}
	req.Normalize()

	resp := svc.Calculate(req)
	if resp.Tier != "premium" {
		t.Errorf("Tier = %q, want premium default", resp.Tier)
	}
	if len(resp.Quote.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(resp.Quote.Sections))
	}
	if !resp.Quote.Total.Equal(dec("30000.00")) {
		t.Errorf("Total = %s, want 30000.00", resp.Quote.Total)
	}
}
