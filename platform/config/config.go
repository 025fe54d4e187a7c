// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// APIKeyConfig provides the shared key protecting internal endpoints.
type APIKeyConfig interface {
	GetAPIKey() string
	IsAPIKeyRequired() bool
}

// RulesConfig provides locations of the scoring and pricing rule files.
type RulesConfig interface {
	GetScoringRulesPath() string
	GetPricingMatrixPath() string
}

// CompanyConfig provides company identity used on generated documents.
type CompanyConfig interface {
	GetCompanyName() string
	GetCompanyAddress() string
	GetCompanyPhone() string
	GetCompanyEmail() string
	GetCompanyVATNumber() string
	GetCompanyRegNumber() string
	GetBankName() string
	GetBankSortCode() string
	GetBankAccountNumber() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// StorageConfig provides settings for MinIO S3-compatible document storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketDocuments() string
	IsMinIOEnabled() bool
}

// DeliveryConfig provides settings for background lead delivery.
type DeliveryConfig interface {
	GetRedisURL() string
	GetDeliveryQueue() string
	GetDeliveryConcurrency() int
	IsDeliveryEnabled() bool
}

// CRMConfig provides settings for the HubSpot sync client.
type CRMConfig interface {
	GetHubSpotAPIKey() string
	IsCRMEnabled() bool
}

// WebhookConfig provides settings for the automation webhook target.
type WebhookConfig interface {
	GetAutomationWebhookURL() string
	IsWebhookEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	APIKey               string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	ScoringRulesPath     string
	PricingMatrixPath    string
	CompanyName          string
	CompanyAddress       string
	CompanyPhone         string
	CompanyEmail         string
	CompanyVATNumber     string
	CompanyRegNumber     string
	BankName             string
	BankSortCode         string
	BankAccountNumber    string
	EmailEnabled         bool
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinioBucketDocuments string
	RedisURL             string
	DeliveryQueue        string
	DeliveryConcurrency  int
	HubSpotAPIKey        string
	AutomationWebhookURL string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// APIKeyConfig implementation
func (c *Config) GetAPIKey() string     { return c.APIKey }
func (c *Config) IsAPIKeyRequired() bool { return c.APIKey != "" }

// RulesConfig implementation
func (c *Config) GetScoringRulesPath() string  { return c.ScoringRulesPath }
func (c *Config) GetPricingMatrixPath() string { return c.PricingMatrixPath }

// CompanyConfig implementation
func (c *Config) GetCompanyName() string        { return c.CompanyName }
func (c *Config) GetCompanyAddress() string     { return c.CompanyAddress }
func (c *Config) GetCompanyPhone() string       { return c.CompanyPhone }
func (c *Config) GetCompanyEmail() string       { return c.CompanyEmail }
func (c *Config) GetCompanyVATNumber() string   { return c.CompanyVATNumber }
func (c *Config) GetCompanyRegNumber() string   { return c.CompanyRegNumber }
func (c *Config) GetBankName() string           { return c.BankName }
func (c *Config) GetBankSortCode() string       { return c.BankSortCode }
func (c *Config) GetBankAccountNumber() string  { return c.BankAccountNumber }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool      { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string        { return c.SMTPHost }
func (c *Config) GetSMTPPort() int           { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string    { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string    { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string   { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// StorageConfig implementation
func (c *Config) GetMinIOEndpoint() string       { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string      { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string      { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool           { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketDocuments() string { return c.MinioBucketDocuments }
func (c *Config) IsMinIOEnabled() bool           { return c.MinIOEndpoint != "" }

// DeliveryConfig implementation
func (c *Config) GetRedisURL() string         { return c.RedisURL }
func (c *Config) GetDeliveryQueue() string    { return c.DeliveryQueue }
func (c *Config) GetDeliveryConcurrency() int { return c.DeliveryConcurrency }
func (c *Config) IsDeliveryEnabled() bool     { return c.RedisURL != "" }

// CRMConfig implementation
func (c *Config) GetHubSpotAPIKey() string { return c.HubSpotAPIKey }
func (c *Config) IsCRMEnabled() bool       { return c.HubSpotAPIKey != "" }

// WebhookConfig implementation
func (c *Config) GetAutomationWebhookURL() string { return c.AutomationWebhookURL }
func (c *Config) IsWebhookEnabled() bool          { return c.AutomationWebhookURL != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		APIKey:               getEnv("API_KEY", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		ScoringRulesPath:     getEnv("SCORING_RULES_PATH", "config/scoring-rules.yaml"),
		PricingMatrixPath:    getEnv("PRICING_MATRIX_PATH", "config/pricing-matrix.json"),
		CompanyName:          getEnv("COMPANY_NAME", "Hampstead Renovations Ltd"),
		CompanyAddress:       getEnv("COMPANY_ADDRESS", "45 Heath Street, Hampstead, London NW3 6TB"),
		CompanyPhone:         getEnv("COMPANY_PHONE", "+44 20 7435 8900"),
		CompanyEmail:         getEnv("COMPANY_EMAIL", "info@hampstead-renovations.co.uk"),
		CompanyVATNumber:     getEnv("COMPANY_VAT_NUMBER", "GB 345 6789 12"),
		CompanyRegNumber:     getEnv("COMPANY_REG_NUMBER", "09876543"),
		BankName:             getEnv("BANK_NAME", "Barclays Bank"),
		BankSortCode:         getEnv("BANK_SORT_CODE", "20-00-00"),
		BankAccountNumber:    getEnv("BANK_ACCOUNT_NUMBER", "12345678"),
		EmailEnabled:         emailEnabled && smtpHost != "",
		SMTPHost:             smtpHost,
		SMTPPort:             mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Hampstead Renovations"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
		MinIOEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketDocuments: getEnv("MINIO_BUCKET_DOCUMENTS", "renovation-documents"),
		RedisURL:             getEnv("REDIS_URL", ""),
		DeliveryQueue:        getEnv("DELIVERY_QUEUE", "default"),
		DeliveryConcurrency:  mustInt(getEnv("DELIVERY_CONCURRENCY", "10")),
		HubSpotAPIKey:        getEnv("HUBSPOT_API_KEY", ""),
		AutomationWebhookURL: getEnv("AUTOMATION_WEBHOOK_URL", ""),
	}

	if strings.EqualFold(cfg.Env, "production") && cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required in production")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
