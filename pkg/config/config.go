package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	AuthModeBearer = "bearer"
	AuthModeQuery  = "query"
)

// Config holds all application configuration values
type Config struct {
	PipedriveAPIKey        string
	PipedriveCompanyDomain string
	PipedriveAuthMode      string
	PipedriveBaseURL       string

	LeadTitlePrefix string
	LeadCurrency    string
	LeadLabel       string
	NoteSource      string
	NoteTimezone    string

	WebhookPath string
	Port        string
	LogLevel    string
	GinMode     string
}

// LoadConfig reads configuration from environment variables. A .env file in
// the working directory is loaded first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		PipedriveAPIKey:        os.Getenv("PIPEDRIVE_API_KEY"),
		PipedriveCompanyDomain: os.Getenv("PIPEDRIVE_COMPANY_DOMAIN"),
		PipedriveAuthMode:      strings.ToLower(getEnv("PIPEDRIVE_AUTH_MODE", AuthModeBearer)),
		PipedriveBaseURL:       os.Getenv("PIPEDRIVE_BASE_URL"),

		LeadTitlePrefix: getEnv("LEAD_TITLE_PREFIX", "New Patient Inquiry"),
		LeadCurrency:    getEnv("LEAD_CURRENCY", "AUD"),
		LeadLabel:       getEnv("LEAD_LABEL", "Contact Form"),
		NoteSource:      getEnv("NOTE_SOURCE", "Tarneith Health Hub Website Contact Form"),
		NoteTimezone:    getEnv("NOTE_TIMEZONE", "Australia/Sydney"),

		WebhookPath: getEnv("WEBHOOK_PATH", "/api/webhook"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		GinMode:     getEnv("GIN_MODE", "release"),
	}

	if cfg.PipedriveBaseURL == "" && cfg.PipedriveCompanyDomain != "" {
		cfg.PipedriveBaseURL = fmt.Sprintf("https://%s.pipedrive.com/api/v1", cfg.PipedriveCompanyDomain)
	}

	return cfg
}

// Validate reports every setting the Pipedrive client cannot work without.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.PipedriveAPIKey == "" {
		result = multierror.Append(result, errors.New("PIPEDRIVE_API_KEY is not set"))
	}
	if c.PipedriveCompanyDomain == "" && c.PipedriveBaseURL == "" {
		result = multierror.Append(result, errors.New("PIPEDRIVE_COMPANY_DOMAIN is not set"))
	}
	if c.PipedriveAuthMode != AuthModeBearer && c.PipedriveAuthMode != AuthModeQuery {
		result = multierror.Append(result, fmt.Errorf("PIPEDRIVE_AUTH_MODE %q must be %q or %q",
			c.PipedriveAuthMode, AuthModeBearer, AuthModeQuery))
	}

	return result.ErrorOrNil()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
