package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port              string
	StripeSecretKey   string
	StripeWebhookKey  string
	GoogleCredentials string // service-account key JSON blob
	SpreadsheetID     string
	SheetRange        string
	FrontendURL       string
	AllowedOrigins    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8090"),
		StripeSecretKey:   os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		GoogleCredentials: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		SpreadsheetID:     os.Getenv("SHEET_ID"),
		SheetRange:        getEnv("SHEET_RANGE", "Sheet1!A:Z"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:    os.Getenv("ALLOWED_ORIGINS"),
	}

	if cfg.StripeSecretKey == "" || cfg.StripeWebhookKey == "" {
		return nil, fmt.Errorf("missing required environment variables STRIPE_API_KEY / STRIPE_WEBHOOK_SECRET")
	}

	// The sheet credential pair is deliberately optional: without it the
	// sink degrades to a logged no-op and the webhook stays reachable.
	return cfg, nil
}

// SheetConfigured reports whether both halves of the sheet credential pair
// are present.
func (c *Config) SheetConfigured() bool {
	return c.GoogleCredentials != "" && c.SpreadsheetID != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
