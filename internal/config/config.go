package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the service reads from the environment. The sheet
// layout itself lives in the sheets package; only source credentials and
// identifiers belong here.
type Config struct {
	HTTPPort    string
	DatabaseURL string

	SessionSecret string
	AdminEmail    string
	FrontendURL   string

	ZohoClientID       string
	ZohoClientSecret   string
	ZohoRedirectURL    string
	ZohoAccountsServer string

	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	ServiceAccountKey   string
	ExcelPath           string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminEmail:    strings.ToLower(getEnv("ADMIN_EMAIL", "admin@enoshinfra.com")),
		FrontendURL:   getEnv("FRONTEND_URL", ""),

		ZohoClientID:       os.Getenv("ZOHO_CLIENT_ID"),
		ZohoClientSecret:   os.Getenv("ZOHO_CLIENT_SECRET"),
		ZohoRedirectURL:    getEnv("ZOHO_REDIRECT_URI", "http://localhost:8080/auth/callback"),
		ZohoAccountsServer: getEnv("ZOHO_ACCOUNTS_SERVER", "https://accounts.zoho.com"),

		SpreadsheetID:       os.Getenv("GOOGLE_SHEET_ID"),
		SheetName:           getEnv("GOOGLE_SHEET_NAME", "Sheet1"),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		// Keys pasted into env files usually carry literal \n sequences.
		ServiceAccountKey: strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		ExcelPath:         getEnv("EXCEL_PATH", "./listings.xlsx"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is empty")
	}
	return cfg, nil
}

// HasSheetsCredentials reports whether the Google Sheets source can be used;
// otherwise the service falls back to the local workbook.
func (c *Config) HasSheetsCredentials() bool {
	return c.ServiceAccountEmail != "" && c.ServiceAccountKey != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
