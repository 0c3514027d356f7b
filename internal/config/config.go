package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AWeberConfig carries the OAuth2 credentials and list coordinates for the
// mailing-list provider. The refresh token is long-lived; access tokens are
// exchanged per request.
type AWeberConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccountID    string
	ListID       string
}

// SheetsConfig carries the service-account identity used to append rows to
// the lead spreadsheet.
type SheetsConfig struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	PrivateKey          string
}

type Config struct {
	Port        string
	CampaignTag string
	AWeber      AWeberConfig
	Sheets      SheetsConfig
}

// Load builds the process-wide configuration from the environment. It is
// called once in main; everything downstream receives the struct by
// reference instead of reading env vars ad hoc.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CampaignTag: getEnv("CAMPAIGN_TAG", "live-3-agosto"),
		AWeber: AWeberConfig{
			ClientID:     os.Getenv("AWEBER_CLIENT_ID"),
			ClientSecret: os.Getenv("AWEBER_CLIENT_SECRET"),
			RefreshToken: os.Getenv("AWEBER_REFRESH_TOKEN"),
			AccountID:    os.Getenv("AWEBER_ACCOUNT_ID"),
			ListID:       os.Getenv("AWEBER_LIST_ID"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:       os.Getenv("GOOGLE_SHEET_ID"),
			ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			// The key arrives from the env with literal \n escapes.
			PrivateKey: strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		},
	}

	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_ID is required")
	}
	if cfg.Sheets.ServiceAccountEmail == "" || cfg.Sheets.PrivateKey == "" {
		return nil, fmt.Errorf("google service account credentials are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
