package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// DefaultCurrency is used when parsing finds no currency in an email.
	DefaultCurrency string
	// AccountHolderMarkers are identity fragments of the account holder;
	// matching senders/receivers are normalized to "me".
	AccountHolderMarkers []string

	// Default IMAP settings; requests may override all of them.
	IMAPHost           string
	IMAPPort           int
	IMAPUsername       string
	IMAPPassword       string
	IMAPUseSSL         bool
	IMAPFolder         string
	BankEmailAddresses []string
	BankEmailSubjects  []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_CURRENCY", "OMR")
	viper.SetDefault("ACCOUNT_HOLDER_MARKERS", "")
	viper.SetDefault("IMAP_HOST", "")
	viper.SetDefault("IMAP_PORT", 993)
	viper.SetDefault("IMAP_USERNAME", "")
	viper.SetDefault("IMAP_PASSWORD", "")
	viper.SetDefault("IMAP_USE_SSL", true)
	viper.SetDefault("IMAP_FOLDER", "INBOX")
	viper.SetDefault("BANK_EMAIL_ADDRESSES", "")
	viper.SetDefault("BANK_EMAIL_SUBJECTS", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		DefaultCurrency:      viper.GetString("DEFAULT_CURRENCY"),
		AccountHolderMarkers: splitList(viper.GetString("ACCOUNT_HOLDER_MARKERS")),
		IMAPHost:             viper.GetString("IMAP_HOST"),
		IMAPPort:             viper.GetInt("IMAP_PORT"),
		IMAPUsername:         viper.GetString("IMAP_USERNAME"),
		IMAPPassword:         viper.GetString("IMAP_PASSWORD"),
		IMAPUseSSL:           viper.GetBool("IMAP_USE_SSL"),
		IMAPFolder:           viper.GetString("IMAP_FOLDER"),
		BankEmailAddresses:   splitList(viper.GetString("BANK_EMAIL_ADDRESSES")),
		BankEmailSubjects:    splitList(viper.GetString("BANK_EMAIL_SUBJECTS")),
	}
	return cfg, nil
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
