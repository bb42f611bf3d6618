package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Pricing PricingConfig
	AI      AIConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	InstallationID string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// Both fields empty means the audit mirror is disabled.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheet mirror is configured at all.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" || c.SpreadsheetID != ""
}

// PricingConfig holds scheduler-related settings for the price scraper.
type PricingConfig struct {
	CronSchedule string
	Timezone     string
}

// AIConfig holds settings for LLM providers. An empty key disables the
// advisor.
type AIConfig struct {
	GroqKey   string
	GroqModel string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			InstallationID: getenvWithDefault("INSTALLATION_ID", "default"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LOG_ID"),
		},
		Pricing: PricingConfig{
			CronSchedule: getenvWithDefault("PRICE_CRON_SCHEDULE", "0 */6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Jakarta"),
		},
		AI: AIConfig{
			GroqKey:   os.Getenv("GROQ_API_KEY"),
			GroqModel: os.Getenv("GROQ_MODEL"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "petokpredict"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	// The sheet mirror is optional but must be configured as a pair.
	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_LOG_ID is set")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_LOG_ID must be provided when GOOGLE_SHEETS_CREDENTIALS_PATH is set")
		}
	}

	if c.Pricing.CronSchedule == "" {
		return errors.New("PRICE_CRON_SCHEDULE must be provided")
	}

	if c.Pricing.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
