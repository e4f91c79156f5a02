package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo.

	"github.com/joho/godotenv"
)

// DefaultExcludedStatuses lists the preestado codes that never count as active cargo.
var DefaultExcludedStatuses = []int{100000012, 100000023, 100000010, 100000022, 100000021, 100000019}

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Dashboard DashboardConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	Reporting ReportingConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	MaxUploadMB int64
}

// APIConfig points at the remote Castro Fallas REST API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DashboardConfig drives the cargo statistics.
type DashboardConfig struct {
	ExcludedStatuses []int
	WeekStart        time.Weekday
	Timezone         string
	LookupDir        string
}

// AuthConfig controls bearer token handling.
type AuthConfig struct {
	JWTSecret string
}

// LoggingConfig enables an optional rotating log file next to stdout.
type LoggingConfig struct {
	File string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
}

// WhatsAppConfig contains credentials for the daily summary notification.
// The notifier is disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	RecipientID   string
}

// SheetsConfig contains configuration required to export KPIs to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// MongoDBConfig holds settings for the snapshot archive.
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

	timeout, err := time.ParseDuration(getenvWithDefault("API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("parse API_TIMEOUT: %w", err)
	}

	excluded := DefaultExcludedStatuses
	if raw := os.Getenv("EXCLUDED_STATUSES"); raw != "" {
		excluded, err = parseIntList(raw)
		if err != nil {
			return nil, fmt.Errorf("parse EXCLUDED_STATUSES: %w", err)
		}
	}

	weekStart, err := parseWeekday(getenvWithDefault("WEEK_START", "sunday"))
	if err != nil {
		return nil, err
	}

	maxUpload, err := strconv.ParseInt(getenvWithDefault("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			MaxUploadMB: maxUpload,
		},
		API: APIConfig{
			BaseURL: getenvWithDefault("CF_API_BASE_URL", "https://api.logisticacastrofallas.com"),
			Timeout: timeout,
		},
		Dashboard: DashboardConfig{
			ExcludedStatuses: excluded,
			WeekStart:        weekStart,
			Timezone:         getenvWithDefault("TIMEZONE", "America/Costa_Rica"),
			LookupDir:        os.Getenv("LOOKUP_DIR"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Logging: LoggingConfig{
			File: os.Getenv("LOG_FILE"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			RecipientID:   os.Getenv("WHATSAPP_RECIPIENT_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Cargas!A:F"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "castrofallas"),
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

	if c.Server.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}

	if c.API.BaseURL == "" {
		return errors.New("CF_API_BASE_URL must not be empty")
	}

	if c.API.Timeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}

	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.RecipientID == "":
			return errors.New("WHATSAPP_RECIPIENT_ID must be provided")
		}
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}

	return nil
}

// Location returns the dashboard time zone. Validate guarantees it loads.
func (d DashboardConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Enabled reports whether WhatsApp notifications are configured.
func (w WhatsAppConfig) Enabled() bool { return w.AccessToken != "" }

// Enabled reports whether the Google Sheets export is configured.
func (s SheetsConfig) Enabled() bool { return s.SpreadsheetID != "" }

// Enabled reports whether the snapshot archive is configured.
func (m MongoDBConfig) Enabled() bool { return m.URI != "" }

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIntList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseWeekday(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sunday", "sun", "0":
		return time.Sunday, nil
	case "monday", "mon", "1":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("WEEK_START must be sunday or monday, got %q", raw)
	}
}
