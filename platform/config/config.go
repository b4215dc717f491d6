// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetBrevoAPIKey() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketAttemptPhotos() string
	GetMinioBucketJobDocuments() string
	GetMinioBucketAffidavits() string
	GetMinioBucketCompanyLogos() string
	IsMinIOEnabled() bool
}

// GotenbergConfig provides settings for the Gotenberg HTML-to-PDF service.
type GotenbergConfig interface {
	GetGotenbergURL() string
	GetGotenbergUsername() string
	GetGotenbergPassword() string
	IsGotenbergEnabled() bool
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetReconcileSweepInterval() time.Duration
}

// DraftConfig provides settings for the affidavit draft store.
type DraftConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetDraftTTL() time.Duration
}

// AffidavitConfig provides settings for affidavit assembly and rendering.
type AffidavitConfig interface {
	GetAppBaseURL() string
	GetPlaceholderAgentName() string
}

// NotificationConfig provides settings for event-driven notifications.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// GeocodeConfig provides settings for address lookups.
type GeocodeConfig interface {
	GetNominatimURL() string
	GetGeocodeCountryCodes() string
	GetGeocodeUserAgent() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	JWTAccessSecret          string
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	AppBaseURL               string
	EmailEnabled             bool
	BrevoAPIKey              string
	EmailFromName            string
	EmailFromAddress         string
	SMTPHost                 string
	SMTPPort                 int
	SMTPUsername             string
	SMTPPassword             string
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinioBucketAttemptPhotos string
	MinioBucketJobDocuments  string
	MinioBucketAffidavits    string
	MinioBucketCompanyLogos  string
	GotenbergURL             string
	GotenbergUsername        string
	GotenbergPassword        string
	RedisURL                 string
	RedisTLSInsecure         bool
	AsynqQueueName           string
	AsynqConcurrency         int
	ReconcileSweepInterval   time.Duration
	DraftTTL                 time.Duration
	PlaceholderAgentName     string
	NominatimURL             string
	GeocodeCountryCodes      string
	GeocodeUserAgent         string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetBrevoAPIKey() string      { return c.BrevoAPIKey }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string            { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string           { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string           { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool                { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64          { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketAttemptPhotos() string { return c.MinioBucketAttemptPhotos }
func (c *Config) GetMinioBucketJobDocuments() string  { return c.MinioBucketJobDocuments }
func (c *Config) GetMinioBucketAffidavits() string    { return c.MinioBucketAffidavits }
func (c *Config) GetMinioBucketCompanyLogos() string  { return c.MinioBucketCompanyLogos }
func (c *Config) IsMinIOEnabled() bool                { return c.MinIOEndpoint != "" }

// GotenbergConfig implementation
func (c *Config) GetGotenbergURL() string      { return c.GotenbergURL }
func (c *Config) GetGotenbergUsername() string { return c.GotenbergUsername }
func (c *Config) GetGotenbergPassword() string { return c.GotenbergPassword }
func (c *Config) IsGotenbergEnabled() bool     { return c.GotenbergURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string                      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool                { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string                { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int                 { return c.AsynqConcurrency }
func (c *Config) GetReconcileSweepInterval() time.Duration { return c.ReconcileSweepInterval }

// DraftConfig implementation
func (c *Config) GetDraftTTL() time.Duration { return c.DraftTTL }

// AffidavitConfig implementation
func (c *Config) GetAppBaseURL() string           { return c.AppBaseURL }
func (c *Config) GetPlaceholderAgentName() string { return c.PlaceholderAgentName }

// GeocodeConfig implementation
func (c *Config) GetNominatimURL() string        { return c.NominatimURL }
func (c *Config) GetGeocodeCountryCodes() string { return c.GeocodeCountryCodes }
func (c *Config) GetGeocodeUserAgent() string    { return c.GeocodeUserAgent }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	brevoAPIKey := getEnv("BREVO_API_KEY", "")
	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		JWTAccessSecret:          getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:               getEnv("APP_BASE_URL", "http://localhost:5173"),
		EmailEnabled:             emailEnabled && (brevoAPIKey != "" || smtpHost != ""),
		BrevoAPIKey:              brevoAPIKey,
		EmailFromName:            getEnv("EMAIL_FROM_NAME", "ServePortal"),
		EmailFromAddress:         getEnv("EMAIL_FROM_ADDRESS", ""),
		SMTPHost:                 smtpHost,
		SMTPPort:                 mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		MinIOEndpoint:            getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:         mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "52428800")),
		MinioBucketAttemptPhotos: getEnv("MINIO_BUCKET_ATTEMPT_PHOTOS", "attempt-photos"),
		MinioBucketJobDocuments:  getEnv("MINIO_BUCKET_JOB_DOCUMENTS", "job-documents"),
		MinioBucketAffidavits:    getEnv("MINIO_BUCKET_AFFIDAVITS", "affidavits"),
		MinioBucketCompanyLogos:  getEnv("MINIO_BUCKET_COMPANY_LOGOS", "company-logos"),
		GotenbergURL:             getEnv("GOTENBERG_URL", ""),
		GotenbergUsername:        getEnv("GOTENBERG_USERNAME", ""),
		GotenbergPassword:        getEnv("GOTENBERG_PASSWORD", ""),
		RedisURL:                 getEnv("REDIS_URL", ""),
		RedisTLSInsecure:         strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:           getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:         mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		ReconcileSweepInterval:   mustDuration(getEnv("RECONCILE_SWEEP_INTERVAL", "6h")),
		DraftTTL:                 mustDuration(getEnv("AFFIDAVIT_DRAFT_TTL", "72h")),
		PlaceholderAgentName:     getEnv("PLACEHOLDER_AGENT_NAME", "ServeMax Agent"),
		NominatimURL:             getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		GeocodeCountryCodes:      getEnv("GEOCODE_COUNTRY_CODES", "us"),
		GeocodeUserAgent:         getEnv("GEOCODE_USER_AGENT", "ServePortal/1.0"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
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

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
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
