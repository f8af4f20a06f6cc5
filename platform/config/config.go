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

// HubSpotConfig provides settings for the HubSpot CRM client.
type HubSpotConfig interface {
	GetHubSpotBaseURL() string
	GetHubSpotToken() string
	GetHubSpotRequestsPerSecond() float64
}

// DistanceConfig provides settings for the OpenRouteService distance client.
type DistanceConfig interface {
	GetORSBaseURL() string
	GetORSAPIKey() string
	GetORSCountry() string
}

// AgentConfig provides settings for the agent-chat collaborators
// (company enrichment and email generation).
type AgentConfig interface {
	GetEnrichmentURL() string
	GetEnrichmentSessionID() string
	GetEnrichmentAgentID() string
	GetEmailGenerationURL() string
	GetEmailSessionID() string
	GetEmailAgentID() string
}

// VINConfig provides settings for the VIN decoding passthrough.
type VINConfig interface {
	GetVINAPIURL() string
	GetVINTimeout() time.Duration
}

// LocationConfig provides settings for the ZIP code lookup passthrough.
type LocationConfig interface {
	GetZippoBaseURL() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// SchedulerConfig provides settings for the asynq background job queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// SMTPConfig provides settings for outbound quote email delivery.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetSMTPFromName() string
	GetSMTPFromAddress() string
	IsSMTPEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	HubSpotBaseURL      string
	HubSpotToken        string
	HubSpotRPS          float64
	ORSBaseURL          string
	ORSAPIKey           string
	ORSCountry          string
	EnrichmentURL       string
	EnrichmentSessionID string
	EnrichmentAgentID   string
	EmailGenerationURL  string
	EmailSessionID      string
	EmailAgentID        string
	VINAPIURL           string
	VINTimeout          time.Duration
	ZippoBaseURL        string
	DatabaseURL         string
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	SMTPFromName        string
	SMTPFromAddress     string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HubSpotConfig implementation
func (c *Config) GetHubSpotBaseURL() string            { return c.HubSpotBaseURL }
func (c *Config) GetHubSpotToken() string              { return c.HubSpotToken }
func (c *Config) GetHubSpotRequestsPerSecond() float64 { return c.HubSpotRPS }

// DistanceConfig implementation
func (c *Config) GetORSBaseURL() string { return c.ORSBaseURL }
func (c *Config) GetORSAPIKey() string  { return c.ORSAPIKey }
func (c *Config) GetORSCountry() string { return c.ORSCountry }

// AgentConfig implementation
func (c *Config) GetEnrichmentURL() string       { return c.EnrichmentURL }
func (c *Config) GetEnrichmentSessionID() string { return c.EnrichmentSessionID }
func (c *Config) GetEnrichmentAgentID() string   { return c.EnrichmentAgentID }
func (c *Config) GetEmailGenerationURL() string  { return c.EmailGenerationURL }
func (c *Config) GetEmailSessionID() string      { return c.EmailSessionID }
func (c *Config) GetEmailAgentID() string        { return c.EmailAgentID }

// VINConfig implementation
func (c *Config) GetVINAPIURL() string         { return c.VINAPIURL }
func (c *Config) GetVINTimeout() time.Duration { return c.VINTimeout }

// LocationConfig implementation
func (c *Config) GetZippoBaseURL() string { return c.ZippoBaseURL }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string        { return c.SMTPHost }
func (c *Config) GetSMTPPort() int           { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string    { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string    { return c.SMTPPassword }
func (c *Config) GetSMTPFromName() string    { return c.SMTPFromName }
func (c *Config) GetSMTPFromAddress() string { return c.SMTPFromAddress }
func (c *Config) IsSMTPEnabled() bool        { return c.SMTPHost != "" && c.SMTPFromAddress != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment (and .env if present).
// Required values are validated here so the process fails fast at startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		HubSpotBaseURL:      getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		HubSpotToken:        getEnv("HUBSPOT_TOKEN", ""),
		HubSpotRPS:          mustFloat(getEnv("HUBSPOT_REQUESTS_PER_SECOND", "8")),
		ORSBaseURL:          getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSAPIKey:           getEnv("ORS_API_KEY", ""),
		ORSCountry:          getEnv("ORS_COUNTRY", "US"),
		EnrichmentURL:       getEnv("COMPANY_DETAIL_EXTRACTOR_URL", ""),
		EnrichmentSessionID: getEnv("ENRICHMENT_SESSION_ID", "1761633122763"),
		EnrichmentAgentID:   getEnv("ENRICHMENT_AGENT_ID", "68ff216f264610a11c1164a1"),
		EmailGenerationURL:  getEnv("EMAIL_GENERATION_URL", ""),
		EmailSessionID:      getEnv("EMAIL_SESSION_ID", "1761653686716"),
		EmailAgentID:        getEnv("EMAIL_AGENT_ID", "6900b36599417c626e85542d"),
		VINAPIURL:           getEnv("VIN_API_URL", "https://vpic.nhtsa.dot.gov/api/vehicles"),
		VINTimeout:          mustDuration(getEnv("VIN_API_TIMEOUT", "30s")),
		ZippoBaseURL:        getEnv("ZIPPO_BASE_URL", "https://api.zippopotam.us/us"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTLSInsecure:    strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:      getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SMTPFromName:        getEnv("SMTP_FROM_NAME", "First Source Auto"),
		SMTPFromAddress:     getEnv("SMTP_FROM_ADDRESS", ""),
	}

	if cfg.HubSpotToken == "" {
		return nil, fmt.Errorf("HUBSPOT_TOKEN is required")
	}
	if cfg.ORSAPIKey == "" {
		return nil, fmt.Errorf("ORS_API_KEY is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
