package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration, assembled once at process start
// and passed explicitly into the wiring. Nothing else reads the environment.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Lead store
	DatabaseURL string

	// Notification email
	EmailProvider  string // resend | ses | sendgrid | stub
	ResendAPIKey   string
	SendGridAPIKey string
	AWSRegion      string
	LeadsToEmail   string
	LeadsFromEmail string
	LeadsFromName  string

	// Throttling
	RateLimitBackend string // memory | redis
	RateLimitMax     int
	RateLimitWindow  time.Duration
	RedisAddr        string
	RedisPassword    string

	// Request handling
	CORSAllowedOrigin string
	MaxBodyBytes      int64
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "resend"))),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		LeadsToEmail:   getEnv("LEADS_TO_EMAIL", ""),
		LeadsFromEmail: getEnv("LEADS_FROM_EMAIL", "onboarding@resend.dev"),
		LeadsFromName:  getEnv("LEADS_FROM_NAME", "Leads"),

		RateLimitBackend: strings.ToLower(strings.TrimSpace(getEnv("RATE_LIMIT_BACKEND", "memory"))),
		RateLimitMax:     getEnvAsInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow:  getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RedisAddr:        getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),

		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", ""),
		MaxBodyBytes:      int64(getEnvAsInt("MAX_BODY_BYTES", 10*1024)),
	}
}

// FromAddress renders the sender as "Name <email>" when a name is configured.
func (c *Config) FromAddress() string {
	if c.LeadsFromName == "" {
		return c.LeadsFromEmail
	}
	return c.LeadsFromName + " <" + c.LeadsFromEmail + ">"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
