package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "resend", cfg.EmailProvider)
	assert.Equal(t, "memory", cfg.RateLimitBackend)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(10*1024), cfg.MaxBodyBytes)
	assert.Equal(t, "onboarding@resend.dev", cfg.LeadsFromEmail)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("LEADS_TO_EMAIL", "sales@example.com")

	cfg := Load()

	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "ses", cfg.EmailProvider)
	assert.Equal(t, "sales@example.com", cfg.LeadsToEmail)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
}

func TestFromAddress(t *testing.T) {
	cfg := &Config{LeadsFromEmail: "leads@example.com", LeadsFromName: "Leads"}
	assert.Equal(t, "Leads <leads@example.com>", cfg.FromAddress())

	cfg.LeadsFromName = ""
	assert.Equal(t, "leads@example.com", cfg.FromAddress())
}
