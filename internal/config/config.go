// Package config loads watch-mode settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for the long-running watch mode. Values come from
// the environment so the binary can run unmodified in-cluster; flags override
// individual fields in cmd wiring.
type Config struct {
	// Reporting platform webhook
	WebhookURL                string `env:"RW_WEBHOOK_URL"`
	WebhookAuthToken          string `env:"RW_WEBHOOK_AUTH_TOKEN"`
	WebhookTimeoutSeconds     int    `env:"RW_WEBHOOK_TIMEOUT_SECONDS" envDefault:"10"`
	WebhookInsecureSkipVerify bool   `env:"RW_WEBHOOK_INSECURE_SKIP_VERIFY" envDefault:"false"`

	// SeverityThreshold is the least-urgent severity still forwarded
	// (1 = only page-worthy, 4 = everything).
	SeverityThreshold int `env:"RW_SEVERITY_THRESHOLD" envDefault:"3"`

	// Event intake
	EventRateLimit int           `env:"RW_EVENT_RATE_LIMIT" envDefault:"100"`
	EventRateBurst int           `env:"RW_EVENT_RATE_BURST" envDefault:"200"`
	DedupeWindow   time.Duration `env:"RW_DEDUPE_WINDOW" envDefault:"5m"`

	// Per-namespace dispatch rate limit
	DispatchRateLimitPerMinute int `env:"RW_DISPATCH_RATE_LIMIT_PER_MINUTE" envDefault:"100"`

	// Observability
	MetricsAddr string `env:"RW_METRICS_BIND_ADDRESS" envDefault:":8080"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges. The webhook URL itself is validated by the
// sender, which knows the scheme requirements.
func (c *Config) Validate() error {
	if c.SeverityThreshold < 1 || c.SeverityThreshold > 4 {
		return fmt.Errorf("severity threshold must be between 1 and 4, got %d", c.SeverityThreshold)
	}
	if c.EventRateLimit <= 0 {
		return fmt.Errorf("event rate limit must be positive, got %d", c.EventRateLimit)
	}
	if c.EventRateBurst <= 0 {
		return fmt.Errorf("event rate burst must be positive, got %d", c.EventRateBurst)
	}
	if c.DedupeWindow <= 0 {
		return fmt.Errorf("dedupe window must be positive, got %s", c.DedupeWindow)
	}
	if c.DispatchRateLimitPerMinute <= 0 {
		return fmt.Errorf("dispatch rate limit must be positive, got %d", c.DispatchRateLimitPerMinute)
	}
	return nil
}
