// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// insecureDefaultSecret is the development-only session signing key.
const insecureDefaultSecret = "dev-session-secret-change-me"

// SessionConfig holds session issuance and carrier settings.
type SessionConfig struct {
	Secret      string        `yaml:"secret"`       // HMAC key for session token signing
	AdminTTL    time.Duration `yaml:"admin_ttl"`    // admin session lifetime (default 24h)
	CustomerTTL time.Duration `yaml:"customer_ttl"` // customer session lifetime (default 168h)
}

// TTLFor returns the session lifetime for the given principal kind name.
func (s *SessionConfig) TTLFor(kind string) time.Duration {
	if kind == "admin" {
		return s.AdminTTL
	}
	return s.CustomerTTL
}

// AIConfig holds settings for the external text-generation service.
type AIConfig struct {
	Endpoint string `yaml:"endpoint"` // completion endpoint URL; empty disables AI features
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// Enabled reports whether the AI collaborator is configured.
func (a *AIConfig) Enabled() bool { return a.Endpoint != "" }

// Config holds the configuration for the HTTP server and SQLite store.
type Config struct {
	DBPath     string `yaml:"db_path"`     // path to the SQLite file
	ListenAddr string `yaml:"listen_addr"` // HTTP listen address (default ":8080")
	LogLevel   string `yaml:"log_level"`   // debug, info, warn, error (default "info")
	Env        string `yaml:"env"`         // "development" (default) or "production"

	Session SessionConfig `yaml:"session"`
	AI      AIConfig      `yaml:"ai"`

	// WebhookURL is the workflow-automation forwarding target; empty disables it.
	WebhookURL string `yaml:"webhook_url"`

	// Rate limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// CORS
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// AuditRetentionDays controls how long audit entries are kept (default 90).
	AuditRetentionDays int `yaml:"audit_retention_days"`

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string `yaml:"-"`
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool { return c.IsProduction() }

// Load builds the configuration: optional YAML file first, then environment
// variables on top (env vars win), then defaults and production hardening.
func Load(filePath string) (*Config, error) {
	cfg := &Config{}

	if filePath != "" {
		if err := cfg.applyFile(filePath); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg.finalise()
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // missing config file is not an error
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.DBPath, "DB_PATH")
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Env, "ENV")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.AI.Endpoint, "AI_ENDPOINT")
	setString(&c.AI.APIKey, "AI_API_KEY")
	setString(&c.AI.Model, "AI_MODEL")
	setString(&c.WebhookURL, "WEBHOOK_URL")

	if v := os.Getenv("SESSION_ADMIN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.AdminTTL = d
		}
	}
	if v := os.Getenv("SESSION_CUSTOMER_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.CustomerTTL = d
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimitBurst = n
		}
	}
	if v := os.Getenv("AUDIT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AuditRetentionDays = n
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.CORSAllowedOrigins = origins
	}
}

func (c *Config) finalise() (*Config, error) {
	if c.DBPath == "" {
		c.DBPath = "backoffice.sqlite"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Session.AdminTTL <= 0 {
		c.Session.AdminTTL = 24 * time.Hour
	}
	if c.Session.CustomerTTL <= 0 {
		c.Session.CustomerTTL = 7 * 24 * time.Hour
	}
	if c.Session.Secret == "" {
		c.Session.Secret = insecureDefaultSecret
		c.Warnings = append(c.Warnings, "SESSION_SECRET not set — using insecure default. Set SESSION_SECRET in production!")
	}
	if c.RateLimitRPS == 0 {
		c.RateLimitRPS = 100
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 200
	}
	if c.AuditRetentionDays == 0 {
		c.AuditRetentionDays = 90
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}
	if !c.AI.Enabled() {
		c.Warnings = append(c.Warnings, "AI_ENDPOINT not set — CV scoring and forecast narrative are disabled")
	}

	// Production mode: insecure defaults are fatal errors.
	if c.IsProduction() {
		if c.Session.Secret == insecureDefaultSecret {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production (ENV=production)")
		}
		if len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return c, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
