// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	// PublicBaseURL is the externally visible origin used when building
	// shareable links, e.g. https://roteiro.app
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
}

// SupabaseConfig holds details for the hosted PostgREST backend. When URL or
// ServiceKey is empty the remote store is simply not configured — the service
// runs in offline mode against the local file store. That is a recognized
// mode, not an error.
type SupabaseConfig struct {
	URL        string `mapstructure:"URL"`
	ServiceKey string `mapstructure:"SERVICE_KEY"`
	AnonKey    string `mapstructure:"ANON_KEY"`
	// TimeoutSeconds is the HTTP client timeout for PostgREST requests
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS"`
}

// IsConfigured reports whether remote persistence can be attempted at all.
// This is a capability check, not a network probe.
func (c *SupabaseConfig) IsConfigured() bool {
	return c.URL != "" && c.ServiceKey != ""
}

// LocalStoreConfig holds configuration for the on-disk fallback store.
type LocalStoreConfig struct {
	// Dir is the directory where the JSON record files live.
	Dir string `mapstructure:"DIR"`
}

// ExtractorConfig holds details for the external AI vision extraction API.
type ExtractorConfig struct {
	APIURL         string `mapstructure:"API_URL"`
	APIKey         string `mapstructure:"API_KEY"`
	Model          string `mapstructure:"MODEL"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS"`
}

// IsConfigured reports whether AI extraction is available. When false the
// vendor UI falls back to manual entry.
func (c *ExtractorConfig) IsConfigured() bool {
	return c.APIKey != ""
}

// EmailConfig holds configuration for sending share emails.
type EmailConfig struct {
	FromAddress  string `mapstructure:"FROM_ADDRESS"`
	FromName     string `mapstructure:"FROM_NAME"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
}

// RedisConfig holds connection details for the optional presentation cache.
type RedisConfig struct {
	Enabled    bool   `mapstructure:"ENABLED"`
	Address    string `mapstructure:"ADDRESS"`
	Password   string `mapstructure:"PASSWORD"`
	DB         int    `mapstructure:"DB"`
	TTLSeconds int    `mapstructure:"TTL_SECONDS"`
}

// ExternalServices holds API keys for third-party APIs.
type ExternalServices struct {
	PexelsAPIKey string `mapstructure:"PEXELS_API_KEY"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server           ServerConfig     `mapstructure:"SERVER"`
	Supabase         SupabaseConfig   `mapstructure:"SUPABASE"`
	LocalStore       LocalStoreConfig `mapstructure:"LOCAL_STORE"`
	Extractor        ExtractorConfig  `mapstructure:"EXTRACTOR"`
	Email            EmailConfig      `mapstructure:"EMAIL"`
	Redis            RedisConfig      `mapstructure:"REDIS"`
	ExternalServices ExternalServices `mapstructure:"EXTERNAL_SERVICES"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("SUPABASE.TIMEOUT_SECONDS", 10)
	v.SetDefault("LOCAL_STORE.DIR", "./data")
	v.SetDefault("EXTRACTOR.API_URL", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("EXTRACTOR.MODEL", "gpt-4o-mini")
	v.SetDefault("EXTRACTOR.TIMEOUT_SECONDS", 60)
	v.SetDefault("REDIS.ENABLED", false)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.TTL_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.PUBLIC_BASE_URL", "PUBLIC_BASE_URL"},
		// Supabase config
		{"SUPABASE.URL", "SUPABASE_URL"},
		{"SUPABASE.SERVICE_KEY", "SUPABASE_SERVICE_KEY"},
		{"SUPABASE.ANON_KEY", "SUPABASE_ANON_KEY"},
		{"SUPABASE.TIMEOUT_SECONDS", "SUPABASE_TIMEOUT_SECONDS"},
		// Local store config
		{"LOCAL_STORE.DIR", "LOCAL_STORE_DIR"},
		// Extractor config
		{"EXTRACTOR.API_URL", "EXTRACTOR_API_URL"},
		{"EXTRACTOR.API_KEY", "EXTRACTOR_API_KEY"},
		{"EXTRACTOR.MODEL", "EXTRACTOR_MODEL"},
		{"EXTRACTOR.TIMEOUT_SECONDS", "EXTRACTOR_TIMEOUT_SECONDS"},
		// Email config
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// Redis config
		{"REDIS.ENABLED", "REDIS_ENABLED"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.TTL_SECONDS", "REDIS_TTL_SECONDS"},
		// External services
		{"EXTERNAL_SERVICES.PEXELS_API_KEY", "PEXELS_API_KEY"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"remote_store_configured", cfg.Supabase.IsConfigured(),
		"extractor_configured", cfg.Extractor.IsConfigured(),
		"supabase_key", logger.MaskSensitiveString(cfg.Supabase.ServiceKey, 4, 2),
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
// Absent Supabase or Extractor credentials are not validation failures;
// they select offline/manual modes.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Supabase.URL != "" {
		if _, err := url.ParseRequestURI(cfg.Supabase.URL); err != nil {
			return fmt.Errorf("invalid supabase URL '%s': %w", cfg.Supabase.URL, err)
		}
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	if cfg.LocalStore.Dir == "" {
		return fmt.Errorf("local store directory is required")
	}
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
