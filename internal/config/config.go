package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/app-builder/internal/entity"
	pkgRetry "github.com/futig/app-builder/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Port string `env:"PORT" envDefault:"5000"`
	Host string `env:"HOST"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// Model gateway configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// UI configuration
	UICfg UIConfig `envPrefix:"UI_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only required by the telegram-bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConfig selects and configures the model gateway backend.
// The backend is fixed for the lifetime of the process.
type LLMConfig struct {
	Backend entity.Backend     `env:"BACKEND" envDefault:"local"`
	Local   LocalBackendConfig `envPrefix:"LOCAL_"`
	Cloud   CloudBackendConfig `envPrefix:"CLOUD_"`
}

// LocalBackendConfig describes an OpenAI-compatible chat-completion endpoint.
type LocalBackendConfig struct {
	HTTPClientConfig
	Url            string                `env:"SERVICE_URL" envDefault:"http://localhost:1234/v1"`
	Token          string                `env:"TOKEN"`
	Model          string                `env:"MODEL" envDefault:"local-model"`
	ResponseFormat entity.ResponseFormat `env:"RESPONSE_FORMAT" envDefault:"raw"`
	Temperature    float64               `env:"TEMPERATURE" envDefault:"0.2"`
}

// CloudBackendConfig describes the Gemini generative-content endpoint.
type CloudBackendConfig struct {
	HTTPClientConfig
	APIKey         string                `env:"API_KEY"`
	Url            string                `env:"SERVICE_URL"`
	Model          string                `env:"MODEL" envDefault:"gemini-2.0-flash"`
	ResponseFormat entity.ResponseFormat `env:"RESPONSE_FORMAT" envDefault:"json"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"90s"`
}

// UIConfig holds mock UI session settings
type UIConfig struct {
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	FieldCatalogPath string        `env:"FIELD_CATALOG_PATH"`

	// Loaded from FieldCatalogPath; nil means the built-in catalog.
	FieldCatalog *FieldCatalogFile
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"3"`
}

// FieldCatalogFile is the structure of the optional entity field catalog JSON file.
type FieldCatalogFile struct {
	Rules []struct {
		Fragment string   `json:"fragment"`
		Fields   []string `json:"fields"`
	} `json:"rules"`
	Default []string `json:"default"`
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadFieldCatalog(cfg); err != nil {
		return nil, fmt.Errorf("load field catalog: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if err := cfg.LLMCfg.Backend.Validate(); err != nil {
		errors = append(errors, "LLM_BACKEND: "+err.Error())
	}

	if err := cfg.LLMCfg.Local.ResponseFormat.Validate(); err != nil {
		errors = append(errors, "LLM_LOCAL_RESPONSE_FORMAT: "+err.Error())
	}

	if err := cfg.LLMCfg.Cloud.ResponseFormat.Validate(); err != nil {
		errors = append(errors, "LLM_CLOUD_RESPONSE_FORMAT: "+err.Error())
	}

	if cfg.LLMCfg.Backend == entity.BackendCloud && !cfg.EnableMocks && cfg.LLMCfg.Cloud.APIKey == "" {
		errors = append(errors, "LLM_CLOUD_API_KEY is required when LLM_BACKEND=cloud")
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.UICfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("UI_SESSION_TTL must be at least 1m, got %s", cfg.UICfg.SessionTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func loadFieldCatalog(cfg *Config) error {
	path := cfg.UICfg.FieldCatalogPath
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read field catalog file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("field catalog file is empty: %s", path)
	}

	var catalog FieldCatalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse field catalog JSON: %w", err)
	}

	if len(catalog.Default) == 0 {
		return fmt.Errorf("field catalog file has no default fields: %s", path)
	}

	for i, rule := range catalog.Rules {
		if strings.TrimSpace(rule.Fragment) == "" || len(rule.Fields) == 0 {
			return fmt.Errorf("field catalog rule %d needs a fragment and fields", i)
		}
	}

	cfg.UICfg.FieldCatalog = &catalog

	fmt.Printf("Loaded %d field catalog rules from %s\n", len(catalog.Rules), path)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
