package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "MAGARI"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, kept as constants so tests and docs stay in sync.
const (
	EnvAppEnv       = "MAGARI_APP_ENV"
	EnvLogLevel     = "MAGARI_LOG_LEVEL"
	EnvAPIBaseURL   = "MAGARI_API_BASE_URL"
	EnvAPITimeout   = "MAGARI_API_TIMEOUT"
	EnvFetchRetries = "MAGARI_API_FETCH_RETRIES"
	EnvShipmentFee  = "MAGARI_SHIPMENT_FEE_FALLBACK"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Store StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.ensureBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAGARI_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"MAGARI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAGARI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL      string        `envconfig:"MAGARI_API_BASE_URL" default:"http://127.0.0.1:5000"`
	Timeout      time.Duration `envconfig:"MAGARI_API_TIMEOUT" default:"10s"`
	FetchRetries int           `envconfig:"MAGARI_API_FETCH_RETRIES" default:"3"`
}

type StoreConfig struct {
	ShipmentFeeFallback int    `envconfig:"MAGARI_SHIPMENT_FEE_FALLBACK" default:"3000"`
	CurrencyLabel       string `envconfig:"MAGARI_CURRENCY_LABEL" default:"KSh"`
	Locale              string `envconfig:"MAGARI_LOCALE" default:"en-KE"`
}

func (a *APIConfig) ensureBaseURL() error {
	trimmed := strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if trimmed == "" {
		return fmt.Errorf("%s is required", EnvAPIBaseURL)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvAPIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvAPIBaseURL, a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host, got %q", EnvAPIBaseURL, a.BaseURL)
	}
	a.BaseURL = trimmed
	return nil
}
