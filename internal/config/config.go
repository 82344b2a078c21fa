// Package config loads and validates panel config from env and an optional
// .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds panel configuration loaded from the environment.
type Config struct {
	// IdentityURL is the base URL of the identity service (login, signup,
	// OTP verify, session lookup).
	IdentityURL string `mapstructure:"IDENTITY_URL"`
	// OrdersURL is the base URL of the order service.
	OrdersURL string `mapstructure:"ORDERS_URL"`
	// StatePath is the bbolt file holding the persisted session record and
	// bearer token (e.g. ~/.owner-panel/state.db).
	StatePath string `mapstructure:"STATE_PATH"`
	// PollInterval is the badge poll interval (e.g. "30s").
	PollInterval string `mapstructure:"POLL_INTERVAL"`
	// HTTPTimeout is the per-request timeout for collaborator calls (e.g. "15s").
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint; empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("IDENTITY_URL", "")
	v.SetDefault("ORDERS_URL", "")
	v.SetDefault("STATE_PATH", "panel-state.db")
	v.SetDefault("POLL_INTERVAL", "30s")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.IdentityURL == "" {
		return nil, errors.New("config: IDENTITY_URL must be set")
	}
	if cfg.OrdersURL == "" {
		return nil, errors.New("config: ORDERS_URL must be set")
	}
	if cfg.StatePath == "" {
		return nil, errors.New("config: STATE_PATH must be set")
	}

	return &cfg, nil
}

// PollEvery parses PollInterval as a time.Duration. Returns 30s if unset or
// invalid.
func (c *Config) PollEvery() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// RequestTimeout parses HTTPTimeout as a time.Duration. Returns 15s if unset
// or invalid.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
