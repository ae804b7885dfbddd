package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the environment-driven way to build a Client.
// Variables are read with the IAMPORT_ prefix, e.g. IAMPORT_API_KEY.
type Config struct {
	APIKey    string `envconfig:"API_KEY"`
	APISecret string `envconfig:"API_SECRET"`

	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.iamport.kr"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Retry is off unless RETRY_MAX_ATTEMPTS > 1.
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`
	RetryBaseBackoff time.Duration `envconfig:"RETRY_BASE_BACKOFF" default:"100ms"`
	RetryMaxInterval time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"5s"`

	// TokenRefreshSkew is a pointer so an explicit 0s turns the margin off
	// while a nil value keeps the default.
	TokenRefreshSkew *time.Duration `envconfig:"TOKEN_REFRESH_SKEW" default:"60s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("IAMPORT", &cfg); err != nil {
		return Config{}, fmt.Errorf("load iamport config: %w", err)
	}
	return cfg, nil
}

// Options converts cfg into construction options. Zero values keep defaults.
func (cfg Config) Options() []Option {
	var opts []Option
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	if cfg.RetryMaxAttempts > 1 {
		opts = append(opts, WithRetry(cfg.RetryMaxAttempts, cfg.RetryBaseBackoff, cfg.RetryMaxInterval))
	}
	if cfg.TokenRefreshSkew != nil {
		opts = append(opts, WithTokenRefreshSkew(*cfg.TokenRefreshSkew))
	}
	return opts
}

// NewFromConfig builds a Client from cfg followed by any extra options.
// Unlike New it reports configuration problems as errors.
func NewFromConfig(cfg Config, extra ...Option) (c *Client, err error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("IAMPORT_API_KEY and IAMPORT_API_SECRET are required")
	}
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("iamport client: %v", r)
		}
	}()
	return New(cfg.APIKey, cfg.APISecret, append(cfg.Options(), extra...)...), nil
}
