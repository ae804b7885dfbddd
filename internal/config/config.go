// Package config loads settings for the iamporter binaries.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Transport selects how the MCP server talks to its host.
type Transport string

const (
	TransportAuto  Transport = "auto"
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// MCPConfig holds the MCP server settings.
// Environment variables are parsed from the IAMPORTER_MCP_ prefix.
type MCPConfig struct {
	ServerName    string `envconfig:"SERVER_NAME" default:"iamporter-mcp-server"`
	ServerVersion string `envconfig:"SERVER_VERSION" default:"0.3.0"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	Transport  Transport `envconfig:"TRANSPORT" default:"auto"`
	ListenAddr string    `envconfig:"LISTEN_ADDR" default:":11546"`

	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout   time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout   time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	HeartbeatInterval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"30s"`
	HealthInterval    time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`

	// Sandbox uses the vendor's public test credentials when no key is set.
	Sandbox bool `envconfig:"SANDBOX" default:"false"`
}

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// NewMCP loads MCPConfig from the environment.
func NewMCP() (*MCPConfig, error) {
	var cfg MCPConfig
	if err := envconfig.Process("IAMPORTER_MCP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("server_name", cfg.ServerName).
		Str("transport", string(cfg.Transport)).
		Str("listen_addr", cfg.ListenAddr).
		Bool("sandbox", cfg.Sandbox).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Validate rejects unknown transports and non-positive timeouts.
func (c *MCPConfig) Validate() error {
	switch c.Transport {
	case TransportAuto, TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported IAMPORTER_MCP_TRANSPORT: %s", c.Transport)
	}
	if c.ShutdownTimeout <= 0 || c.HTTPReadTimeout <= 0 || c.HealthInterval <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	return nil
}
