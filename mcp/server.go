// Package mcp exposes payment lookups and cancellations as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamporter/iamporter-go/client"
	"github.com/iamporter/iamporter-go/internal/config"
	"github.com/iamporter/iamporter-go/internal/health"
	"github.com/iamporter/iamporter-go/internal/logger"
	"github.com/iamporter/iamporter-go/mcp/internal/handlers"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every payment tool registered.
func NewServer(c *client.Client, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	for _, h := range []struct {
		name    string
		handler toolRegisterer
	}{
		{"payment", handlers.NewPaymentHandler(c)},
		{"prepare", handlers.NewPrepareHandler(c)},
	} {
		if err := h.handler.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", h.name, err)
		}
	}
	return s, nil
}

// newClient builds the SDK client from IAMPORT_* variables, falling back to
// the sandbox credentials when sandbox is set and no key is configured.
func newClient(sandbox bool) (*client.Client, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	if sandbox && cfg.APIKey == "" {
		cfg.APIKey, cfg.APISecret = client.SandboxAPIKey, client.SandboxAPISecret
	}
	return client.NewFromConfig(cfg)
}

// RunMCPServer starts the MCP server and blocks until it exits.
func RunMCPServer() error {
	// Stdout carries the stdio protocol, so logs go to stderr.
	log.Logger = logger.New("iamporter-mcp-server", os.Stderr)

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.NewMCP()
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to load configuration")
		return err
	}
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	log.Logger = log.With().Caller().Logger()

	iamporter, err := newClient(cfg.Sandbox)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Msg("Client created successfully")

	s, err := NewServer(iamporter, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		_ = iamporter.Close()
		return err
	}

	if shouldUseStdio(cfg.Transport) {
		log.Info().Msg("Starting iamporter MCP server (stdio transport)")
		defer iamporter.Close()
		if err := server.ServeStdio(s); err != nil {
			log.Error().Err(err).Msg("Stdio server error")
			return err
		}
		return nil
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("Starting iamporter MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(cfg.HeartbeatInterval),
	)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	svcHealth := health.NewServiceChecker(log.Logger,
		health.NewPingChecker(log.Logger, "iamport", iamporter, cfg.HTTPReadTimeout),
	)
	go svcHealth.Start(healthCtx, cfg.HealthInterval)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      newHTTPHandler(streamSrv, svcHealth),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // streaming responses have no deadline
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		stopHealth()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}

		log.Info().Msg("Shutting down MCP streamable server...")
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}

		if err := iamporter.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing iamporter client")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("HTTP server error")
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// newHTTPHandler routes /mcp to the MCP transport and /healthz to the
// vendor health flag.
func newHTTPHandler(mcpHandler http.Handler, h *health.ServiceChecker) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/healthz", h.Handler())
	return mux
}

// shouldUseStdio resolves TransportAuto by checking whether stdin is a
// terminal: a launched process gets a pipe.
func shouldUseStdio(t config.Transport) bool {
	switch t {
	case config.TransportStdio:
		return true
	case config.TransportHTTP:
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
