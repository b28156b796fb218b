// Package main provides the entry point for the OpenAlex explorer MCP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/helixir/openalex-explorer/internal/config"
	"github.com/helixir/openalex-explorer/internal/explorer"
	"github.com/helixir/openalex-explorer/internal/observability"
	"github.com/helixir/openalex-explorer/internal/openalex"
	mcpserver "github.com/helixir/openalex-explorer/internal/server/mcp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	httpAddr := flag.String("http", "", "serve MCP over streamable HTTP on this address instead of stdio")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Log to stderr; in stdio mode stdout carries the MCP protocol.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     "stderr",
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "mcp-server").Logger()

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create the OpenAlex API client.
	client := openalex.New(openalex.Config{
		BaseURL:    cfg.API.BaseURL,
		Email:      cfg.API.Email,
		Timeout:    cfg.API.Timeout,
		RateLimit:  cfg.API.RateLimit,
		BurstSize:  cfg.API.BurstSize,
		MaxRetries: cfg.API.MaxRetries,
		RetryDelay: cfg.API.RetryDelay,
		PerPage:    cfg.API.PerPage,
	})
	if cfg.API.Email == "" {
		logger.Warn().Msg("no contact email configured, set OPENALEX_EMAIL to join the polite pool")
	}

	// Create the explorer service.
	metrics := observability.NewMetrics("openalex_explorer")
	svc := explorer.NewService(client, logger, metrics)

	server, err := mcpserver.NewServer(&mcpserver.Ports{Explorer: svc})
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	if *httpAddr != "" {
		logger.Info().Str("address", *httpAddr).Msg("MCP server starting on streamable HTTP")
		return server.RunHTTP(ctx, *httpAddr)
	}

	logger.Info().Msg("MCP server starting on stdio")
	return server.Run(ctx)
}
