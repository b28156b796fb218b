// Package observability provides logging, metrics, and request correlation
// support for the OpenAlex explorer service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for searches, lookups, and upstream API requests
//   - Context helpers for propagating the correlation request ID
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("query", query).Msg("search started")
//
// Add search context to a logger:
//
//	logger = observability.WithSearchContext(logger, query, "publications")
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("openalex_explorer")
//
// Record metrics:
//
//	metrics.RecordSearchStarted("publications")
//	metrics.RecordUpstreamRequest("works_search", 0.2)
//
// # Context Helpers
//
// Store and retrieve the correlation request ID:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: Correlation identifier for a single API request
//   - query: Search term as supplied by the caller
//   - entity: Entity collection (publications, authors, concepts)
//   - entity_id: OpenAlex identifier for a single entity
//   - component: Emitting component (http-server, mcp-server, explorer)
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
