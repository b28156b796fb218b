// Package mcp provides an MCP (Model Context Protocol) server exposing
// OpenAlex publication, author, and concept search as tools for AI
// assistants.
package mcp

import "errors"

// ErrMissingExplorer is returned when the explorer service is not provided.
var ErrMissingExplorer = errors.New("mcp: explorer service is required")
