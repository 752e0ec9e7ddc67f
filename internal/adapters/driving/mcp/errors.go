// Package mcp exposes interface detection and design filtering as MCP
// (Model Context Protocol) tools, so assistants can query binder designs.
package mcp

import "errors"

var (
	// ErrMissingInterfaceService is returned when the interface service is not provided.
	ErrMissingInterfaceService = errors.New("mcp: interface service is required")

	// ErrMissingMetricsService is returned when the metrics service is not provided.
	ErrMissingMetricsService = errors.New("mcp: metrics service is required")
)
