// Package mcp provides an MCP (Model Context Protocol) server adapter for parcels.
// It lets AI assistants list, refresh and add deliveries.
package mcp

import "errors"

// ErrMissingDeliveryService is returned when the delivery service is not provided.
var ErrMissingDeliveryService = errors.New("mcp: delivery service is required")
