package mcp

import (
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Deliveries manages the delivery list.
	Deliveries driving.DeliveryService

	// Refresh fetches tracking data. Without it refresh_deliveries is not offered.
	Refresh driving.RefreshEngine

	// Carriers lists supported carriers for the carriers resource.
	Carriers driving.CarrierRegistry
}

// Validate ensures all required ports are set.
// Refresh and Carriers are optional.
func (p *Ports) Validate() error {
	if p == nil || p.Deliveries == nil {
		return ErrMissingDeliveryService
	}
	return nil
}
