// Package tui provides an interactive terminal user interface for parcels.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Deliveries manages the delivery list.
	Deliveries driving.DeliveryService

	// Refresh fetches tracking data from carriers.
	Refresh driving.RefreshEngine

	// Carriers lists the supported carriers.
	Carriers driving.CarrierRegistry

	// Credentials manages carrier API credentials.
	Credentials driving.CredentialsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Deliveries == nil {
		return ErrMissingDeliveryService
	}
	if p.Refresh == nil {
		return ErrMissingRefreshEngine
	}
	return nil
}
