package driving

import (
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// CarrierRegistry maps carrier ids to their adapters.
type CarrierRegistry interface {
	// Get returns the carrier and adapter registered for an id.
	Get(carrierID string) (domain.Carrier, driven.CarrierAdapter, bool)

	// List returns all carriers in registration order.
	List() []domain.Carrier

	// Resolve finds a carrier by id or display name.
	// Returns domain.ErrUnknownCarrier if nothing matches.
	Resolve(nameOrID string) (domain.Carrier, error)

	// Suggest returns the closest carrier id to a mistyped input.
	Suggest(input string) (string, bool)
}
