package services

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Ensure CarrierRegistry implements the interface.
var _ driving.CarrierRegistry = (*CarrierRegistry)(nil)

// maxSuggestionDistance bounds how far a typo may be from a carrier id.
const maxSuggestionDistance = 2

type registeredCarrier struct {
	carrier domain.Carrier
	adapter driven.CarrierAdapter
}

// CarrierRegistry maps carrier ids to adapters.
// It is populated once at startup and read-only afterwards.
type CarrierRegistry struct {
	order    []string
	carriers map[string]registeredCarrier
}

// NewCarrierRegistry creates an empty carrier registry.
func NewCarrierRegistry() *CarrierRegistry {
	return &CarrierRegistry{
		carriers: make(map[string]registeredCarrier),
	}
}

// Register adds a carrier with its adapter.
// Must not be called once the registry is shared between goroutines.
func (r *CarrierRegistry) Register(carrier domain.Carrier, adapter driven.CarrierAdapter) error {
	key := normaliseCarrierKey(carrier.ID)
	if key == "" {
		return fmt.Errorf("%w: carrier id is required", domain.ErrInvalidInput)
	}
	if adapter == nil {
		return fmt.Errorf("%w: adapter for %s is nil", domain.ErrInvalidInput, carrier.ID)
	}
	if _, exists := r.carriers[key]; exists {
		return fmt.Errorf("%w: carrier %s already registered", domain.ErrInvalidInput, carrier.ID)
	}

	carrier.ID = key
	r.carriers[key] = registeredCarrier{carrier: carrier, adapter: adapter}
	r.order = append(r.order, key)
	return nil
}

// Get returns the carrier and adapter registered for an id.
// Ids match case-insensitively. Display names are accepted as a fallback
// because older delivery lists stored the carrier name.
func (r *CarrierRegistry) Get(carrierID string) (domain.Carrier, driven.CarrierAdapter, bool) {
	key := normaliseCarrierKey(carrierID)
	if rc, ok := r.carriers[key]; ok {
		return rc.carrier, rc.adapter, true
	}

	for _, id := range r.order {
		rc := r.carriers[id]
		if strings.EqualFold(rc.carrier.Name, strings.TrimSpace(carrierID)) {
			return rc.carrier, rc.adapter, true
		}
	}

	return domain.Carrier{}, nil, false
}

// List returns all carriers in registration order.
func (r *CarrierRegistry) List() []domain.Carrier {
	result := make([]domain.Carrier, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.carriers[id].carrier)
	}
	return result
}

// Resolve finds a carrier by id or display name.
func (r *CarrierRegistry) Resolve(nameOrID string) (domain.Carrier, error) {
	carrier, _, ok := r.Get(nameOrID)
	if !ok {
		return domain.Carrier{}, fmt.Errorf("%w: %q", domain.ErrUnknownCarrier, nameOrID)
	}
	return carrier, nil
}

// Suggest returns the carrier id closest to a mistyped input.
func (r *CarrierRegistry) Suggest(input string) (string, bool) {
	needle := normaliseCarrierKey(input)
	if needle == "" {
		return "", false
	}

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, id := range r.order {
		candidates := []string{id, strings.ToLower(r.carriers[id].carrier.Name)}
		for _, c := range candidates {
			if d := levenshtein.ComputeDistance(needle, c); d < bestDist {
				best, bestDist = id, d
			}
		}
	}

	return best, best != ""
}

func normaliseCarrierKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
