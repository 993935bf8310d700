package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// PackageCache stores the result of the last successful refresh per delivery.
// Implementations must be safe for concurrent use. Set replaces an entry
// wholesale; entries are never merged.
type PackageCache interface {
	// Get returns the entry for a delivery.
	// Returns nil and no error if the delivery was never refreshed.
	Get(ctx context.Context, deliveryID string) (*domain.CacheEntry, error)

	// Set replaces the entry for a delivery.
	Set(ctx context.Context, deliveryID string, entry domain.CacheEntry) error

	// Delete removes the entry for a delivery. Missing entries are ignored.
	Delete(ctx context.Context, deliveryID string) error

	// Snapshot returns a copy of all entries keyed by delivery ID.
	Snapshot(ctx context.Context) (map[string]domain.CacheEntry, error)
}
