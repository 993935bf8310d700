package driving

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// RefreshEngine brings the package cache up to date with carrier backends.
type RefreshEngine interface {
	// Refresh runs one pass over all deliveries. Without force, deliveries
	// refreshed within the staleness window are skipped. Per-delivery
	// failures are reported, never returned; the error is only set when
	// the pass could not run at all (e.g. another pass is in progress).
	Refresh(ctx context.Context, force bool) (*domain.RefreshReport, error)

	// Status reports whether a pass is running and the last report.
	Status() domain.RefreshStatus
}
