package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// CarrierAdapter fetches tracking state from one carrier backend and
// normalises it into packages.
type CarrierAdapter interface {
	// AbleToTrackRemotely reports whether the adapter can call a remote
	// tracking service (e.g. credentials are configured). Never errors.
	AbleToTrackRemotely(ctx context.Context) bool

	// UpdateTracking returns the current packages for a delivery.
	// Failures are returned as *domain.RemoteTrackingError.
	UpdateTracking(ctx context.Context, delivery domain.Delivery) ([]domain.Package, error)
}
