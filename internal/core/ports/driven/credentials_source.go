package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// CredentialsSource provides read-only API credentials per carrier.
type CredentialsSource interface {
	// Credentials returns the credentials for a carrier.
	// Unconfigured carriers return zero credentials and no error.
	Credentials(ctx context.Context, carrierID string) (domain.CarrierCredentials, error)
}
