package driving

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// CredentialsService manages per-carrier API credentials.
type CredentialsService interface {
	// Credentials returns the effective credentials for a carrier.
	// Environment overrides take precedence over the config file.
	Credentials(ctx context.Context, carrierID string) (domain.CarrierCredentials, error)

	// SetCredentials stores credentials for a carrier in the config file.
	SetCredentials(ctx context.Context, carrierID string, creds domain.CarrierCredentials) error
}
