package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// TokenCache stores carrier login tokens under fixed keys.
type TokenCache interface {
	// GetToken returns the cached token.
	// Returns nil and no error if nothing is cached under key.
	GetToken(ctx context.Context, key string) (*domain.AccessToken, error)

	// SetToken stores a token, overwriting any previous value.
	SetToken(ctx context.Context, key string, token domain.AccessToken) error
}
