package domain

import "time"

// TokenRefreshMargin is the remaining lifetime below which a cached access
// token is treated as expired and a new login is performed.
const TokenRefreshMargin = 30 * time.Second

// CarrierCredentials holds the API key pair for a carrier account.
type CarrierCredentials struct {
	// APIKey is the client id issued by the carrier.
	APIKey string
	// SecretKey is the client secret issued by the carrier.
	SecretKey string
}

// IsConfigured returns true if both the key and the secret are set.
func (c CarrierCredentials) IsConfigured() bool {
	return c.APIKey != "" && c.SecretKey != ""
}

// AccessToken is a carrier login response as cached between calls.
type AccessToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// TokenType is typically "bearer".
	TokenType string `json:"token_type"`
	// ExpiresIn is the lifetime in seconds reported by the carrier.
	ExpiresIn int64 `json:"expires_in"`
	// Scope is the granted scope.
	Scope string `json:"scope,omitempty"`
	// ExpiresAt is when the token stops being valid.
	ExpiresAt time.Time `json:"expires_at"`
}

// NeedsRefresh returns true if the token has less than TokenRefreshMargin
// of lifetime left at now.
func (t *AccessToken) NeedsRefresh(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	return t.ExpiresAt.Sub(now) < TokenRefreshMargin
}
