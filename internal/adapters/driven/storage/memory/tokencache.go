package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Ensure TokenCache implements the interface.
var _ driven.TokenCache = (*TokenCache)(nil)

// TokenCache is an in-memory implementation of driven.TokenCache.
type TokenCache struct {
	mu     sync.RWMutex
	tokens map[string]domain.AccessToken
}

// NewTokenCache creates a new in-memory token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{
		tokens: make(map[string]domain.AccessToken),
	}
}

// GetToken returns the token cached under key, or nil.
func (c *TokenCache) GetToken(_ context.Context, key string) (*domain.AccessToken, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tok, ok := c.tokens[key]
	if !ok {
		return nil, nil
	}
	return &tok, nil
}

// SetToken stores a token under key.
func (c *TokenCache) SetToken(_ context.Context, key string, token domain.AccessToken) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[key] = token
	return nil
}
