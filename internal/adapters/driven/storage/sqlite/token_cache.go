package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// tokenCache implements driven.TokenCache.
// Tokens are stored as the JSON login response.
type tokenCache struct {
	store *Store
}

var _ driven.TokenCache = (*tokenCache)(nil)

// GetToken returns the token cached under key, or nil.
func (c *tokenCache) GetToken(ctx context.Context, key string) (*domain.AccessToken, error) {
	var tokenJSON string
	err := c.store.db.QueryRowContext(ctx, "SELECT token FROM tokens WHERE key = ?", key).Scan(&tokenJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying token: %w", err)
	}

	var token domain.AccessToken
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return &token, nil
}

// SetToken stores a token under key, overwriting any previous value.
func (c *tokenCache) SetToken(ctx context.Context, key string, token domain.AccessToken) error {
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO tokens (key, token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`, key, string(tokenJSON), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}
