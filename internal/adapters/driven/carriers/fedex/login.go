package fedex

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/logger"
)

// TokenCacheKey is the token cache key for the FedEx login response.
const TokenCacheKey = "fedex.login"

// tokenManager hands out access tokens, logging in only when the cached
// token is missing or about to expire. Concurrent callers share one login.
type tokenManager struct {
	tokenURL string
	client   *http.Client
	cache    driven.TokenCache
	now      func() time.Time
	group    singleflight.Group
}

// Token returns a usable access token for creds.
func (m *tokenManager) Token(ctx context.Context, creds domain.CarrierCredentials) (*domain.AccessToken, error) {
	v, err, _ := m.group.Do(TokenCacheKey, func() (any, error) {
		cached, err := m.cache.GetToken(ctx, TokenCacheKey)
		if err != nil {
			logger.Warn("Reading FedEx token cache: %v", err)
		}
		if !cached.NeedsRefresh(m.now()) {
			return cached, nil
		}

		if cached == nil {
			logger.Debug("Logging into FedEx")
		} else {
			logger.Debug("FedEx access token expiring at %s; logging in again", cached.ExpiresAt.Format(time.RFC3339))
		}

		token, err := m.login(ctx, creds)
		if err != nil {
			return nil, err
		}
		if err := m.cache.SetToken(ctx, TokenCacheKey, *token); err != nil {
			logger.Warn("Caching FedEx token: %v", err)
		}
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AccessToken), nil
}

// login performs the client-credentials exchange. Credentials travel in the
// form body, as FedEx expects.
func (m *tokenManager) login(ctx context.Context, creds domain.CarrierCredentials) (*domain.AccessToken, error) {
	cfg := clientcredentials.Config{
		ClientID:     creds.APIKey,
		ClientSecret: creds.SecretKey,
		TokenURL:     m.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.client)
	tok, err := cfg.Token(ctx)
	if err != nil {
		return nil, err
	}

	token := &domain.AccessToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresAt:   tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		token.Scope = scope
	}
	if secs, ok := extraSeconds(tok.Extra("expires_in")); ok {
		token.ExpiresIn = secs
		token.ExpiresAt = m.now().Add(time.Duration(secs) * time.Second)
	}
	return token, nil
}

// extraSeconds reads a numeric token response field, whichever way the
// response body was decoded.
func extraSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
