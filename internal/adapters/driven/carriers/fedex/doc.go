// Package fedex implements the FedEx carrier adapter.
//
// The adapter logs in with the OAuth client-credentials flow, caches the
// access token in a driven.TokenCache under a fixed key and calls the
// Track API once per delivery. All requests go through a token-bucket
// rate limiter.
package fedex
