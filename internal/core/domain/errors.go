package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRefreshInProgress indicates a refresh pass is already running.
	ErrRefreshInProgress = errors.New("refresh in progress")

	// Tracking Errors.

	// ErrMissingCredentials indicates a carrier needs credentials that are not configured.
	// Never retried automatically; the user must fix configuration.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrRemoteCallFailed indicates a carrier service returned a non-success
	// response or could not be reached. Retried on the next pass only.
	ErrRemoteCallFailed = errors.New("remote call failed")

	// ErrMalformedResponse indicates a carrier response could not be parsed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnknownCarrier indicates a delivery references a carrier id that is not registered.
	ErrUnknownCarrier = errors.New("unknown carrier")
)

// RemoteTrackingError is returned by carrier adapters when a tracking
// lookup fails. Kind is one of ErrMissingCredentials, ErrRemoteCallFailed
// or ErrMalformedResponse.
type RemoteTrackingError struct {
	// Carrier is the display name of the carrier.
	Carrier string
	// TrackingNumber is the tracking number being looked up.
	TrackingNumber string
	// Kind classifies the failure.
	Kind error
	// StatusCode is the HTTP status code, zero when no response was received.
	StatusCode int
	// Status is the HTTP status text, if any.
	Status string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error. The message is meant for display to the user.
func (e *RemoteTrackingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s tracking for %s: %v", e.Carrier, e.TrackingNumber, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d %s)", e.StatusCode, e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Reportable() {
		b.WriteString(". Please file a bug report.")
	}
	return b.String()
}

// Unwrap exposes both the failure kind and the underlying cause to errors.Is/As.
func (e *RemoteTrackingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Reportable returns true if the failure points at a bug rather than
// something the user can fix.
func (e *RemoteTrackingError) Reportable() bool {
	return errors.Is(e.Kind, ErrMalformedResponse)
}

// Retryable returns true if the next refresh pass may succeed without user action.
func (e *RemoteTrackingError) Retryable() bool {
	return !errors.Is(e.Kind, ErrMissingCredentials)
}
