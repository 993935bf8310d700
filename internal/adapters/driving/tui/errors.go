package tui

import "errors"

// ErrMissingDeliveryService is returned when the delivery service is not provided.
var ErrMissingDeliveryService = errors.New("tui: delivery service is required")

// ErrMissingRefreshEngine is returned when the refresh engine is not provided.
var ErrMissingRefreshEngine = errors.New("tui: refresh engine is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
