// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/parcels/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDeliveries is the ranked delivery list.
	ViewDeliveries ViewType = iota
	// ViewDetail shows a single delivery and its packages.
	ViewDetail
	// ViewAddDelivery is the add delivery form.
	ViewAddDelivery
	// ViewCredentials is the carrier credentials form.
	ViewCredentials
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDeliveries:
		return "deliveries"
	case ViewDetail:
		return "detail"
	case ViewAddDelivery:
		return "add_delivery"
	case ViewCredentials:
		return "credentials"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DeliveriesLoaded carries the ranked delivery list.
type DeliveriesLoaded struct {
	Deliveries []domain.DeliveryView
	Err        error
}

// DeliverySelected signals a delivery was opened.
type DeliverySelected struct {
	Delivery domain.DeliveryView
}

// RefreshRequested asks for a refresh pass.
type RefreshRequested struct {
	Force bool
}

// RefreshCompleted carries the outcome of a refresh pass.
type RefreshCompleted struct {
	Report *domain.RefreshReport
	Err    error
}

// DeliveryAdded signals a delivery was added.
type DeliveryAdded struct {
	Delivery *domain.Delivery
	Err      error
}

// DeliveryRemoved signals a delivery was removed.
type DeliveryRemoved struct {
	ID  string
	Err error
}

// CredentialsSaved signals carrier credentials were stored.
type CredentialsSaved struct {
	CarrierID string
	Err       error
}
