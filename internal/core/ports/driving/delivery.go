package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// AddDeliveryRequest holds user input for a new delivery.
type AddDeliveryRequest struct {
	Name           string
	Carrier        string
	TrackingNumber string
	// ManualDeliveryDate is used by carriers that cannot be tracked remotely.
	ManualDeliveryDate *time.Time
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(ctx context.Context, delivery domain.Delivery) bool

// DeliveryService manages the delivery list and its ranked presentation.
type DeliveryService interface {
	// Add validates and stores a new delivery.
	Add(ctx context.Context, req AddDeliveryRequest) (*domain.Delivery, error)

	// Remove deletes a delivery after confirm returns true.
	// Returns false and no error when the user declines.
	Remove(ctx context.Context, id string, confirm ConfirmFunc) (bool, error)

	// List returns all deliveries ranked for display.
	List(ctx context.Context) ([]domain.DeliveryView, error)

	// Get returns a single delivery view.
	Get(ctx context.Context, id string) (*domain.DeliveryView, error)
}
