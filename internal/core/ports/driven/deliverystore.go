package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// DeliveryStore persists the user's ordered delivery list.
type DeliveryStore interface {
	// List returns all deliveries in insertion order.
	List(ctx context.Context) ([]domain.Delivery, error)

	// Save replaces the whole list.
	Save(ctx context.Context, deliveries []domain.Delivery) error

	// Add appends a delivery to the list.
	Add(ctx context.Context, delivery domain.Delivery) error

	// Get retrieves a delivery by ID.
	// Returns domain.ErrNotFound if the delivery does not exist.
	Get(ctx context.Context, id string) (*domain.Delivery, error)

	// Remove deletes a delivery by ID.
	// Returns domain.ErrNotFound if the delivery does not exist.
	Remove(ctx context.Context, id string) error
}
