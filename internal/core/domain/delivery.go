package domain

import "time"

// Delivery is a user-tracked shipment identified by carrier and tracking number.
// A delivery may contain one or more physical packages.
type Delivery struct {
	// ID is the unique identifier (UUID). It is also the package cache key.
	ID string `json:"id"`

	// Name is the human-readable name for the delivery.
	Name string `json:"name"`

	// Carrier is the carrier identifier (e.g., "usps", "fedex").
	Carrier string `json:"carrier"`

	// TrackingNumber is the carrier's tracking number.
	TrackingNumber string `json:"tracking_number"`

	// ManualDeliveryDate is a user-entered delivery date, used by carriers
	// that cannot be tracked remotely.
	ManualDeliveryDate *time.Time `json:"manual_delivery_date,omitempty"`

	// Debug marks synthetic deliveries that are never refreshed remotely.
	Debug bool `json:"debug,omitempty"`

	// CreatedAt is when the delivery was added.
	CreatedAt time.Time `json:"created_at"`
}
