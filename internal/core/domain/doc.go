// Package domain defines the core business entities for parcels.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Delivery: A tracked shipment (carrier + tracking number)
//   - Package: One physical parcel within a delivery
//   - CacheEntry: The last refreshed packages for a delivery
//   - Carrier: A static carrier descriptor (id, name, colour)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
