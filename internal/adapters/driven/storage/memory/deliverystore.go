package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Ensure DeliveryStore implements the interface.
var _ driven.DeliveryStore = (*DeliveryStore)(nil)

// DeliveryStore is an in-memory implementation of driven.DeliveryStore.
// Deliveries keep their insertion order.
type DeliveryStore struct {
	mu         sync.RWMutex
	deliveries []domain.Delivery
}

// NewDeliveryStore creates a new in-memory delivery store.
func NewDeliveryStore() *DeliveryStore {
	return &DeliveryStore{}
}

// List returns a copy of all deliveries in insertion order.
func (s *DeliveryStore) List(_ context.Context) ([]domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deliveries), nil
}

// Save replaces the whole list.
func (s *DeliveryStore) Save(_ context.Context, deliveries []domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = slices.Clone(deliveries)
	return nil
}

// Add appends a delivery, replacing any delivery with the same ID in place.
func (s *DeliveryStore) Add(_ context.Context, delivery domain.Delivery) error {
	if delivery.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(delivery.ID); i >= 0 {
		s.deliveries[i] = delivery
		return nil
	}
	s.deliveries = append(s.deliveries, delivery)
	return nil
}

// Get retrieves a delivery by ID.
func (s *DeliveryStore) Get(_ context.Context, id string) (*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	d := s.deliveries[i]
	return &d, nil
}

// Remove deletes a delivery by ID.
func (s *DeliveryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.deliveries = slices.Delete(s.deliveries, i, i+1)
	return nil
}

// indexOf returns the position of id (caller must hold lock).
func (s *DeliveryStore) indexOf(id string) int {
	return slices.IndexFunc(s.deliveries, func(d domain.Delivery) bool {
		return d.ID == id
	})
}
