package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
	"github.com/custodia-labs/parcels/internal/logger"
)

// Ensure DeliveryService implements the interface.
var _ driving.DeliveryService = (*DeliveryService)(nil)

// DeliveryService manages the delivery list and builds ranked views.
type DeliveryService struct {
	store    driven.DeliveryStore
	cache    driven.PackageCache
	registry driving.CarrierRegistry
	notifier driven.Notifier
	now      func() time.Time
}

// NewDeliveryService creates a new delivery service.
// The notifier is optional.
func NewDeliveryService(
	store driven.DeliveryStore,
	cache driven.PackageCache,
	registry driving.CarrierRegistry,
	notifier driven.Notifier,
) *DeliveryService {
	return &DeliveryService{
		store:    store,
		cache:    cache,
		registry: registry,
		notifier: notifier,
		now:      time.Now,
	}
}

// Add validates and appends a new delivery.
func (s *DeliveryService) Add(ctx context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error) {
	name := strings.TrimSpace(req.Name)
	trackingNumber := strings.TrimSpace(req.TrackingNumber)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Carrier) == "" {
		return nil, fmt.Errorf("%w: carrier is required", domain.ErrInvalidInput)
	}
	if trackingNumber == "" {
		return nil, fmt.Errorf("%w: tracking number is required", domain.ErrInvalidInput)
	}

	carrier, err := s.registry.Resolve(req.Carrier)
	if err != nil {
		if suggestion, ok := s.registry.Suggest(req.Carrier); ok {
			return nil, fmt.Errorf("%w (did you mean %q?)", err, suggestion)
		}
		return nil, err
	}

	delivery := domain.Delivery{
		ID:                 uuid.NewString(),
		Name:               name,
		Carrier:            carrier.ID,
		TrackingNumber:     trackingNumber,
		ManualDeliveryDate: req.ManualDeliveryDate,
		CreatedAt:          s.now(),
	}

	if err := s.store.Add(ctx, delivery); err != nil {
		return nil, fmt.Errorf("save delivery: %w", err)
	}

	s.notify(ctx, domain.Notification{
		Style:   domain.NotifySuccess,
		Title:   "New Delivery Added",
		Message: delivery.Name,
	})

	return &delivery, nil
}

// Remove deletes a delivery after confirmation. A nil confirm removes without
// asking. Its cached packages are left for the refresh engine to prune.
func (s *DeliveryService) Remove(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error) {
	delivery, err := s.store.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if confirm != nil && !confirm(ctx, *delivery) {
		return false, nil
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return false, fmt.Errorf("remove delivery: %w", err)
	}

	s.notify(ctx, domain.Notification{
		Style:   domain.NotifySuccess,
		Title:   "Deleted Delivery",
		Message: delivery.Name,
	})

	return true, nil
}

// List returns all deliveries ranked for display.
func (s *DeliveryService) List(ctx context.Context) ([]domain.DeliveryView, error) {
	deliveries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	entries, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read package cache: %w", err)
	}

	// One timestamp for every comparison in this ranking.
	now := s.now()

	views := make([]domain.DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		var entry *domain.CacheEntry
		if e, ok := entries[d.ID]; ok {
			entry = &e
		}
		views = append(views, s.buildView(d, entry, now))
	}

	RankDeliveries(views, now)
	return views, nil
}

// Get returns a single delivery view.
func (s *DeliveryService) Get(ctx context.Context, id string) (*domain.DeliveryView, error) {
	delivery, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read package cache: %w", err)
	}

	view := s.buildView(*delivery, entry, s.now())
	return &view, nil
}

func (s *DeliveryService) buildView(d domain.Delivery, entry *domain.CacheEntry, now time.Time) domain.DeliveryView {
	carrier, _, ok := s.registry.Get(d.Carrier)
	if !ok {
		carrier = domain.Carrier{ID: d.Carrier, Name: d.Carrier}
	}

	view := domain.DeliveryView{
		Delivery: d,
		Carrier:  carrier,
	}
	if entry != nil {
		view.Packages = entry.Packages
		view.LastUpdated = entry.LastUpdated
	}
	view.Summary = Summarize(view.Packages, now)
	return view
}

func (s *DeliveryService) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		logger.Warn("Notify failed: %v", err)
	}
}
