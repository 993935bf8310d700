// Package manual implements carrier adapters for carriers without a remote
// tracking integration. Packages are synthesised from the delivery date the
// user entered.
package manual

import (
	"context"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.CarrierAdapter = (*Adapter)(nil)

// Adapter derives a single package from Delivery.ManualDeliveryDate.
type Adapter struct {
	now func() time.Time
}

// New creates a manual adapter. A nil clock defaults to time.Now.
func New(now func() time.Time) *Adapter {
	if now == nil {
		now = time.Now
	}
	return &Adapter{now: now}
}

// AbleToTrackRemotely always returns false.
func (a *Adapter) AbleToTrackRemotely(context.Context) bool {
	return false
}

// UpdateTracking returns one package. It is delivered once the manual
// date has passed; without a date its delivery date is unknown.
func (a *Adapter) UpdateTracking(_ context.Context, delivery domain.Delivery) ([]domain.Package, error) {
	pkg := domain.Package{Activity: []domain.Activity{}}

	if delivery.ManualDeliveryDate != nil {
		date := *delivery.ManualDeliveryDate
		pkg.DeliveryDate = &date
		pkg.Delivered = !date.After(a.now())
	}

	return []domain.Package{pkg}, nil
}
