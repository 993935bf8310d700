package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// DebugDeliveries returns synthetic deliveries with pre-populated packages.
// They cover each ranking case and are never refreshed remotely.
func DebugDeliveries(now time.Time) ([]domain.Delivery, map[string][]domain.Package) {
	inFourDays := now.Add(4 * domain.Day)
	longAgo := time.Date(2024, time.November, 9, 0, 0, 0, 0, time.UTC)
	today := now

	type seed struct {
		id, name, carrier, tracking string
		packages                    []domain.Package
	}

	seeds := []seed{
		{
			"e2836a4f-8bc9-463d-a703-edff8d1580d9", "undelivered package that is estimated ahead",
			domain.CarrierUPS, "1Zasdf",
			[]domain.Package{{DeliveryDate: &inFourDays}},
		},
		{
			"e04fef49-47dd-4d67-a60b-5d9cc6f78c1e", "delivery date in the past that was delivered",
			domain.CarrierFedEx, "92462346326",
			[]domain.Package{{DeliveryDate: &longAgo, Delivered: true}},
		},
		{
			"d9a04926-2a37-40c1-b2c5-db2e1924f0a8", "delivery today that is undelivered",
			domain.CarrierUSPS, "156845865089045685454467",
			[]domain.Package{{DeliveryDate: &today}},
		},
		{
			"195a6d9e-81bc-4cec-97b7-db5d5a96e8bc", "delivery that is unknown",
			domain.CarrierUSPS, "934724536784235786435786",
			[]domain.Package{{}},
		},
		{
			"13dcf84f-eee5-4827-ad08-4c0f336e87bb", "partially delivered",
			domain.CarrierUPS, "1Zdflgjadlhjfgasdfasdf",
			[]domain.Package{
				{DeliveryDate: &inFourDays},
				{DeliveryDate: &inFourDays},
				{DeliveryDate: &inFourDays, Delivered: true},
			},
		},
		{
			"cf022134-eee4-4aa1-bd74-64bf36b465fd", "partially delivered, with unknown delivery dates",
			domain.CarrierFedEx, "134578458906534",
			[]domain.Package{{}, {Delivered: true}, {}},
		},
	}

	deliveries := make([]domain.Delivery, 0, len(seeds))
	packages := make(map[string][]domain.Package, len(seeds))
	for _, s := range seeds {
		deliveries = append(deliveries, domain.Delivery{
			ID:             s.id,
			Name:           s.name,
			Carrier:        s.carrier,
			TrackingNumber: s.tracking,
			Debug:          true,
			CreatedAt:      now,
		})
		packages[s.id] = s.packages
	}
	return deliveries, packages
}

// SeedDebugData replaces the delivery list with debug deliveries and
// caches their packages.
func SeedDebugData(ctx context.Context, store driven.DeliveryStore, cache driven.PackageCache, now time.Time) error {
	deliveries, packages := DebugDeliveries(now)

	if err := store.Save(ctx, deliveries); err != nil {
		return fmt.Errorf("save debug deliveries: %w", err)
	}

	for _, d := range deliveries {
		entry := domain.CacheEntry{Packages: packages[d.ID], LastUpdated: now}
		if err := cache.Set(ctx, d.ID, entry); err != nil {
			return fmt.Errorf("cache debug packages for %s: %w", d.ID, err)
		}
	}
	return nil
}
