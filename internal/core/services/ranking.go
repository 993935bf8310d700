package services

import (
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// RankDeliveries orders delivery views for display, most relevant first.
// The sort is stable, so views that compare equal keep their input order.
func RankDeliveries(views []domain.DeliveryView, now time.Time) {
	slices.SortStableFunc(views, func(a, b domain.DeliveryView) int {
		return compareDeliveries(a.Packages, b.Packages, now)
	})
}

// compareDeliveries returns a negative number when a should be listed before b.
// Rules apply in order and the first one that separates a and b wins:
//  1. deliveries with packages before those without
//  2. fully delivered before not fully delivered
//  3. a known delivery date before an unknown one
//  4. with no dates, partially delivered before nothing delivered
//  5. with dates, fewer days away first, then partially delivered first
func compareDeliveries(a, b []domain.Package, now time.Time) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	aAll, bAll := domain.AllDelivered(a), domain.AllDelivered(b)
	if aAll != bAll {
		if aAll {
			return -1
		}
		return 1
	}

	aPkg, aKnown := domain.EarliestRelevant(a, now)
	bPkg, bKnown := domain.EarliestRelevant(b, now)
	if aKnown != bKnown {
		if aKnown {
			return -1
		}
		return 1
	}

	if aKnown {
		aDays := domain.DayDifference(*aPkg.DeliveryDate, now)
		bDays := domain.DayDifference(*bPkg.DeliveryDate, now)
		if aDays != bDays {
			return aDays - bDays
		}
	}

	return compareSomeDelivered(a, b)
}

func compareSomeDelivered(a, b []domain.Package) int {
	aSome, bSome := domain.SomeDelivered(a), domain.SomeDelivered(b)
	switch {
	case aSome == bSome:
		return 0
	case aSome:
		return -1
	default:
		return 1
	}
}

// Summarize computes the icon and accessory label for a delivery's packages.
func Summarize(packages []domain.Package, now time.Time) domain.DeliverySummary {
	if len(packages) == 0 {
		return domain.DeliverySummary{
			Icon:      domain.IconUnknown,
			Accessory: "No packages",
			Tone:      domain.ToneWarning,
		}
	}

	if domain.AllDelivered(packages) {
		return domain.DeliverySummary{
			Icon:      domain.IconComplete,
			Accessory: "Delivered",
			Tone:      domain.ToneSuccess,
		}
	}

	summary := domain.DeliverySummary{
		Icon:      domain.IconInProgress,
		Accessory: "En route",
		Tone:      domain.ToneDefault,
	}

	if pkg, ok := domain.EarliestRelevant(packages, now); ok {
		summary.Accessory = fmt.Sprintf("%d days until delivery", domain.DayDifference(*pkg.DeliveryDate, now))
	}

	if domain.SomeDelivered(packages) {
		summary.Icon = domain.IconPartial
		summary.Accessory += "; some packages delivered"
		summary.Tone = domain.ToneInfo
	}

	return summary
}
