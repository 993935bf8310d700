package domain

import (
	"math"
	"time"
)

// Day is the length of one day used for delivery countdowns.
const Day = 24 * time.Hour

// Package is one physical parcel within a delivery.
// Packages are never individually identified; a refresh replaces all of them.
type Package struct {
	// Delivered indicates whether the carrier reports the package as delivered.
	Delivered bool `json:"delivered"`

	// DeliveryDate is the actual or expected delivery time. Nil means unknown.
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`

	// Activity is the ordered tracking history. Currently always empty.
	Activity []Activity `json:"activity"`
}

// Activity is a single tracking event.
type Activity struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
}

// AllDelivered returns true if packages is non-empty and every package is delivered.
func AllDelivered(packages []Package) bool {
	if len(packages) == 0 {
		return false
	}
	for i := range packages {
		if !packages[i].Delivered {
			return false
		}
	}
	return true
}

// SomeDelivered returns true if at least one package is delivered.
func SomeDelivered(packages []Package) bool {
	for i := range packages {
		if packages[i].Delivered {
			return true
		}
	}
	return false
}

// EarliestRelevant returns the package whose delivery date is closest in
// absolute time to now. Packages with unknown dates are ignored. The second
// return value is false if no package has a known date.
func EarliestRelevant(packages []Package, now time.Time) (Package, bool) {
	var (
		closest  Package
		distance time.Duration
		found    bool
	)
	for _, p := range packages {
		if p.DeliveryDate == nil {
			continue
		}
		d := absDuration(p.DeliveryDate.Sub(now))
		if !found || d < distance {
			closest, distance, found = p, d, true
		}
	}
	return closest, found
}

// DayDifference returns the whole number of days from now until date,
// rounded up. Dates in the past return 0.
func DayDifference(date, now time.Time) int {
	days := int(math.Ceil(float64(date.Sub(now)) / float64(Day)))
	if days < 0 {
		return 0
	}
	return days
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// ClonePackages returns a deep copy of packages.
func ClonePackages(packages []Package) []Package {
	if packages == nil {
		return nil
	}
	out := make([]Package, len(packages))
	for i, p := range packages {
		out[i] = Package{Delivered: p.Delivered}
		if p.DeliveryDate != nil {
			d := *p.DeliveryDate
			out[i].DeliveryDate = &d
		}
		if p.Activity != nil {
			out[i].Activity = append([]Activity(nil), p.Activity...)
		}
	}
	return out
}
