package domain

import "time"

// RefreshReport describes the outcome of one refresh pass.
type RefreshReport struct {
	// Now is the timestamp used for every delivery in the pass.
	Now time.Time
	// Forced indicates the staleness window was ignored.
	Forced bool
	// Updated lists deliveries whose cache entry was replaced.
	Updated []string
	// Skipped lists deliveries left untouched (debug, unknown carrier or fresh).
	Skipped []string
	// Failures lists deliveries whose update failed.
	Failures []DeliveryFailure
	// Pruned lists cache entries removed because their delivery no longer exists.
	Pruned []string
}

// DeliveryFailure records a failed update for one delivery.
type DeliveryFailure struct {
	DeliveryID     string
	TrackingNumber string
	Err            error
}

// Attempted returns how many deliveries called their carrier.
func (r *RefreshReport) Attempted() int {
	return len(r.Updated) + len(r.Failures)
}

// RefreshStatus reports whether a refresh pass is running.
type RefreshStatus struct {
	Running   bool
	StartedAt time.Time
	LastRun   *RefreshReport
}
