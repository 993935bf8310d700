package domain

import "time"

// StalenessWindow is how long a cache entry is considered fresh.
// Non-forced refreshes skip deliveries refreshed within this window.
const StalenessWindow = 30 * time.Minute

// CacheEntry holds the packages from the most recent successful refresh of a delivery.
type CacheEntry struct {
	// Packages is the full, current set of packages for the delivery.
	Packages []Package `json:"packages"`

	// LastUpdated is when the delivery was last refreshed successfully.
	LastUpdated time.Time `json:"last_updated"`
}

// IsFresh returns true if the entry was refreshed within the staleness window of now.
func (e *CacheEntry) IsFresh(now time.Time) bool {
	if e == nil || e.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(e.LastUpdated) <= StalenessWindow
}

// Clone returns a deep copy of the entry.
func (e *CacheEntry) Clone() CacheEntry {
	return CacheEntry{
		Packages:    ClonePackages(e.Packages),
		LastUpdated: e.LastUpdated,
	}
}
