package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Ensure PackageCache implements the interface.
var _ driven.PackageCache = (*PackageCache)(nil)

// PackageCache is an in-memory implementation of driven.PackageCache.
// Entries are copied on the way in and out, so callers never share state.
type PackageCache struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewPackageCache creates a new in-memory package cache.
func NewPackageCache() *PackageCache {
	return &PackageCache{
		entries: make(map[string]domain.CacheEntry),
	}
}

// Get returns the entry for a delivery, or nil if never refreshed.
func (c *PackageCache) Get(_ context.Context, deliveryID string) (*domain.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[deliveryID]
	if !ok {
		return nil, nil
	}
	clone := entry.Clone()
	return &clone, nil
}

// Set replaces the entry for a delivery.
func (c *PackageCache) Set(_ context.Context, deliveryID string, entry domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[deliveryID] = entry.Clone()
	return nil
}

// Delete removes the entry for a delivery.
func (c *PackageCache) Delete(_ context.Context, deliveryID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, deliveryID)
	return nil
}

// Snapshot returns a copy of all entries.
func (c *PackageCache) Snapshot(_ context.Context) (map[string]domain.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]domain.CacheEntry, len(c.entries))
	for id, entry := range c.entries {
		result[id] = entry.Clone()
	}
	return result, nil
}
