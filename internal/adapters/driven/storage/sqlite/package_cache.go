package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// packageCache implements driven.PackageCache.
// Packages are stored as a JSON array per delivery.
type packageCache struct {
	store *Store
}

var _ driven.PackageCache = (*packageCache)(nil)

// Get returns the entry for a delivery, or nil if it was never refreshed.
func (c *packageCache) Get(ctx context.Context, deliveryID string) (*domain.CacheEntry, error) {
	row := c.store.db.QueryRowContext(ctx,
		"SELECT packages, last_updated FROM package_cache WHERE delivery_id = ?", deliveryID)

	var packagesJSON, lastUpdated string
	if err := row.Scan(&packagesJSON, &lastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying package cache: %w", err)
	}

	entry, err := decodeCacheEntry(packagesJSON, lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("decoding packages for %s: %w", deliveryID, err)
	}
	return entry, nil
}

// Set replaces the entry for a delivery.
func (c *packageCache) Set(ctx context.Context, deliveryID string, entry domain.CacheEntry) error {
	packages := entry.Packages
	if packages == nil {
		packages = []domain.Package{}
	}
	packagesJSON, err := json.Marshal(packages)
	if err != nil {
		return fmt.Errorf("marshalling packages: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO package_cache (delivery_id, packages, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(delivery_id) DO UPDATE SET
			packages = excluded.packages,
			last_updated = excluded.last_updated
	`, deliveryID, string(packagesJSON), formatTime(entry.LastUpdated))
	if err != nil {
		return fmt.Errorf("saving package cache: %w", err)
	}
	return nil
}

// Delete removes the entry for a delivery. Missing entries are ignored.
func (c *packageCache) Delete(ctx context.Context, deliveryID string) error {
	if _, err := c.store.db.ExecContext(ctx,
		"DELETE FROM package_cache WHERE delivery_id = ?", deliveryID); err != nil {
		return fmt.Errorf("deleting package cache: %w", err)
	}
	return nil
}

// Snapshot returns all entries keyed by delivery ID.
func (c *packageCache) Snapshot(ctx context.Context) (map[string]domain.CacheEntry, error) {
	rows, err := c.store.db.QueryContext(ctx,
		"SELECT delivery_id, packages, last_updated FROM package_cache")
	if err != nil {
		return nil, fmt.Errorf("querying package cache: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]domain.CacheEntry)
	for rows.Next() {
		var id, packagesJSON, lastUpdated string
		if err := rows.Scan(&id, &packagesJSON, &lastUpdated); err != nil {
			return nil, fmt.Errorf("scanning package cache: %w", err)
		}
		entry, err := decodeCacheEntry(packagesJSON, lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("decoding packages for %s: %w", id, err)
		}
		snapshot[id] = *entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package cache: %w", err)
	}
	return snapshot, nil
}

func decodeCacheEntry(packagesJSON, lastUpdated string) (*domain.CacheEntry, error) {
	var packages []domain.Package
	if err := json.Unmarshal([]byte(packagesJSON), &packages); err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []domain.Package{}
	}
	return &domain.CacheEntry{
		Packages:    packages,
		LastUpdated: parseTime(lastUpdated),
	}, nil
}
