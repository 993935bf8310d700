package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// --- Mock implementations shared by service tests ---

// mockCarrierAdapter implements driven.CarrierAdapter.
type mockCarrierAdapter struct {
	mu       sync.Mutex
	remote   bool
	packages map[string][]domain.Package
	errs     map[string]error
	calls    []string
	// onUpdate runs before each tracking call, outside the lock.
	onUpdate func(domain.Delivery)
}

func newMockCarrierAdapter() *mockCarrierAdapter {
	return &mockCarrierAdapter{
		packages: make(map[string][]domain.Package),
		errs:     make(map[string]error),
	}
}

func (m *mockCarrierAdapter) AbleToTrackRemotely(_ context.Context) bool {
	return m.remote
}

func (m *mockCarrierAdapter) UpdateTracking(_ context.Context, d domain.Delivery) ([]domain.Package, error) {
	if m.onUpdate != nil {
		m.onUpdate(d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, d.ID)
	if err := m.errs[d.ID]; err != nil {
		return nil, err
	}
	return m.packages[d.ID], nil
}

func (m *mockCarrierAdapter) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// mockNotifier implements driven.Notifier.
type mockNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (m *mockNotifier) Notify(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return m.err
}

func (m *mockNotifier) notifications() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.sent...)
}

// failingCache wraps a cache and fails selected operations.
type failingCache struct {
	driven.PackageCache
	getErr      error
	setErr      error
	snapshotErr error
}

func (f *failingCache) Get(ctx context.Context, id string) (*domain.CacheEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.PackageCache.Get(ctx, id)
}

func (f *failingCache) Set(ctx context.Context, id string, e domain.CacheEntry) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.PackageCache.Set(ctx, id, e)
}

func (f *failingCache) Snapshot(ctx context.Context) (map[string]domain.CacheEntry, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.PackageCache.Snapshot(ctx)
}

// Ensure mocks implement interfaces
var (
	_ driven.CarrierAdapter = (*mockCarrierAdapter)(nil)
	_ driven.Notifier       = (*mockNotifier)(nil)
	_ driven.PackageCache   = (*failingCache)(nil)
)
