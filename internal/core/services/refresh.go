package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
	"github.com/custodia-labs/parcels/internal/logger"
)

// Ensure RefreshEngine implements the interface.
var _ driving.RefreshEngine = (*RefreshEngine)(nil)

// RefreshOption configures a RefreshEngine.
type RefreshOption func(*RefreshEngine)

// WithClock sets the clock used to timestamp passes.
func WithClock(now func() time.Time) RefreshOption {
	return func(e *RefreshEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithConcurrency sets how many deliveries are refreshed at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) RefreshOption {
	return func(e *RefreshEngine) {
		if n < 1 {
			n = 1
		}
		e.concurrency = n
	}
}

// RefreshEngine brings cached package state up to date with carriers.
type RefreshEngine struct {
	deliveries  driven.DeliveryStore
	cache       driven.PackageCache
	registry    driving.CarrierRegistry
	notifier    driven.Notifier
	concurrency int
	now         func() time.Time

	// Status tracking
	mu        sync.RWMutex
	running   bool
	startedAt time.Time
	lastRun   *domain.RefreshReport
}

// NewRefreshEngine creates a refresh engine.
// The notifier is optional; without it failures are only logged.
func NewRefreshEngine(
	deliveries driven.DeliveryStore,
	cache driven.PackageCache,
	registry driving.CarrierRegistry,
	notifier driven.Notifier,
	opts ...RefreshOption,
) *RefreshEngine {
	e := &RefreshEngine{
		deliveries:  deliveries,
		cache:       cache,
		registry:    registry,
		notifier:    notifier,
		concurrency: domain.DefaultRefreshConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type refreshOutcome int

const (
	outcomeSkipped refreshOutcome = iota
	outcomeUpdated
	outcomeFailed
)

type deliveryResult struct {
	outcome refreshOutcome
	err     error
}

// Refresh runs one pass over all deliveries in list order.
func (e *RefreshEngine) Refresh(ctx context.Context, force bool) (*domain.RefreshReport, error) {
	if !e.begin() {
		return nil, domain.ErrRefreshInProgress
	}

	report, err := e.refresh(ctx, force)
	e.finish(report)
	return report, err
}

func (e *RefreshEngine) refresh(ctx context.Context, force bool) (*domain.RefreshReport, error) {
	deliveries, err := e.deliveries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	// One timestamp for the whole pass, taken before any remote call.
	now := e.now()
	report := &domain.RefreshReport{Now: now, Forced: force}

	logger.Section("Refresh")
	logger.Info("Refreshing %d deliveries (force=%t)", len(deliveries), force)

	// Each goroutine owns one slot; results are gathered after Wait.
	results := make([]deliveryResult, len(deliveries))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range deliveries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := e.refreshDelivery(ctx, deliveries[i], now, force)
			results[i] = deliveryResult{outcome: outcome, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, d := range deliveries {
		switch results[i].outcome {
		case outcomeUpdated:
			report.Updated = append(report.Updated, d.ID)
		case outcomeFailed:
			report.Failures = append(report.Failures, domain.DeliveryFailure{
				DeliveryID:     d.ID,
				TrackingNumber: d.TrackingNumber,
				Err:            results[i].err,
			})
		default:
			report.Skipped = append(report.Skipped, d.ID)
		}
	}

	report.Pruned = e.pruneOrphans(ctx, now)

	logger.Info("Refresh complete: %d updated, %d skipped, %d failed",
		len(report.Updated), len(report.Skipped), len(report.Failures))

	return report, ctx.Err()
}

// refreshDelivery applies the skip rules and, when needed, calls the carrier.
func (e *RefreshEngine) refreshDelivery(
	ctx context.Context,
	delivery domain.Delivery,
	now time.Time,
	force bool,
) (refreshOutcome, error) {
	if delivery.Debug {
		return outcomeSkipped, nil
	}

	_, adapter, ok := e.registry.Get(delivery.Carrier)
	if !ok {
		logger.Debug("Skipping %s: unknown carrier %q", delivery.ID, delivery.Carrier)
		return outcomeSkipped, nil
	}

	if !force {
		entry, err := e.cache.Get(ctx, delivery.ID)
		if err != nil {
			logger.Warn("Reading cache for %s: %v", delivery.ID, err)
		} else if entry.IsFresh(now) {
			logger.Debug("Skipping %s: refreshed at %s", delivery.ID, entry.LastUpdated.Format(time.RFC3339))
			return outcomeSkipped, nil
		}
	}

	packages, err := adapter.UpdateTracking(ctx, delivery)
	if err != nil {
		e.notifyFailure(ctx, delivery, err)
		return outcomeFailed, err
	}
	if packages == nil {
		packages = []domain.Package{}
	}

	entry := domain.CacheEntry{Packages: packages, LastUpdated: now}
	if err := e.cache.Set(ctx, delivery.ID, entry); err != nil {
		err = fmt.Errorf("store packages: %w", err)
		e.notifyFailure(ctx, delivery, err)
		return outcomeFailed, err
	}

	logger.Debug("Updated %s: %d packages", delivery.ID, len(packages))
	return outcomeUpdated, nil
}

// pruneOrphans removes cache entries whose delivery is no longer listed.
// The list is read again so deliveries added during the pass are kept, and
// entries written at or after now belong to a concurrent writer.
func (e *RefreshEngine) pruneOrphans(ctx context.Context, now time.Time) []string {
	deliveries, err := e.deliveries.List(ctx)
	if err != nil {
		logger.Warn("Listing deliveries for pruning: %v", err)
		return nil
	}

	snapshot, err := e.cache.Snapshot(ctx)
	if err != nil {
		logger.Warn("Reading cache snapshot: %v", err)
		return nil
	}

	known := make(map[string]struct{}, len(deliveries))
	for _, d := range deliveries {
		known[d.ID] = struct{}{}
	}

	var pruned []string
	for id, entry := range snapshot {
		if _, ok := known[id]; ok {
			continue
		}
		if !entry.LastUpdated.Before(now) {
			continue
		}
		if err := e.cache.Delete(ctx, id); err != nil {
			logger.Warn("Pruning cache entry %s: %v", id, err)
			continue
		}
		pruned = append(pruned, id)
	}
	return pruned
}

func (e *RefreshEngine) notifyFailure(ctx context.Context, delivery domain.Delivery, err error) {
	logger.Warn("Updating %s failed: %v", delivery.TrackingNumber, err)
	if e.notifier == nil {
		return
	}

	n := domain.Notification{
		Style:   domain.NotifyFailure,
		Title:   "Failed to Update Tracking for " + delivery.TrackingNumber,
		Message: err.Error(),
	}
	if nerr := e.notifier.Notify(ctx, n); nerr != nil {
		logger.Warn("Notify failed: %v", nerr)
	}
}

// Status reports whether a pass is running and the last completed report.
func (e *RefreshEngine) Status() domain.RefreshStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return domain.RefreshStatus{
		Running:   e.running,
		StartedAt: e.startedAt,
		LastRun:   e.lastRun,
	}
}

func (e *RefreshEngine) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return false
	}
	e.running = true
	e.startedAt = e.now()
	return true
}

func (e *RefreshEngine) finish(report *domain.RefreshReport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running = false
	if report != nil {
		e.lastRun = report
	}
}
