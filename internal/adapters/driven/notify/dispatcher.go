package notify

import (
	"context"
	"sync"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

var _ driven.Notifier = (*Dispatcher)(nil)

// Dispatcher forwards notifications to a target that can be swapped at
// runtime, so a full-screen UI can take over from the terminal notifier.
type Dispatcher struct {
	mu     sync.RWMutex
	target driven.Notifier
}

// NewDispatcher creates a dispatcher forwarding to target.
// A nil target drops notifications.
func NewDispatcher(target driven.Notifier) *Dispatcher {
	return &Dispatcher{target: target}
}

// Notify forwards n to the current target.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) error {
	d.mu.RLock()
	target := d.target
	d.mu.RUnlock()

	if target == nil {
		return nil
	}
	return target.Notify(ctx, n)
}

// Redirect sends notifications to target until the returned restore
// function is called.
func (d *Dispatcher) Redirect(target driven.Notifier) (restore func()) {
	d.mu.Lock()
	previous := d.target
	d.target = target
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		d.target = previous
		d.mu.Unlock()
	}
}
