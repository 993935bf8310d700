package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// recordingNotifier collects notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return nil
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n.Title)
	}
	return out
}

func TestDispatcher_ForwardsToTarget(t *testing.T) {
	target := &recordingNotifier{}
	d := NewDispatcher(target)

	require.NoError(t, d.Notify(context.Background(), domain.Notification{Title: "one"}))

	assert.Equal(t, []string{"one"}, target.titles())
}

func TestDispatcher_NilTargetDrops(t *testing.T) {
	d := NewDispatcher(nil)

	assert.NoError(t, d.Notify(context.Background(), domain.Notification{Title: "dropped"}))
}

func TestDispatcher_Redirect(t *testing.T) {
	terminal := &recordingNotifier{}
	ui := &recordingNotifier{}
	d := NewDispatcher(terminal)
	ctx := context.Background()

	restore := d.Redirect(ui)
	require.NoError(t, d.Notify(ctx, domain.Notification{Title: "in ui"}))

	restore()
	require.NoError(t, d.Notify(ctx, domain.Notification{Title: "after"}))

	assert.Equal(t, []string{"in ui"}, ui.titles())
	assert.Equal(t, []string{"after"}, terminal.titles())
}

func TestDispatcher_ConcurrentNotify(t *testing.T) {
	target := &recordingNotifier{}
	d := NewDispatcher(target)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Notify(context.Background(), domain.Notification{Title: "n"})
		}()
	}
	wg.Wait()

	assert.Len(t, target.titles(), 20)
}
