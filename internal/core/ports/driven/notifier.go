package driven

import (
	"context"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// Notifier shows one-way messages to the user.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
