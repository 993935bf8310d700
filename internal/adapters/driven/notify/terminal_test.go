package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

func TestTerminal_Notify(t *testing.T) {
	tests := []struct {
		name     string
		n        domain.Notification
		contains []string
	}{
		{
			name:     "success",
			n:        domain.Notification{Style: domain.NotifySuccess, Title: "Delivery added"},
			contains: []string{"✓", "Delivery added"},
		},
		{
			name: "failure with message",
			n: domain.Notification{
				Style:   domain.NotifyFailure,
				Title:   "Refresh failed",
				Message: "FedEx login rejected",
			},
			contains: []string{"✗", "Refresh failed", "FedEx login rejected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			term := NewTerminal(&buf)

			require.NoError(t, term.Notify(context.Background(), tt.n))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestTerminal_Notify_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := term.Notify(ctx, domain.Notification{Title: "ignored"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestNewTerminal_NilWriter(t *testing.T) {
	term := NewTerminal(nil)
	assert.NotNil(t, term.out)
}
