// Package notify renders user notifications on a terminal.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Notifier = (*Terminal)(nil)

// Terminal writes styled notifications to a writer.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	body    lipgloss.Style
}

// NewTerminal creates a notifier writing to out. A nil writer means stderr.
func NewTerminal(out io.Writer) *Terminal {
	if out == nil {
		out = os.Stderr
	}
	return &Terminal{
		out:     out,
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	}
}

// Notify prints the notification title, followed by its message when set.
func (t *Terminal) Notify(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	marker, style := "✓", t.success
	if n.Style == domain.NotifyFailure {
		marker, style = "✗", t.failure
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	line := style.Render(marker + " " + n.Title)
	if n.Message != "" {
		line += " " + t.body.Render(n.Message)
	}
	if _, err := fmt.Fprintln(t.out, line); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
