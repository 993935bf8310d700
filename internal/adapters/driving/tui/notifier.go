package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// Notified carries a notification into the running program.
type Notified struct {
	Notification domain.Notification
}

// sender is the part of tea.Program the notifier uses.
type sender interface {
	Send(msg tea.Msg)
}

var _ driven.Notifier = (*ProgramNotifier)(nil)

// ProgramNotifier delivers notifications to a running Bubbletea program,
// where they are shown in the status bar.
type ProgramNotifier struct {
	program sender
}

// NewProgramNotifier creates a notifier for p.
func NewProgramNotifier(p *tea.Program) *ProgramNotifier {
	return &ProgramNotifier{program: p}
}

// Notify sends n to the program.
func (n *ProgramNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.program.Send(Notified{Notification: notification})
	return nil
}
