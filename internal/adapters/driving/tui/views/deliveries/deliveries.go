// Package deliveries provides the ranked delivery list view for the TUI.
package deliveries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// errServiceUnavailable is reported when the view has no delivery service.
var errServiceUnavailable = errors.New("delivery service not available")

// View is the delivery list view.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	deliveryService driving.DeliveryService

	list *list.DeliveryList

	// pendingDelete is the delivery awaiting confirmation.
	pendingDelete *domain.DeliveryView

	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new deliveries view.
func NewView(s *styles.Styles, deliveryService driving.DeliveryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		deliveryService: deliveryService,
		list:            list.NewDeliveryList(s),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the deliveries.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.Reload()
}

// Reload returns a command that loads the ranked deliveries.
func (v *View) Reload() tea.Cmd {
	return func() tea.Msg {
		if v.deliveryService == nil {
			return messages.DeliveriesLoaded{Err: errServiceUnavailable}
		}
		views, err := v.deliveryService.List(v.ctx)
		return messages.DeliveriesLoaded{Deliveries: views, Err: err}
	}
}

// Update handles messages for the deliveries view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DeliveriesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetDeliveries(msg.Deliveries)
		return v, nil

	case messages.DeliveryRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.Reload()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.pendingDelete != nil {
		target := *v.pendingDelete
		v.pendingDelete = nil
		if keymap.Matches(keyStr, v.keymap.Confirm) {
			return v, v.removeDelivery(target.Delivery.ID)
		}
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		v.list, _ = v.list.Update(msg)
	case keymap.Matches(keyStr, v.keymap.Select):
		if selected := v.list.SelectedDelivery(); selected != nil {
			delivery := *selected
			return v, func() tea.Msg {
				return messages.DeliverySelected{Delivery: delivery}
			}
		}
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, func() tea.Msg { return messages.RefreshRequested{Force: false} }
	case keymap.Matches(keyStr, v.keymap.ForceRefresh):
		return v, func() tea.Msg { return messages.RefreshRequested{Force: true} }
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, changeView(messages.ViewAddDelivery)
	case keymap.Matches(keyStr, v.keymap.Credentials):
		return v, changeView(messages.ViewCredentials)
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(keyStr, v.keymap.Delete):
		if selected := v.list.SelectedDelivery(); selected != nil {
			target := *selected
			v.pendingDelete = &target
		}
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// removeDelivery returns a command that removes a delivery the user
// has already confirmed.
func (v *View) removeDelivery(id string) tea.Cmd {
	return func() tea.Msg {
		if v.deliveryService == nil {
			return messages.DeliveryRemoved{ID: id, Err: errServiceUnavailable}
		}
		confirmed := func(context.Context, domain.Delivery) bool { return true }
		_, err := v.deliveryService.Remove(v.ctx, id, confirmed)
		return messages.DeliveryRemoved{ID: id, Err: err}
	}
}

// View renders the deliveries view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Deliveries"))
	b.WriteString("\n\n")

	if v.loading && v.list.Count() == 0 {
		b.WriteString(v.styles.Muted.Render("Loading deliveries..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.list.Count() == 0 {
		b.WriteString(v.styles.Muted.Render("No deliveries. Press [a] to add one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	if v.pendingDelete != nil {
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Delete %q? [y] yes  [any other key] cancel", v.pendingDelete.Delivery.Name)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[enter] details  [r] refresh  [R] force  [a] add  [d] delete  [c] credentials  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Title, help and status bar.
	v.list.SetDimensions(width, height-6)
}

// Deliveries returns the current deliveries.
func (v *View) Deliveries() []domain.DeliveryView {
	return v.list.Deliveries()
}

// SelectedIndex returns the currently selected delivery index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// PendingDelete returns the delivery awaiting delete confirmation, if any.
func (v *View) PendingDelete() *domain.DeliveryView {
	return v.pendingDelete
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
