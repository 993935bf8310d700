// Package detail provides the single delivery view for the TUI.
package detail

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/core/domain"
)

// View shows a delivery and each of its packages.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	delivery *domain.DeliveryView
	width    int
	height   int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
	}
}

// SetDelivery sets the delivery to display.
func (v *View) SetDelivery(d domain.DeliveryView) {
	v.delivery = &d
}

// Delivery returns the displayed delivery, or nil.
func (v *View) Delivery() *domain.DeliveryView {
	return v.delivery
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDeliveries} }
		case keymap.Matches(keyStr, v.keymap.Refresh):
			return v, func() tea.Msg { return messages.RefreshRequested{Force: false} }
		case keymap.Matches(keyStr, v.keymap.ForceRefresh):
			return v, func() tea.Msg { return messages.RefreshRequested{Force: true} }
		}

	case messages.DeliveriesLoaded:
		// Follow the displayed delivery through refreshes.
		if v.delivery == nil || msg.Err != nil {
			return v, nil
		}
		for _, d := range msg.Deliveries {
			if d.Delivery.ID == v.delivery.Delivery.ID {
				v.SetDelivery(d)
				break
			}
		}
	}
	return v, nil
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.delivery == nil {
		b.WriteString(v.styles.Muted.Render("No delivery selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	d := v.delivery
	b.WriteString(v.styles.Title.Render(d.Delivery.Name))
	b.WriteString("\n\n")

	carrierName := d.Carrier.Name
	if carrierName == "" {
		carrierName = d.Delivery.Carrier
	}

	v.writeField(&b, "Carrier", v.styles.Carrier(d.Carrier.Color).Render(carrierName))
	v.writeField(&b, "Tracking", d.Delivery.TrackingNumber)
	v.writeField(&b, "Status",
		styles.Icon(d.Summary.Icon)+" "+v.styles.Tone(d.Summary.Tone).Render(d.Summary.Accessory))
	if d.LastUpdated.IsZero() {
		v.writeField(&b, "Updated", "never")
	} else {
		v.writeField(&b, "Updated", d.LastUpdated.Local().Format(time.DateTime))
	}
	if d.Delivery.ManualDeliveryDate != nil {
		v.writeField(&b, "Expected", d.Delivery.ManualDeliveryDate.Local().Format(time.DateOnly))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Packages (%d)", len(d.Packages))))
	b.WriteString("\n")
	if len(d.Packages) == 0 {
		b.WriteString(v.styles.Muted.Render("  No tracking data yet."))
		b.WriteString("\n")
	}
	for i, p := range d.Packages {
		b.WriteString(v.renderPackage(i, p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) writeField(b *strings.Builder, label, value string) {
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-10s", label)))
	b.WriteString(value)
	b.WriteString("\n")
}

func (v *View) renderPackage(index int, p domain.Package) string {
	state := v.styles.Normal.Render("in transit")
	if p.Delivered {
		state = v.styles.Success.Render("delivered")
	}
	date := v.styles.Muted.Render("date unknown")
	if p.DeliveryDate != nil {
		date = p.DeliveryDate.Local().Format(time.DateOnly)
	}
	return fmt.Sprintf("  %d. %s  %s", index+1, state, date)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[r] refresh  [R] force  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
