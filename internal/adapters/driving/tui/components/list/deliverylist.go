// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/core/domain"
)

// DeliveryList displays ranked deliveries in a navigable list.
type DeliveryList struct {
	deliveries []domain.DeliveryView
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewDeliveryList creates a new delivery list component.
func NewDeliveryList(s *styles.Styles) *DeliveryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DeliveryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *DeliveryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *DeliveryList) Update(msg tea.Msg) (*DeliveryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *DeliveryList) View() string {
	if len(l.deliveries) == 0 {
		return l.styles.Muted.Render("No deliveries")
	}

	// Each delivery takes two lines.
	visibleCount := l.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.deliveries) {
		end = len(l.deliveries)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderDelivery(i, &l.deliveries[i]))
	}
	return strings.Join(lines, "\n")
}

// renderDelivery formats a delivery as a title line and a status line.
func (l *DeliveryList) renderDelivery(index int, v *domain.DeliveryView) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := v.Delivery.Name
	maxNameLen := l.width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	icon := styles.Icon(v.Summary.Icon)
	carrierName := v.Carrier.Name
	if carrierName == "" {
		carrierName = v.Delivery.Carrier
	}

	var title string
	if index == l.selected {
		title = l.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, icon, name))
	} else {
		title = l.styles.Normal.Render(fmt.Sprintf("%s%s %s", indicator, icon, name))
	}
	title = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", l.styles.Carrier(v.Carrier.Color).Render(carrierName))

	status := "    " + l.styles.Tone(v.Summary.Tone).Render(v.Summary.Accessory) +
		l.styles.Muted.Render("  "+v.Delivery.TrackingNumber)

	return title + "\n" + status
}

// SetDeliveries replaces the list, keeping the selection on the same
// delivery when it is still present.
func (l *DeliveryList) SetDeliveries(deliveries []domain.DeliveryView) {
	var selectedID string
	if current := l.SelectedDelivery(); current != nil {
		selectedID = current.Delivery.ID
	}

	l.deliveries = deliveries
	l.selected = 0
	for i := range deliveries {
		if deliveries[i].Delivery.ID == selectedID {
			l.selected = i
			break
		}
	}
}

// Deliveries returns the current deliveries.
func (l *DeliveryList) Deliveries() []domain.DeliveryView {
	return l.deliveries
}

// Selected returns the index of the selected delivery.
func (l *DeliveryList) Selected() int {
	return l.selected
}

// SelectedDelivery returns the currently selected delivery, or nil if none.
func (l *DeliveryList) SelectedDelivery() *domain.DeliveryView {
	if len(l.deliveries) == 0 || l.selected < 0 || l.selected >= len(l.deliveries) {
		return nil
	}
	return &l.deliveries[l.selected]
}

// MoveUp moves selection up.
func (l *DeliveryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *DeliveryList) MoveDown() {
	if l.selected < len(l.deliveries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *DeliveryList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of deliveries.
func (l *DeliveryList) Count() int {
	return len(l.deliveries)
}
