// Package adddelivery provides the add delivery form for the TUI.
package adddelivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Form field indexes.
const (
	fieldName = iota
	fieldCarrier
	fieldTracking
	fieldDate
	fieldCount
)

// View is the add delivery form.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	deliveryService driving.DeliveryService
	carriers        driving.CarrierRegistry

	fields  []*input.Field
	focused int

	submitting bool
	err        error
	width      int
	height     int
}

// NewView creates a new add delivery view.
func NewView(
	s *styles.Styles,
	deliveryService driving.DeliveryService,
	carriers driving.CarrierRegistry,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fields := make([]*input.Field, fieldCount)
	fields[fieldName] = input.NewField(s, "Name", "Birthday present")
	fields[fieldCarrier] = input.NewField(s, "Carrier", "fedex")
	fields[fieldTracking] = input.NewField(s, "Tracking number", "")
	fields[fieldDate] = input.NewField(s, "Delivery date", "YYYY-MM-DD (USPS and UPS)")

	v := &View{
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		deliveryService: deliveryService,
		carriers:        carriers,
		fields:          fields,
	}
	v.fields[fieldName].Focus()
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focused].Init()
}

// Reset clears the form.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.focused = fieldName
	v.fields[fieldName].Focus()
	v.submitting = false
	v.err = nil
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DeliveryAdded:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDeliveries} }
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDeliveries} }
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.focus((v.focused + 1) % fieldCount)
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	case keyStr == "enter":
		if v.focused < fieldCount-1 {
			return v, v.focus(v.focused + 1)
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) focus(index int) tea.Cmd {
	v.fields[v.focused].Blur()
	v.focused = index
	return v.fields[index].Focus()
}

// submit validates the form and returns a command that adds the delivery.
func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}

	req := driving.AddDeliveryRequest{
		Name:           v.fields[fieldName].Value(),
		Carrier:        v.fields[fieldCarrier].Value(),
		TrackingNumber: v.fields[fieldTracking].Value(),
	}

	if raw := strings.TrimSpace(v.fields[fieldDate].Value()); raw != "" {
		date, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			v.err = fmt.Errorf("%w: delivery date must be YYYY-MM-DD", domain.ErrInvalidInput)
			return nil
		}
		req.ManualDeliveryDate = &date
	}

	v.submitting = true
	v.err = nil
	return func() tea.Msg {
		if v.deliveryService == nil {
			return messages.DeliveryAdded{Err: errors.New("delivery service not available")}
		}
		delivery, err := v.deliveryService.Add(v.ctx, req)
		return messages.DeliveryAdded{Delivery: delivery, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Delivery"))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	if v.carriers != nil {
		ids := make([]string, 0)
		for _, c := range v.carriers.List() {
			ids = append(ids, c.ID)
		}
		b.WriteString(v.styles.Muted.Render("Carriers: " + strings.Join(ids, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.submitting:
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] next / save  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
