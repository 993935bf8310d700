// Package credentials provides the carrier credentials form for the TUI.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// credentialsLoadedMsg reports whether the carrier already has credentials.
type credentialsLoadedMsg struct {
	configured bool
	err        error
}

// View is the FedEx credentials form.
type View struct {
	ctx                context.Context
	styles             *styles.Styles
	keymap             *keymap.KeyMap
	credentialsService driving.CredentialsService
	carrierID          string

	apiKey    *input.Field
	secretKey *input.Field
	focused   int

	configured bool
	saved      bool
	err        error
	width      int
	height     int
}

// NewView creates a new credentials view.
func NewView(s *styles.Styles, credentialsService driving.CredentialsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		ctx:                context.Background(),
		styles:             s,
		keymap:             keymap.DefaultKeyMap(),
		credentialsService: credentialsService,
		carrierID:          domain.CarrierFedEx,
		apiKey:             input.NewSecretField(s, "API key", "Enter API key"),
		secretKey:          input.NewSecretField(s, "Secret key", "Enter secret key"),
	}
	v.apiKey.Focus()
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current credential status.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.apiKey.Init(), v.loadStatus())
}

func (v *View) loadStatus() tea.Cmd {
	return func() tea.Msg {
		if v.credentialsService == nil {
			return credentialsLoadedMsg{err: errors.New("credentials service not available")}
		}
		creds, err := v.credentialsService.Credentials(v.ctx, v.carrierID)
		return credentialsLoadedMsg{configured: creds.IsConfigured(), err: err}
	}
}

// Reset clears the form.
func (v *View) Reset() {
	v.apiKey.Reset()
	v.secretKey.Reset()
	v.secretKey.Blur()
	v.apiKey.Focus()
	v.focused = 0
	v.saved = false
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

	case credentialsLoadedMsg:
		v.configured = msg.configured
		v.err = msg.err
		return v, nil

	case messages.CredentialsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.Reset()
		v.configured = true
		v.saved = true
		return v, nil
	}

	return v.updateFocused(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDeliveries} }
	case keymap.Matches(keyStr, v.keymap.NextField), keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.toggleFocus()
	case keyStr == "enter":
		if v.focused == 0 {
			return v, v.toggleFocus()
		}
		return v, v.save()
	}

	return v.updateFocused(msg)
}

func (v *View) updateFocused(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.focused == 0 {
		v.apiKey, cmd = v.apiKey.Update(msg)
	} else {
		v.secretKey, cmd = v.secretKey.Update(msg)
	}
	return v, cmd
}

func (v *View) toggleFocus() tea.Cmd {
	if v.focused == 0 {
		v.focused = 1
		v.apiKey.Blur()
		return v.secretKey.Focus()
	}
	v.focused = 0
	v.secretKey.Blur()
	return v.apiKey.Focus()
}

// save returns a command that stores the entered credentials.
func (v *View) save() tea.Cmd {
	creds := domain.CarrierCredentials{
		APIKey:    strings.TrimSpace(v.apiKey.Value()),
		SecretKey: strings.TrimSpace(v.secretKey.Value()),
	}
	if !creds.IsConfigured() {
		v.err = fmt.Errorf("%w: both keys are required", domain.ErrInvalidInput)
		return nil
	}

	carrierID := v.carrierID
	return func() tea.Msg {
		if v.credentialsService == nil {
			return messages.CredentialsSaved{CarrierID: carrierID, Err: errors.New("credentials service not available")}
		}
		err := v.credentialsService.SetCredentials(v.ctx, carrierID, creds)
		return messages.CredentialsSaved{CarrierID: carrierID, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("FedEx Credentials"))
	b.WriteString("\n\n")

	if v.configured {
		b.WriteString(v.styles.Success.Render("Credentials are configured. Saving replaces them."))
	} else {
		b.WriteString(v.styles.Warning.Render("FedEx deliveries are not tracked until credentials are set."))
	}
	b.WriteString("\n\n")

	b.WriteString(v.apiKey.View())
	b.WriteString("\n")
	b.WriteString(v.secretKey.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.saved:
		b.WriteString(v.styles.Success.Render("Saved."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] next / save  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.apiKey.SetWidth(width)
	v.secretKey.SetWidth(width)
}

// Configured reports whether credentials were found.
func (v *View) Configured() bool {
	return v.configured
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
