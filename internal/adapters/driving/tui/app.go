package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/views/adddelivery"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/views/credentials"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/views/deliveries"
	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/parcels/internal/core/domain"
)

// reloadInterval is how often the list is re-read so background refreshes
// and day countdowns show up without a key press.
const reloadInterval = time.Minute

// reloadTick triggers a periodic list reload.
type reloadTick struct{}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	deliveriesView  *deliveries.View
	detailView      *detail.View
	addView         *adddelivery.View
	credentialsView *credentials.View
	statusBar       *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// refreshing is true while a refresh pass started by the app runs.
	refreshing bool

	// lastReport is the outcome of the last refresh pass.
	lastReport *domain.RefreshReport

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		deliveriesView:  deliveries.NewView(s, ports.Deliveries),
		detailView:      detail.NewView(s),
		addView:         adddelivery.NewView(s, ports.Deliveries, ports.Carriers),
		credentialsView: credentials.NewView(s, ports.Credentials),
		statusBar:       status.NewBar(s, km),
		currentView:     messages.ViewDeliveries,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.deliveriesView.WithContext(ctx)
	a.addView.WithContext(ctx)
	a.credentialsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the list and runs a non-forced refresh, so stale deliveries
// are updated when the UI opens.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("parcels"),
		a.deliveriesView.Init(),
		a.startRefresh(false),
		scheduleReload(),
	)
}

func scheduleReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTick{} })
}

// startRefresh returns a command running one refresh pass, or nil if the
// app already has one in flight.
func (a *App) startRefresh(force bool) tea.Cmd {
	if a.refreshing {
		return nil
	}
	a.refreshing = true

	engine := a.ports.Refresh
	ctx := a.ctx
	run := func() tea.Msg {
		report, err := engine.Refresh(ctx, force)
		return messages.RefreshCompleted{Report: report, Err: err}
	}
	return tea.Batch(a.statusBar.StartRefreshing(), run)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case reloadTick:
		return a, tea.Batch(a.deliveriesView.Reload(), scheduleReload())

	case messages.RefreshRequested:
		return a, a.startRefresh(msg.Force)

	case messages.RefreshCompleted:
		a.refreshing = false
		a.applyRefreshResult(msg)
		return a, a.deliveriesView.Reload()

	case messages.DeliveriesLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.statusBar.SetCount(len(msg.Deliveries))
		}
		a.deliveriesView, cmd = a.deliveriesView.Update(msg)
		a.detailView, _ = a.detailView.Update(msg)
		return a, cmd

	case messages.DeliverySelected:
		a.detailView.SetDelivery(msg.Delivery)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.DeliveryAdded:
		a.addView, cmd = a.addView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		// Track the new delivery straight away.
		return a, tea.Batch(cmd, a.deliveriesView.Reload(), a.startRefresh(false))

	case messages.DeliveryRemoved:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.deliveriesView, cmd = a.deliveriesView.Update(msg)
		return a, cmd

	case messages.CredentialsSaved:
		a.credentialsView, cmd = a.credentialsView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.startRefresh(false))

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case Notified:
		a.showNotification(msg.Notification)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, internal view messages) to the active view.
	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.currentView == messages.ViewHelp {
		keyStr := msg.String()
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) {
			return a, a.switchView(messages.ViewDeliveries)
		}
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	// A key press acknowledges the last error.
	if a.statusBar.State() == status.StateError {
		a.statusBar.Clear()
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewDeliveries:
		a.deliveriesView, cmd = a.deliveriesView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewAddDelivery:
		a.addView, cmd = a.addView.Update(msg)
	case messages.ViewCredentials:
		a.credentialsView, cmd = a.credentialsView.Update(msg)
	case messages.ViewHelp:
		// Help view has no state.
	}
	return cmd
}

// switchView activates a view and runs its initialisation.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewDeliveries:
		a.statusBar.SetState(a.idleState())
		return a.deliveriesView.Reload()
	case messages.ViewAddDelivery:
		a.addView.Reset()
		return a.addView.Init()
	case messages.ViewCredentials:
		a.credentialsView.Reset()
		return a.credentialsView.Init()
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewDetail:
		// Detail is opened through DeliverySelected.
	}
	return nil
}

func (a *App) idleState() status.State {
	if a.refreshing {
		return status.StateRefreshing
	}
	return status.StateReady
}

// applyRefreshResult updates the status bar after a pass.
func (a *App) applyRefreshResult(msg messages.RefreshCompleted) {
	a.statusBar.SetState(status.StateReady)

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrRefreshInProgress) {
			a.statusBar.SetMessage("a refresh is already running")
			return
		}
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return
	}

	a.lastReport = msg.Report
	if msg.Report == nil {
		return
	}
	a.statusBar.SetFailures(len(msg.Report.Failures))
	a.statusBar.SetMessage(fmt.Sprintf("updated %d", len(msg.Report.Updated)))
}

// showNotification puts a notification in the status bar.
func (a *App) showNotification(n domain.Notification) {
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	if n.Style == domain.NotifyFailure && !a.refreshing {
		a.statusBar.SetState(status.StateError)
	}
	a.statusBar.SetMessage(text)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewAddDelivery:
		body = a.addView.View()
	case messages.ViewCredentials:
		body = a.credentialsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.deliveriesView.View()
	}

	// Pin the status bar to the bottom line.
	lines := strings.Count(body, "\n") + 1
	padding := a.height - lines - 1
	if padding < 1 {
		padding = 1
	}
	return body + strings.Repeat("\n", padding) + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("Deliveries older than 30 minutes are refreshed when you press [r].\n[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Refreshing returns whether a refresh pass is in flight.
func (a *App) Refreshing() bool {
	return a.refreshing
}

// LastReport returns the outcome of the last refresh pass.
func (a *App) LastReport() *domain.RefreshReport {
	return a.lastReport
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.deliveriesView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.addView.SetDimensions(width, height)
	a.credentialsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
