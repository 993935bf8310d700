package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui"
	"github.com/custodia-labs/parcels/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Stale deliveries are refreshed when the UI opens and every refresh interval
while it stays open.

Controls:
  ↑/k, ↓/j - Navigate deliveries
  Enter    - Show details
  r / R    - Refresh / force refresh
  a        - Add a delivery
  d        - Delete a delivery
  c        - Carrier credentials
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if deliveryService == nil || refreshEngine == nil {
		return errors.New("delivery services not configured")
	}

	ports := &tui.Ports{
		Deliveries:  deliveryService,
		Refresh:     refreshEngine,
		Carriers:    carrierRegistry,
		Credentials: credentialsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	// Anything written to stderr would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	log.SetOutput(io.Discard)
	if notifications != nil {
		restore := notifications.Redirect(tui.NewProgramNotifier(p))
		defer restore()
	}

	background := make(chan error, 1)
	go func() {
		background <- runBackground(ctx)
	}()

	_, runErr := p.Run()
	cancel()
	logger.SetOutput(os.Stderr)
	log.SetOutput(os.Stderr)
	if err := <-background; err != nil {
		logger.Warn("background refresh: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}
