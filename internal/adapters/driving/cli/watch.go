package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/parcels/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh tracking data in the background",
	Long: `Runs the scheduler in the foreground, refreshing deliveries every
refresh interval (30 minutes by default) until interrupted.

Changes to ~/.parcels/config.toml, such as new credentials, are picked up
without a restart.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching deliveries. Press Ctrl+C to stop.")

	if err := runBackground(ctx); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	cmd.Println("Stopped.")
	return nil
}

// runBackground runs the scheduler and the config watcher until ctx is done.
func runBackground(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if scheduler != nil {
		g.Go(func() error {
			err := scheduler.Start(ctx)
			if stopErr := scheduler.Stop(); stopErr != nil {
				logger.Warn("scheduler stop: %v", stopErr)
			}
			return err
		})
	}

	if configWatcher != nil {
		g.Go(func() error {
			err := configWatcher.Watch(ctx, func() {
				logger.Info("configuration reloaded")
			})
			// Refreshing continues without reloads.
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watch stopped: %v", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
