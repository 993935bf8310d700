package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh tracking data",
	Long: `Fetches tracking data from carriers.

Deliveries refreshed within the last 30 minutes are skipped unless --force
is given. A failure for one delivery never stops the others; use --strict
to exit with an error when any delivery failed.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolP("force", "f", false, "refresh every delivery regardless of age")
	refreshCmd.Flags().Bool("strict", false, "exit with an error if any delivery failed")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if refreshEngine == nil {
		return errors.New("refresh engine not configured")
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("getting force flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("getting strict flag: %w", err)
	}

	if force {
		cmd.Println("Refreshing all deliveries...")
	} else {
		cmd.Println("Refreshing stale deliveries...")
	}

	report, err := refreshEngine.Refresh(cmd.Context(), force)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("Updated %d, skipped %d, failed %d.\n",
		len(report.Updated), len(report.Skipped), len(report.Failures))
	for _, f := range report.Failures {
		cmd.Printf("  %s %v\n", warningStyle.Render("!"), f.Err)
	}

	if strict && len(report.Failures) > 0 {
		return failuresError(report.Failures)
	}
	return nil
}

func failuresError(failures []domain.DeliveryFailure) error {
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, fmt.Errorf("delivery %s: %w", f.DeliveryID, f.Err))
	}
	return errors.Join(errs...)
}
