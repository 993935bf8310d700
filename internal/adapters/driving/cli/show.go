package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <delivery-id>",
	Short: "Show a delivery and its packages",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if deliveryService == nil {
		return errors.New("delivery service not configured")
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	view, err := deliveryService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delivery %s not found", args[0])
		}
		return fmt.Errorf("failed to get delivery: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toDeliveryJSON(*view))
	}

	writeDeliveryDetail(cmd.OutOrStdout(), *view)
	return nil
}
