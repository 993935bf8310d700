package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/logger"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List deliveries",
	Long: `Lists all deliveries, most relevant first.

Deliveries whose tracking data is older than 30 minutes are refreshed
before the list is shown. Use --json for machine-readable output.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

// deliveryJSON is the JSON shape of a delivery in list and show output.
type deliveryJSON struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Carrier        string           `json:"carrier"`
	CarrierName    string           `json:"carrier_name"`
	TrackingNumber string           `json:"tracking_number"`
	Status         string           `json:"status"`
	Accessory      string           `json:"accessory"`
	Tone           string           `json:"tone"`
	LastUpdated    *time.Time       `json:"last_updated,omitempty"`
	Packages       []domain.Package `json:"packages"`
}

func toDeliveryJSON(v domain.DeliveryView) deliveryJSON {
	out := deliveryJSON{
		ID:             v.Delivery.ID,
		Name:           v.Delivery.Name,
		Carrier:        v.Delivery.Carrier,
		CarrierName:    v.Carrier.Name,
		TrackingNumber: v.Delivery.TrackingNumber,
		Status:         v.Summary.Icon.String(),
		Accessory:      v.Summary.Accessory,
		Tone:           v.Summary.Tone.String(),
		Packages:       v.Packages,
	}
	if out.Packages == nil {
		out.Packages = []domain.Package{}
	}
	if !v.LastUpdated.IsZero() {
		updated := v.LastUpdated
		out.LastUpdated = &updated
	}
	return out
}

func runList(cmd *cobra.Command, _ []string) error {
	if deliveryService == nil {
		return errors.New("delivery service not configured")
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	ctx := cmd.Context()
	refreshStale(ctx)

	views, err := deliveryService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deliveries: %w", err)
	}

	if asJSON {
		out := make([]deliveryJSON, 0, len(views))
		for _, v := range views {
			out = append(out, toDeliveryJSON(v))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(views) == 0 {
		cmd.Println("No deliveries. Add one with 'parcels add'.")
		return nil
	}

	for _, v := range views {
		writeDeliveryLine(cmd.OutOrStdout(), v)
	}
	return nil
}

// refreshStale runs a non-forced refresh pass. Failures are reported by the
// engine's notifier; only a pass that could not run is logged here.
func refreshStale(ctx context.Context) {
	if refreshEngine == nil {
		return
	}
	if _, err := refreshEngine.Refresh(ctx, false); err != nil {
		logger.Warn("refresh skipped: %v", err)
	}
}
