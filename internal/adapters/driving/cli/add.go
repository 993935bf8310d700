package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a delivery",
	Long: `Adds a delivery to the list.

FedEx deliveries are tracked remotely. USPS and UPS deliveries cannot be
tracked remotely, so pass --delivery-date with the expected delivery day.

Examples:
  parcels add --name "Keyboard" --carrier fedex --tracking 123456789012
  parcels add --name "Books" --carrier usps --tracking 9400100000000000000000 --delivery-date 2025-03-14`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("name", "n", "", "name for the delivery")
	addCmd.Flags().StringP("carrier", "c", "", "carrier id or name (usps, ups, fedex)")
	addCmd.Flags().StringP("tracking", "t", "", "tracking number")
	addCmd.Flags().String("delivery-date", "", "expected delivery date (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("carrier")
	_ = addCmd.MarkFlagRequired("tracking")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if deliveryService == nil {
		return errors.New("delivery service not configured")
	}

	name, _ := cmd.Flags().GetString("name")              //nolint:errcheck // flag is registered
	carrier, _ := cmd.Flags().GetString("carrier")        //nolint:errcheck // flag is registered
	tracking, _ := cmd.Flags().GetString("tracking")      //nolint:errcheck // flag is registered
	dateStr, _ := cmd.Flags().GetString("delivery-date") //nolint:errcheck // flag is registered

	req := driving.AddDeliveryRequest{
		Name:           name,
		Carrier:        carrier,
		TrackingNumber: tracking,
	}

	if dateStr != "" {
		date, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid delivery date %q: expected YYYY-MM-DD", dateStr)
		}
		req.ManualDeliveryDate = &date
	}

	ctx := cmd.Context()
	delivery, err := deliveryService.Add(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to add delivery: %w", err)
	}

	cmd.Printf("Added delivery %s (%s)\n", delivery.Name, delivery.ID)

	if carrierRegistry != nil && req.ManualDeliveryDate == nil {
		if c, adapter, ok := carrierRegistry.Get(delivery.Carrier); ok && !adapter.AbleToTrackRemotely(ctx) {
			cmd.Printf("%s deliveries are not tracked remotely; pass --delivery-date to set an expected date.\n", c.Name)
		}
	}
	return nil
}
