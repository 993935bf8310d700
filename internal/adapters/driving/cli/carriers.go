package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List supported carriers",
	RunE:  runCarriers,
}

func init() {
	rootCmd.AddCommand(carriersCmd)
}

func runCarriers(cmd *cobra.Command, _ []string) error {
	if carrierRegistry == nil {
		return errors.New("carrier registry not configured")
	}

	ctx := cmd.Context()
	for _, c := range carrierRegistry.List() {
		tracking := "not tracked remotely"
		if _, adapter, ok := carrierRegistry.Get(c.ID); ok && adapter.AbleToTrackRemotely(ctx) {
			tracking = "remote tracking"
		}
		cmd.Printf("  %-6s %s  %s\n", c.ID, carrierLabel(c), dimStyle.Render(tracking))
	}
	return nil
}
