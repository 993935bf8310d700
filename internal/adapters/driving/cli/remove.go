package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

var removeCmd = &cobra.Command{
	Use:     "remove <delivery-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a delivery",
	Long: `Removes a delivery and its cached tracking data.

You are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if deliveryService == nil {
		return errors.New("delivery service not configured")
	}

	skipConfirm, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("getting yes flag: %w", err)
	}

	var confirm driving.ConfirmFunc
	if !skipConfirm {
		confirm = promptConfirm(cmd)
	}

	removed, err := deliveryService.Remove(cmd.Context(), args[0], confirm)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delivery %s not found", args[0])
		}
		return fmt.Errorf("failed to remove delivery: %w", err)
	}

	if !removed {
		cmd.Println("Cancelled.")
		return nil
	}
	cmd.Printf("Removed delivery %s\n", args[0])
	return nil
}

// promptConfirm asks on the command's input whether to delete a delivery.
func promptConfirm(cmd *cobra.Command) driving.ConfirmFunc {
	return func(_ context.Context, d domain.Delivery) bool {
		cmd.Printf("Delete delivery %q? [y/N]: ", d.Name)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer := strings.ToLower(readLine(reader))
		return answer == "y" || answer == "yes"
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
