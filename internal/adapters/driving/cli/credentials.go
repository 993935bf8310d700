package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// credentialCarriers are the carriers that authenticate with API keys.
var credentialCarriers = []string{domain.CarrierFedEx}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage carrier API credentials",
	Long: `View and set API credentials for carriers that support remote tracking.

Credentials are stored in ~/.parcels/config.toml. The environment variables
PARCELS_FEDEX_API_KEY and PARCELS_FEDEX_SECRET_KEY take precedence, and may
also be set in a .env file.`,
	RunE: runCredentialsShow,
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured credentials",
	RunE:  runCredentialsShow,
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <carrier>",
	Short: "Set credentials for a carrier",
	Long: `Prompts for the API key and secret key of a carrier.

Example:
  parcels credentials set fedex`,
	Args: cobra.ExactArgs(1),
	RunE: runCredentialsSet,
}

func init() {
	credentialsSetCmd.Flags().String("api-key", "", "API key (prompted if omitted)")
	credentialsSetCmd.Flags().String("secret-key", "", "secret key (prompted if omitted)")
	credentialsCmd.AddCommand(credentialsShowCmd)
	credentialsCmd.AddCommand(credentialsSetCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func runCredentialsShow(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	ctx := cmd.Context()
	for _, id := range credentialCarriers {
		creds, err := credentialsService.Credentials(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read %s credentials: %w", id, err)
		}
		cmd.Printf("[%s]\n", id)
		cmd.Printf("  API Key:    %s\n", maskSecret(creds.APIKey))
		cmd.Printf("  Secret Key: %s\n", maskSecret(creds.SecretKey))
		cmd.Println()
	}
	return nil
}

func runCredentialsSet(cmd *cobra.Command, args []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	carrierID := strings.ToLower(strings.TrimSpace(args[0]))
	if !isCredentialCarrier(carrierID) {
		return fmt.Errorf("%w: %s does not use API credentials", domain.ErrInvalidInput, args[0])
	}

	apiKey, _ := cmd.Flags().GetString("api-key")       //nolint:errcheck // flag is registered
	secretKey, _ := cmd.Flags().GetString("secret-key") //nolint:errcheck // flag is registered

	reader := bufio.NewReader(cmd.InOrStdin())
	if apiKey == "" {
		cmd.Print("API key: ")
		apiKey = readLine(reader)
	}
	if secretKey == "" {
		cmd.Print("Secret key: ")
		secretKey = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	creds := domain.CarrierCredentials{APIKey: apiKey, SecretKey: secretKey}
	if !creds.IsConfigured() {
		return fmt.Errorf("%w: both the API key and the secret key are required", domain.ErrInvalidInput)
	}

	if err := credentialsService.SetCredentials(cmd.Context(), carrierID, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	cmd.Printf("Credentials for %s saved.\n", carrierID)
	return nil
}

func isCredentialCarrier(id string) bool {
	for _, c := range credentialCarriers {
		if c == id {
			return true
		}
	}
	return false
}

// readSecret reads without echo when in is a terminal.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "..." + s[len(s)-4:]
	}
}
