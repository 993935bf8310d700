package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change refresh and carrier settings.

Settings are stored in ~/.parcels/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Available settings:
  concurrency  - deliveries refreshed at once (1 = sequential)
  interval     - minutes between background refreshes
  timeout      - seconds before a carrier request times out
  rate         - carrier requests per second (0 = unlimited)
  fedex-url    - FedEx API base URL`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Refresh]")
	cmd.Printf("  Concurrency: %d\n", settings.Refresh.Concurrency)
	cmd.Printf("  Interval: %s\n", settings.Refresh.Interval)
	cmd.Println()

	cmd.Println("[Carriers]")
	cmd.Printf("  HTTP Timeout: %s\n", settings.Carriers.HTTPTimeout)
	if settings.Carriers.RequestsPerSecond > 0 {
		cmd.Printf("  Requests Per Second: %g\n", settings.Carriers.RequestsPerSecond)
	} else {
		cmd.Printf("  Requests Per Second: unlimited\n")
	}
	cmd.Printf("  FedEx URL: %s\n", settings.Carriers.FedExBaseURL)
	return nil
}

// settingSetters apply a raw value to the named setting.
var settingSetters = map[string]func(s *domain.AppSettings, value string) error{
	"concurrency": func(s *domain.AppSettings, value string) error {
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		s.Refresh.Concurrency = n
		return nil
	},
	"interval": func(s *domain.AppSettings, value string) error {
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		s.Refresh.Interval = time.Duration(n) * time.Minute
		return nil
	},
	"timeout": func(s *domain.AppSettings, value string) error {
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		s.Carriers.HTTPTimeout = time.Duration(n) * time.Second
		return nil
	},
	"rate": func(s *domain.AppSettings, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: expected a non-negative number", domain.ErrInvalidInput)
		}
		s.Carriers.RequestsPerSecond = f
		return nil
	},
	"fedex-url": func(s *domain.AppSettings, value string) error {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: expected an http(s) URL", domain.ErrInvalidInput)
		}
		s.Carriers.FedExBaseURL = strings.TrimSuffix(value, "/")
		return nil
	},
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	name := strings.ToLower(args[0])
	setter, ok := settingSetters[name]
	if !ok {
		return fmt.Errorf("unknown setting %q (available: %s)", args[0], strings.Join(settingNames(), ", "))
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := setter(settings, strings.TrimSpace(args[1])); err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Setting %s updated.\n", name)
	return nil
}

func settingNames() []string {
	names := make([]string, 0, len(settingSetters))
	for name := range settingSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func positiveInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: expected a positive whole number", domain.ErrInvalidInput)
	}
	return n, nil
}
