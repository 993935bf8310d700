package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
	"github.com/custodia-labs/parcels/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by commands. Populated by SetServices or the bootstrap hook.
var (
	deliveryService    driving.DeliveryService
	refreshEngine      driving.RefreshEngine
	carrierRegistry    driving.CarrierRegistry
	credentialsService driving.CredentialsService
	settingsService    driving.SettingsService
	scheduler          driving.Scheduler
	configWatcher      ConfigWatcher
	notifications      NotificationRouter
)

// ConfigWatcher reloads configuration when its backing file changes.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// NotificationRouter sends notifications to a different target until the
// returned restore function is called.
type NotificationRouter interface {
	Redirect(target driven.Notifier) (restore func())
}

// Services bundles everything the commands need.
type Services struct {
	Deliveries    driving.DeliveryService
	Refresh       driving.RefreshEngine
	Carriers      driving.CarrierRegistry
	Credentials   driving.CredentialsService
	Settings      driving.SettingsService
	Scheduler     driving.Scheduler
	ConfigWatcher ConfigWatcher
	Notifications NotificationRouter
}

// Options are the global flags passed to the bootstrap hook.
type Options struct {
	Verbose   bool
	DebugData bool
}

// Bootstrap builds the services once global flags have been parsed.
// The returned cleanup function runs after the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
	opts      Options
)

// noServicesAnnotation marks commands that run without bootstrapping services.
const noServicesAnnotation = "parcels/no-services"

var rootCmd = &cobra.Command{
	Use:   "parcels",
	Short: "Track parcels from USPS, UPS and FedEx",
	Long: `Parcels keeps a list of your deliveries and shows when each one arrives.

FedEx deliveries are tracked through the FedEx API once credentials are
configured. USPS and UPS deliveries use the delivery date you enter.
Tracking results are cached for 30 minutes.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.DebugData, "debug-data", false,
		"use in-memory sample deliveries instead of your saved list")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the hook that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices sets the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	deliveryService = s.Deliveries
	refreshEngine = s.Refresh
	carrierRegistry = s.Carriers
	credentialsService = s.Credentials
	settingsService = s.Settings
	scheduler = s.Scheduler
	configWatcher = s.ConfigWatcher
	notifications = s.Notifications
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if bootstrap == nil || cmd.Annotations[noServicesAnnotation] != "" {
		return nil
	}

	services, done, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if cleanup == nil {
		return nil
	}
	done := cleanup
	cleanup = nil
	return done()
}
