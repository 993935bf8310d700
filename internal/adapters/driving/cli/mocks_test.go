package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// MockDeliveryService implements driving.DeliveryService for CLI tests.
type MockDeliveryService struct {
	AddFunc    func(ctx context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error)
	RemoveFunc func(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error)
	ListFunc   func(ctx context.Context) ([]domain.DeliveryView, error)
	GetFunc    func(ctx context.Context, id string) (*domain.DeliveryView, error)
}

func (m *MockDeliveryService) Add(ctx context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, req)
	}
	return &domain.Delivery{ID: "id-1", Name: req.Name, Carrier: req.Carrier, TrackingNumber: req.TrackingNumber}, nil
}

func (m *MockDeliveryService) Remove(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id, confirm)
	}
	return true, nil
}

func (m *MockDeliveryService) List(ctx context.Context) ([]domain.DeliveryView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDeliveryService) Get(ctx context.Context, id string) (*domain.DeliveryView, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// MockRefreshEngine implements driving.RefreshEngine for CLI tests.
type MockRefreshEngine struct {
	RefreshFunc func(ctx context.Context, force bool) (*domain.RefreshReport, error)
	Calls       []bool
}

func (m *MockRefreshEngine) Refresh(ctx context.Context, force bool) (*domain.RefreshReport, error) {
	m.Calls = append(m.Calls, force)
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, force)
	}
	return &domain.RefreshReport{Forced: force}, nil
}

func (m *MockRefreshEngine) Status() domain.RefreshStatus {
	return domain.RefreshStatus{}
}

// MockAdapter is a carrier adapter with fixed remote capability.
type MockAdapter struct {
	Remote bool
}

func (m *MockAdapter) AbleToTrackRemotely(_ context.Context) bool { return m.Remote }

func (m *MockAdapter) UpdateTracking(_ context.Context, _ domain.Delivery) ([]domain.Package, error) {
	return nil, nil
}

// MockCarrierRegistry serves the built-in carriers; only FedEx tracks remotely.
type MockCarrierRegistry struct{}

func (MockCarrierRegistry) Get(id string) (domain.Carrier, driven.CarrierAdapter, bool) {
	for _, c := range domain.BuiltinCarriers() {
		if strings.EqualFold(c.ID, id) {
			return c, &MockAdapter{Remote: c.ID == domain.CarrierFedEx}, true
		}
	}
	return domain.Carrier{}, nil, false
}

func (MockCarrierRegistry) List() []domain.Carrier { return domain.BuiltinCarriers() }

func (r MockCarrierRegistry) Resolve(nameOrID string) (domain.Carrier, error) {
	if c, _, ok := r.Get(nameOrID); ok {
		return c, nil
	}
	return domain.Carrier{}, domain.ErrUnknownCarrier
}

func (MockCarrierRegistry) Suggest(_ string) (string, bool) { return "", false }

// MockCredentialsService implements driving.CredentialsService for CLI tests.
type MockCredentialsService struct {
	Stored map[string]domain.CarrierCredentials
	SetErr error
}

func (m *MockCredentialsService) Credentials(_ context.Context, id string) (domain.CarrierCredentials, error) {
	return m.Stored[id], nil
}

func (m *MockCredentialsService) SetCredentials(_ context.Context, id string, creds domain.CarrierCredentials) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Stored == nil {
		m.Stored = map[string]domain.CarrierCredentials{}
	}
	m.Stored[id] = creds
	return nil
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	Settings domain.AppSettings
	Saved    *domain.AppSettings
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Saved = settings
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var (
	_ driving.DeliveryService    = (*MockDeliveryService)(nil)
	_ driving.RefreshEngine      = (*MockRefreshEngine)(nil)
	_ driving.CarrierRegistry    = MockCarrierRegistry{}
	_ driving.CredentialsService = (*MockCredentialsService)(nil)
	_ driving.SettingsService    = (*MockSettingsService)(nil)
)

// resetFlags restores every flag to its default so values do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, services *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetServices(services)
	t.Cleanup(func() { SetServices(nil) })
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
