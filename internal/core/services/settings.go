package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRefreshConcurrency = "refresh.concurrency"
	keyRefreshInterval    = "refresh.interval_minutes"
	keyHTTPTimeout        = "carriers.http_timeout_seconds"
	keyRequestsPerSecond  = "carriers.requests_per_second"
	keyFedExBaseURL       = "fedex.base_url"
	keySchedulerEnabled   = "scheduler.enabled"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or non-positive values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Refresh: domain.RefreshSettings{
			Concurrency: s.getInt(keyRefreshConcurrency, defaults.Refresh.Concurrency),
			Interval:    s.getMinutes(keyRefreshInterval, defaults.Refresh.Interval),
		},
		Carriers: domain.CarrierSettings{
			HTTPTimeout:       s.getSeconds(keyHTTPTimeout, defaults.Carriers.HTTPTimeout),
			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, defaults.Carriers.RequestsPerSecond),
			FedExBaseURL:      s.getString(keyFedExBaseURL, defaults.Carriers.FedExBaseURL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyRefreshConcurrency, settings.Refresh.Concurrency},
		{keyRefreshInterval, int(settings.Refresh.Interval / time.Minute)},
		{keyHTTPTimeout, int(settings.Carriers.HTTPTimeout / time.Second)},
		{keyRequestsPerSecond, settings.Carriers.RequestsPerSecond},
		{keyFedExBaseURL, settings.Carriers.FedExBaseURL},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the scheduler configuration.
// The refresh task follows refresh.interval_minutes; scheduler.enabled is
// the master switch.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultSchedulerConfig()
	}

	cfg := domain.SchedulerConfigFromSettings(settings)
	if _, exists := s.configStore.Get(keySchedulerEnabled); exists {
		cfg.Enabled = s.configStore.GetBool(keySchedulerEnabled)
	}
	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMinutes(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Minute
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}
