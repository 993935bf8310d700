package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

func TestSettingsShow(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}
	settings.Settings.Carriers.RequestsPerSecond = 0

	out, err := runCommand(t, &Services{Settings: settings}, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Refresh]")
	assert.Contains(t, out, "[Carriers]")
	assert.Contains(t, out, "Requests Per Second: unlimited")
}

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name: "concurrency",
			args: []string{"concurrency", "4"},
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 4, s.Refresh.Concurrency)
			},
		},
		{
			name: "interval",
			args: []string{"interval", "15"},
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 15*time.Minute, s.Refresh.Interval)
			},
		},
		{
			name: "timeout",
			args: []string{"timeout", "20"},
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 20*time.Second, s.Carriers.HTTPTimeout)
			},
		},
		{
			name: "rate",
			args: []string{"rate", "2.5"},
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.InDelta(t, 2.5, s.Carriers.RequestsPerSecond, 0.001)
			},
		},
		{
			name: "fedex url trims slash",
			args: []string{"FEDEX-URL", "https://apis-sandbox.fedex.com/"},
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, "https://apis-sandbox.fedex.com", s.Carriers.FedExBaseURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}

			out, err := runCommand(t, &Services{Settings: settings}, "", append([]string{"settings", "set"}, tt.args...)...)

			require.NoError(t, err)
			require.NotNil(t, settings.Saved)
			tt.verify(t, settings.Saved)
			assert.Contains(t, out, "updated.")
		})
	}
}

func TestSettingsSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown setting", args: []string{"colour", "blue"}, want: "unknown setting"},
		{name: "zero concurrency", args: []string{"concurrency", "0"}, want: "positive"},
		{name: "not a number", args: []string{"interval", "soon"}, want: "positive"},
		{name: "negative rate", args: []string{"rate", "-1"}, want: "non-negative"},
		{name: "bad url", args: []string{"fedex-url", "apis.fedex.com"}, want: "URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}

			_, err := runCommand(t, &Services{Settings: settings}, "", append([]string{"settings", "set"}, tt.args...)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, settings.Saved)
		})
	}
}

func TestSettingNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"concurrency", "fedex-url", "interval", "rate", "timeout"}, settingNames())
}
