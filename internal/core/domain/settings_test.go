package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, 1, settings.Refresh.Concurrency)
	assert.Equal(t, 30*time.Minute, settings.Refresh.Interval)
	assert.Equal(t, StalenessWindow, settings.Refresh.Interval)

	assert.Equal(t, 30*time.Second, settings.Carriers.HTTPTimeout)
	assert.InDelta(t, 1.0, settings.Carriers.RequestsPerSecond, 0.0001)
	assert.Equal(t, "https://apis.fedex.com", settings.Carriers.FedExBaseURL)
}

func TestDefaultAppSettings_Independent(t *testing.T) {
	a := DefaultAppSettings()
	a.Refresh.Concurrency = 8

	assert.Equal(t, DefaultRefreshConcurrency, DefaultAppSettings().Refresh.Concurrency)
}
