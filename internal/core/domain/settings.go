package domain

import "time"

// Defaults for application settings.
const (
	DefaultRefreshConcurrency = 1
	DefaultHTTPTimeout        = 30 * time.Second
	DefaultRequestsPerSecond  = 1.0
	DefaultFedExBaseURL       = "https://apis.fedex.com"
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Refresh  RefreshSettings
	Carriers CarrierSettings
}

// RefreshSettings controls the refresh engine and scheduler.
type RefreshSettings struct {
	// Concurrency is how many deliveries are refreshed at once.
	// 1 processes deliveries sequentially in list order.
	Concurrency int
	// Interval is how often the scheduler runs a background pass.
	Interval time.Duration
}

// CarrierSettings controls carrier HTTP clients.
type CarrierSettings struct {
	// HTTPTimeout bounds each carrier request.
	HTTPTimeout time.Duration
	// RequestsPerSecond limits calls to each carrier API.
	RequestsPerSecond float64
	// FedExBaseURL is the FedEx API host.
	FedExBaseURL string
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Refresh: RefreshSettings{
			Concurrency: DefaultRefreshConcurrency,
			Interval:    StalenessWindow,
		},
		Carriers: CarrierSettings{
			HTTPTimeout:       DefaultHTTPTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			FedExBaseURL:      DefaultFedExBaseURL,
		},
	}
}
