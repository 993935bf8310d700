package fedex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/logger"
)

// Ensure Adapter implements the interface.
var _ driven.CarrierAdapter = (*Adapter)(nil)

// CarrierName is the display name used in error messages.
const CarrierName = "FedEx"

// Config configures the FedEx adapter.
type Config struct {
	// BaseURL is the API host. Defaults to domain.DefaultFedExBaseURL.
	BaseURL string
	// HTTPTimeout bounds each request. Defaults to domain.DefaultHTTPTimeout.
	HTTPTimeout time.Duration
	// RequestsPerSecond throttles API calls. Zero disables throttling.
	RequestsPerSecond float64
	// Transport is the underlying round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Now is the clock used for token expiry. Defaults to time.Now.
	Now func() time.Time
}

// Adapter tracks FedEx deliveries through the FedEx Track API.
type Adapter struct {
	baseURL string
	client  *http.Client
	creds   driven.CredentialsSource
	tokens  *tokenManager
}

// New creates a FedEx adapter. Credentials are read on every call so
// changes take effect without a restart.
func New(cfg Config, creds driven.CredentialsSource, cache driven.TokenCache) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultFedExBaseURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = domain.DefaultHTTPTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	client := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &limitedTransport{
			base:    cfg.Transport,
			limiter: NewRateLimiter(cfg.RequestsPerSecond),
		},
	}

	return &Adapter{
		baseURL: baseURL,
		client:  client,
		creds:   creds,
		tokens: &tokenManager{
			tokenURL: baseURL + "/oauth/token",
			client:   client,
			cache:    cache,
			now:      cfg.Now,
		},
	}
}

// AbleToTrackRemotely returns true when both API keys are configured.
func (a *Adapter) AbleToTrackRemotely(ctx context.Context) bool {
	creds, err := a.creds.Credentials(ctx, domain.CarrierFedEx)
	if err != nil {
		logger.Warn("Reading FedEx credentials: %v", err)
		return false
	}
	return creds.IsConfigured()
}

// UpdateTracking logs in if needed, calls the Track API and converts the
// result into one package per track result.
func (a *Adapter) UpdateTracking(ctx context.Context, delivery domain.Delivery) ([]domain.Package, error) {
	tn := delivery.TrackingNumber
	logger.Debug("Updating FedEx tracking for %s", tn)

	creds, err := a.creds.Credentials(ctx, domain.CarrierFedEx)
	if err != nil {
		return nil, a.fail(tn, domain.ErrMissingCredentials, fmt.Errorf("read credentials: %w", err))
	}
	if !creds.IsConfigured() {
		return nil, a.fail(tn, domain.ErrMissingCredentials,
			errors.New("set them with 'parcels credentials set fedex'"))
	}

	token, err := a.tokens.Token(ctx, creds)
	if err != nil {
		return nil, a.loginError(tn, err)
	}

	resp, err := a.track(ctx, tn, token.AccessToken)
	if err != nil {
		return nil, a.trackError(tn, err)
	}

	packages, err := convertPackages(resp)
	if err != nil {
		return nil, a.fail(tn, domain.ErrMalformedResponse, err)
	}

	logger.Debug("Updated FedEx tracking for %s: %d packages", tn, len(packages))
	return packages, nil
}

func (a *Adapter) fail(trackingNumber string, kind, cause error) *domain.RemoteTrackingError {
	return &domain.RemoteTrackingError{
		Carrier:        CarrierName,
		TrackingNumber: trackingNumber,
		Kind:           kind,
		Err:            cause,
	}
}

// loginError classifies a failed token exchange. A rejected login carries
// the HTTP status; an unreadable token response is malformed.
func (a *Adapter) loginError(trackingNumber string, err error) *domain.RemoteTrackingError {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		e := a.fail(trackingNumber, domain.ErrRemoteCallFailed,
			errors.New("login rejected; check the API key and secret key"))
		if rerr.Response != nil {
			e.StatusCode = rerr.Response.StatusCode
			e.Status = http.StatusText(rerr.Response.StatusCode)
		}
		return e
	}
	if isTransportError(err) {
		return a.fail(trackingNumber, domain.ErrRemoteCallFailed, fmt.Errorf("login: %w", err))
	}
	return a.fail(trackingNumber, domain.ErrMalformedResponse, fmt.Errorf("login: %w", err))
}

func (a *Adapter) trackError(trackingNumber string, err error) *domain.RemoteTrackingError {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		e := a.fail(trackingNumber, domain.ErrRemoteCallFailed, nil)
		e.StatusCode = statusErr.StatusCode
		e.Status = statusErr.Status
		return e
	}
	var decodeErr *decodeError
	if errors.As(err, &decodeErr) {
		return a.fail(trackingNumber, domain.ErrMalformedResponse, err)
	}
	return a.fail(trackingNumber, domain.ErrRemoteCallFailed, err)
}
