package fedex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/parcels/internal/core/domain"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// --- Test doubles ---

type staticCredentials struct {
	creds domain.CarrierCredentials
	err   error
}

func (s staticCredentials) Credentials(_ context.Context, _ string) (domain.CarrierCredentials, error) {
	return s.creds, s.err
}

var validCredentials = staticCredentials{creds: domain.CarrierCredentials{APIKey: "key", SecretKey: "secret"}}

// fakeFedEx serves the login and track endpoints.
type fakeFedEx struct {
	loginStatus int
	loginBody   string
	expiresIn   int
	trackStatus int
	trackBody   string

	logins atomic.Int32
	tracks atomic.Int32

	mu        sync.Mutex
	lastForm  url.Values
	lastAuth  string
	lastTrack trackRequest
}

func (f *fakeFedEx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/oauth/token":
		n := f.logins.Add(1)
		_ = r.ParseForm()
		f.mu.Lock()
		f.lastForm = r.PostForm
		f.mu.Unlock()

		if f.loginStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.loginStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.loginBody != "" {
			_, _ = w.Write([]byte(f.loginBody))
			return
		}
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":%d,"scope":"CXS"}`, n, f.expiresIn)

	case "/track/v1/trackingnumbers":
		f.tracks.Add(1)
		var req trackRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.lastTrack = req
		f.mu.Unlock()

		if f.trackStatus != 0 {
			w.WriteHeader(f.trackStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.trackBody))

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeFedEx) form() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func (f *fakeFedEx) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeFedEx) sentTrack() trackRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastTrack
}

const twoPackageBody = `{
  "transactionId": "t-1",
  "output": {
    "completeTrackResults": [{
      "trackingNumber": "794843185271",
      "trackResults": [
        {
          "latestStatusDetail": {"code": "DL", "description": "Delivered"},
          "dateAndTimes": [
            {"type": "ESTIMATED_DELIVERY", "dateTime": "2025-03-08T10:00:00-05:00"},
            {"type": "ACTUAL_DELIVERY", "dateTime": "2025-03-09T14:30:00-05:00"}
          ]
        },
        {
          "latestStatusDetail": {"code": "IT", "description": "In transit"},
          "dateAndTimes": [
            {"type": "SHIP", "dateTime": "2025-03-07T08:00:00-05:00"},
            {"type": "ESTIMATED_DELIVERY", "dateTime": "2025-03-12T18:00:00-05:00"}
          ]
        }
      ]
    }]
  }
}`

func newTestAdapter(t *testing.T, fake *fakeFedEx, creds staticCredentials) (*Adapter, *memory.TokenCache) {
	t.Helper()
	if fake.expiresIn == 0 {
		fake.expiresIn = 3600
	}
	if fake.trackBody == "" {
		fake.trackBody = twoPackageBody
	}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cache := memory.NewTokenCache()
	adapter := New(Config{
		BaseURL:     server.URL,
		HTTPTimeout: 5 * time.Second,
		Now:         func() time.Time { return testNow },
	}, creds, cache)
	return adapter, cache
}

func fedexDelivery() domain.Delivery {
	return domain.Delivery{ID: "d-1", Name: "Camera", Carrier: domain.CarrierFedEx, TrackingNumber: "794843185271"}
}

func requireTrackingError(t *testing.T, err error) *domain.RemoteTrackingError {
	t.Helper()
	var rte *domain.RemoteTrackingError
	require.True(t, errors.As(err, &rte), "expected RemoteTrackingError, got %v", err)
	assert.Equal(t, CarrierName, rte.Carrier)
	assert.Equal(t, "794843185271", rte.TrackingNumber)
	return rte
}

// --- Tests ---

func TestUpdateTracking_LogsInAndConvertsPackages(t *testing.T) {
	fake := &fakeFedEx{}
	adapter, cache := newTestAdapter(t, fake, validCredentials)

	packages, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.NoError(t, err)
	require.Len(t, packages, 2)

	assert.True(t, packages[0].Delivered)
	require.NotNil(t, packages[0].DeliveryDate)
	assert.True(t, packages[0].DeliveryDate.Equal(time.Date(2025, 3, 9, 19, 30, 0, 0, time.UTC)))

	assert.False(t, packages[1].Delivered)
	require.NotNil(t, packages[1].DeliveryDate)
	assert.True(t, packages[1].DeliveryDate.Equal(time.Date(2025, 3, 12, 23, 0, 0, 0, time.UTC)))
	assert.Empty(t, packages[1].Activity)

	assert.Equal(t, int32(1), fake.logins.Load())
	assert.Equal(t, "client_credentials", fake.form().Get("grant_type"))
	assert.Equal(t, "key", fake.form().Get("client_id"))
	assert.Equal(t, "secret", fake.form().Get("client_secret"))

	assert.Equal(t, "Bearer tok-1", fake.auth())
	sent := fake.sentTrack()
	assert.True(t, sent.IncludeDetailedScans)
	require.Len(t, sent.TrackingInfo, 1)
	assert.Equal(t, "794843185271", sent.TrackingInfo[0].TrackingNumberInfo.TrackingNumber)

	cached, err := cache.GetToken(context.Background(), TokenCacheKey)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "tok-1", cached.AccessToken)
	assert.Equal(t, int64(3600), cached.ExpiresIn)
	assert.Equal(t, "CXS", cached.Scope)
	assert.True(t, cached.ExpiresAt.Equal(testNow.Add(time.Hour)))
}

func TestUpdateTracking_CachedTokenLifetime(t *testing.T) {
	tests := []struct {
		name       string
		remaining  time.Duration
		wantLogins int32
		wantAuth   string
	}{
		{name: "expiring in 10s logs in again", remaining: 10 * time.Second, wantLogins: 1, wantAuth: "Bearer tok-1"},
		{name: "expiring in 300s is reused", remaining: 300 * time.Second, wantLogins: 0, wantAuth: "Bearer cached"},
		{name: "already expired logs in again", remaining: -time.Minute, wantLogins: 1, wantAuth: "Bearer tok-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeFedEx{}
			adapter, cache := newTestAdapter(t, fake, validCredentials)
			require.NoError(t, cache.SetToken(context.Background(), TokenCacheKey, domain.AccessToken{
				AccessToken: "cached",
				TokenType:   "bearer",
				ExpiresAt:   testNow.Add(tt.remaining),
			}))

			_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
			require.NoError(t, err)

			assert.Equal(t, tt.wantLogins, fake.logins.Load())
			assert.Equal(t, tt.wantAuth, fake.auth())

			cached, err := cache.GetToken(context.Background(), TokenCacheKey)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuth, "Bearer "+cached.AccessToken)
		})
	}
}

func TestUpdateTracking_ConcurrentCallsShareOneLogin(t *testing.T) {
	fake := &fakeFedEx{}
	adapter, _ := newTestAdapter(t, fake, validCredentials)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fake.logins.Load())
	assert.Equal(t, int32(8), fake.tracks.Load())
}

func TestUpdateTracking_MissingCredentials(t *testing.T) {
	fake := &fakeFedEx{}
	adapter, _ := newTestAdapter(t, fake, staticCredentials{creds: domain.CarrierCredentials{APIKey: "key"}})

	assert.False(t, adapter.AbleToTrackRemotely(context.Background()))

	_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.Error(t, err)
	rte := requireTrackingError(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.False(t, rte.Retryable())
	assert.Contains(t, err.Error(), "parcels credentials set fedex")
	assert.Zero(t, fake.logins.Load())
	assert.Zero(t, fake.tracks.Load())
}

func TestAbleToTrackRemotely(t *testing.T) {
	fake := &fakeFedEx{}
	adapter, _ := newTestAdapter(t, fake, validCredentials)
	assert.True(t, adapter.AbleToTrackRemotely(context.Background()))

	broken, _ := newTestAdapter(t, &fakeFedEx{}, staticCredentials{err: errors.New("config unreadable")})
	assert.False(t, broken.AbleToTrackRemotely(context.Background()))
}

func TestUpdateTracking_LoginRejected(t *testing.T) {
	fake := &fakeFedEx{loginStatus: http.StatusUnauthorized}
	adapter, cache := newTestAdapter(t, fake, validCredentials)

	_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.Error(t, err)
	rte := requireTrackingError(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.Equal(t, http.StatusUnauthorized, rte.StatusCode)
	assert.Equal(t, "Unauthorized", rte.Status)
	assert.True(t, rte.Retryable())
	assert.False(t, rte.Reportable())
	assert.Zero(t, fake.tracks.Load())

	cached, err := cache.GetToken(context.Background(), TokenCacheKey)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestUpdateTracking_LoginMissingAccessToken(t *testing.T) {
	fake := &fakeFedEx{loginBody: `{"token_type":"bearer"}`}
	adapter, _ := newTestAdapter(t, fake, validCredentials)

	_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.Error(t, err)
	rte := requireTrackingError(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.True(t, rte.Reportable())
}

func TestUpdateTracking_TrackFailures(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeFedEx
		wantKind   error
		wantStatus int
	}{
		{
			name:       "server error",
			fake:       &fakeFedEx{trackStatus: http.StatusServiceUnavailable},
			wantKind:   domain.ErrRemoteCallFailed,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:     "invalid json",
			fake:     &fakeFedEx{trackBody: `{"output": [`},
			wantKind: domain.ErrMalformedResponse,
		},
		{
			name:     "missing output",
			fake:     &fakeFedEx{trackBody: `{"transactionId": "t-1"}`},
			wantKind: domain.ErrMalformedResponse,
		},
		{
			name: "unparseable date",
			fake: &fakeFedEx{trackBody: `{"output":{"completeTrackResults":[{"trackResults":[
				{"latestStatusDetail":{"code":"IT"},"dateAndTimes":[{"type":"ESTIMATED_DELIVERY","dateTime":"soon"}]}]}]}}`},
			wantKind: domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, _ := newTestAdapter(t, tt.fake, validCredentials)

			_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
			require.Error(t, err)
			rte := requireTrackingError(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantStatus, rte.StatusCode)
			if errors.Is(tt.wantKind, domain.ErrMalformedResponse) {
				assert.Contains(t, err.Error(), "Please file a bug report.")
			}
		})
	}
}

func TestUpdateTracking_NoTrackResults(t *testing.T) {
	fake := &fakeFedEx{trackBody: `{"output":{"completeTrackResults":[]}}`}
	adapter, _ := newTestAdapter(t, fake, validCredentials)

	packages, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.NoError(t, err)
	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}

func TestUpdateTracking_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	adapter := New(Config{BaseURL: baseURL, HTTPTimeout: time.Second}, validCredentials, memory.NewTokenCache())

	_, err := adapter.UpdateTracking(context.Background(), fedexDelivery())
	require.Error(t, err)
	requireTrackingError(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}
