package fedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// Date types reported by the Track API, in the order they are preferred.
const (
	DateActualDelivery      = "ACTUAL_DELIVERY"
	DateEstimatedDelivery   = "ESTIMATED_DELIVERY"
	DateAppointmentDelivery = "APPOINTMENT_DELIVERY"
)

// StatusDelivered is the latest status code of a delivered package.
const StatusDelivered = "DL"

var datePriority = []string{DateActualDelivery, DateEstimatedDelivery, DateAppointmentDelivery}

// Layouts accepted for dateAndTimes values. FedEx sends ISO 8601, sometimes
// without a zone offset.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

type trackRequest struct {
	IncludeDetailedScans bool           `json:"includeDetailedScans"`
	TrackingInfo         []trackingInfo `json:"trackingInfo"`
}

type trackingInfo struct {
	TrackingNumberInfo trackingNumberInfo `json:"trackingNumberInfo"`
}

type trackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

type trackResponse struct {
	TransactionID string       `json:"transactionId"`
	Output        *trackOutput `json:"output"`
}

type trackOutput struct {
	CompleteTrackResults []completeTrackResult `json:"completeTrackResults"`
}

type completeTrackResult struct {
	TrackingNumber string        `json:"trackingNumber"`
	TrackResults   []trackResult `json:"trackResults"`
}

type trackResult struct {
	TrackingNumberInfo trackingNumberInfo `json:"trackingNumberInfo"`
	LatestStatusDetail struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"latestStatusDetail"`
	DateAndTimes []dateAndTime `json:"dateAndTimes"`
	Error        *apiError     `json:"error,omitempty"`
}

type dateAndTime struct {
	Type     string `json:"type"`
	DateTime string `json:"dateTime"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatusError is a non-2xx Track API response.
type httpStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *httpStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("track request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("track request failed with status %d: %s", e.StatusCode, e.Body)
}

// decodeError is a Track API body that could not be parsed.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode track response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// track calls the Track API for one tracking number.
func (a *Adapter) track(ctx context.Context, trackingNumber, accessToken string) (*trackResponse, error) {
	body, err := json.Marshal(trackRequest{
		IncludeDetailedScans: true,
		TrackingInfo: []trackingInfo{
			{TrackingNumberInfo: trackingNumberInfo{TrackingNumber: trackingNumber}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode track request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/track/v1/trackingnumbers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpStatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	var out trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &decodeError{err: err}
	}
	if out.Output == nil {
		return nil, &decodeError{err: fmt.Errorf("missing output")}
	}
	return &out, nil
}

// convertPackages maps every track result to one package.
func convertPackages(resp *trackResponse) ([]domain.Package, error) {
	packages := []domain.Package{}
	for _, complete := range resp.Output.CompleteTrackResults {
		for _, result := range complete.TrackResults {
			pkg, err := convertPackage(result)
			if err != nil {
				return nil, err
			}
			packages = append(packages, pkg)
		}
	}
	return packages, nil
}

func convertPackage(result trackResult) (domain.Package, error) {
	pkg := domain.Package{
		Delivered: result.LatestStatusDetail.Code == StatusDelivered,
		Activity:  []domain.Activity{},
	}

	raw := preferredDate(result.DateAndTimes)
	if raw == "" {
		return pkg, nil
	}

	date, err := parseDate(raw)
	if err != nil {
		return domain.Package{}, &decodeError{err: err}
	}
	pkg.DeliveryDate = &date
	return pkg, nil
}

// preferredDate picks the actual delivery date, then the estimate, then the
// appointment. Empty values are ignored.
func preferredDate(dates []dateAndTime) string {
	for _, want := range datePriority {
		for _, d := range dates {
			if d.Type == want && d.DateTime != "" {
				return d.DateTime
			}
		}
	}
	return ""
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
