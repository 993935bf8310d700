package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// mockDeliveryService is a mock implementation of driving.DeliveryService.
type mockDeliveryService struct {
	views   []domain.DeliveryView
	err     error
	added   *driving.AddDeliveryRequest
	listed  int
	addErr  error
	getView *domain.DeliveryView
}

func (m *mockDeliveryService) Add(_ context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error) {
	m.added = &req
	if m.addErr != nil {
		return nil, m.addErr
	}
	return &domain.Delivery{ID: "new-id", Name: req.Name, Carrier: req.Carrier, TrackingNumber: req.TrackingNumber}, nil
}

func (m *mockDeliveryService) Remove(_ context.Context, _ string, _ driving.ConfirmFunc) (bool, error) {
	return false, nil
}

func (m *mockDeliveryService) List(_ context.Context) ([]domain.DeliveryView, error) {
	m.listed++
	return m.views, m.err
}

func (m *mockDeliveryService) Get(_ context.Context, id string) (*domain.DeliveryView, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.getView == nil || m.getView.Delivery.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.getView, nil
}

// mockRefreshEngine is a mock implementation of driving.RefreshEngine.
type mockRefreshEngine struct {
	report *domain.RefreshReport
	err    error
	calls  []bool
}

func (m *mockRefreshEngine) Refresh(_ context.Context, force bool) (*domain.RefreshReport, error) {
	m.calls = append(m.calls, force)
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.RefreshReport{Forced: force}, nil
	}
	return m.report, nil
}

func (m *mockRefreshEngine) Status() domain.RefreshStatus {
	return domain.RefreshStatus{}
}

// mockAdapter is a carrier adapter with fixed remote capability.
type mockAdapter struct {
	remote bool
}

func (m *mockAdapter) AbleToTrackRemotely(_ context.Context) bool { return m.remote }

func (m *mockAdapter) UpdateTracking(_ context.Context, _ domain.Delivery) ([]domain.Package, error) {
	return nil, nil
}

// mockCarrierRegistry serves the built-in carriers; only FedEx tracks remotely.
type mockCarrierRegistry struct{}

func (mockCarrierRegistry) Get(id string) (domain.Carrier, driven.CarrierAdapter, bool) {
	for _, c := range domain.BuiltinCarriers() {
		if strings.EqualFold(c.ID, id) {
			return c, &mockAdapter{remote: c.ID == domain.CarrierFedEx}, true
		}
	}
	return domain.Carrier{}, nil, false
}

func (mockCarrierRegistry) List() []domain.Carrier { return domain.BuiltinCarriers() }

func (r mockCarrierRegistry) Resolve(nameOrID string) (domain.Carrier, error) {
	if c, _, ok := r.Get(nameOrID); ok {
		return c, nil
	}
	return domain.Carrier{}, domain.ErrUnknownCarrier
}

func (mockCarrierRegistry) Suggest(_ string) (string, bool) { return "", false }

var (
	_ driving.DeliveryService = (*mockDeliveryService)(nil)
	_ driving.RefreshEngine   = (*mockRefreshEngine)(nil)
	_ driving.CarrierRegistry = mockCarrierRegistry{}
)
