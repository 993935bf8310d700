package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// MockDeliveryService implements driving.DeliveryService for testing.
type MockDeliveryService struct {
	AddFunc    func(ctx context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error)
	RemoveFunc func(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error)
	ListFunc   func(ctx context.Context) ([]domain.DeliveryView, error)
}

func (m *MockDeliveryService) Add(ctx context.Context, req driving.AddDeliveryRequest) (*domain.Delivery, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, req)
	}
	return &domain.Delivery{ID: "new", Name: req.Name}, nil
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

func (m *MockDeliveryService) Get(_ context.Context, _ string) (*domain.DeliveryView, error) {
	return nil, domain.ErrNotFound
}

// MockRefreshEngine implements driving.RefreshEngine for testing.
type MockRefreshEngine struct {
	RefreshFunc func(ctx context.Context, force bool) (*domain.RefreshReport, error)
	calls       []bool
}

func (m *MockRefreshEngine) Refresh(ctx context.Context, force bool) (*domain.RefreshReport, error) {
	m.calls = append(m.calls, force)
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, force)
	}
	return &domain.RefreshReport{Forced: force}, nil
}

func (m *MockRefreshEngine) Status() domain.RefreshStatus {
	return domain.RefreshStatus{}
}

var (
	_ driving.DeliveryService = (*MockDeliveryService)(nil)
	_ driving.RefreshEngine   = (*MockRefreshEngine)(nil)
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{
			name:    "missing deliveries",
			ports:   &Ports{Refresh: &MockRefreshEngine{}},
			wantErr: ErrMissingDeliveryService,
		},
		{
			name:    "missing refresh",
			ports:   &Ports{Deliveries: &MockDeliveryService{}},
			wantErr: ErrMissingRefreshEngine,
		},
		{
			name:  "required ports only",
			ports: &Ports{Deliveries: &MockDeliveryService{}, Refresh: &MockRefreshEngine{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
