package deliveries

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// MockDeliveryService implements driving.DeliveryService for testing.
type MockDeliveryService struct {
	ListFunc   func(ctx context.Context) ([]domain.DeliveryView, error)
	RemoveFunc func(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error)
}

func (m *MockDeliveryService) Add(_ context.Context, _ driving.AddDeliveryRequest) (*domain.Delivery, error) {
	return nil, nil
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
	return []domain.DeliveryView{}, nil
}

func (m *MockDeliveryService) Get(_ context.Context, _ string) (*domain.DeliveryView, error) {
	return nil, domain.ErrNotFound
}

func sampleViews() []domain.DeliveryView {
	return []domain.DeliveryView{
		{
			Delivery: domain.Delivery{ID: "d1", Name: "Keyboard", Carrier: "fedex", TrackingNumber: "111"},
			Carrier:  domain.Carrier{ID: "fedex", Name: "FedEx", Color: domain.ColorPurple},
			Summary:  domain.DeliverySummary{Icon: domain.IconInProgress, Accessory: "2 days until delivery"},
		},
		{
			Delivery: domain.Delivery{ID: "d2", Name: "Books", Carrier: "usps", TrackingNumber: "222"},
			Carrier:  domain.Carrier{ID: "usps", Name: "USPS", Color: domain.ColorBlue},
			Summary:  domain.DeliverySummary{Icon: domain.IconComplete, Accessory: "Delivered", Tone: domain.ToneSuccess},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedView(t *testing.T, svc *MockDeliveryService) *View {
	t.Helper()
	view := NewView(nil, svc)
	view.SetDimensions(120, 40)
	view.Update(messages.DeliveriesLoaded{Deliveries: sampleViews()})
	return view
}

func TestView_Init_LoadsDeliveries(t *testing.T) {
	mock := &MockDeliveryService{
		ListFunc: func(context.Context) ([]domain.DeliveryView, error) {
			return sampleViews(), nil
		},
	}
	view := NewView(nil, mock)

	cmd := view.Init()

	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.DeliveriesLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Deliveries, 2)
	assert.NoError(t, loaded.Err)
	assert.Contains(t, view.View(), "Loading deliveries...")
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(nil, nil)

	loaded, ok := view.Init()().(messages.DeliveriesLoaded)

	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, errServiceUnavailable)
}

func TestView_Update_DeliveriesLoaded(t *testing.T) {
	view := loadedView(t, &MockDeliveryService{})

	assert.Len(t, view.Deliveries(), 2)
	out := view.View()
	assert.Contains(t, out, "Keyboard")
	assert.Contains(t, out, "2 days until delivery")
	assert.Contains(t, out, "Delivered")
}

func TestView_Update_DeliveriesLoadedError(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(messages.DeliveriesLoaded{Err: errors.New("disk full")})

	assert.EqualError(t, view.Err(), "disk full")
	assert.Contains(t, view.View(), "Error: disk full")
}

func TestView_EmptyState(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.DeliveriesLoaded{Deliveries: []domain.DeliveryView{}})

	assert.Contains(t, view.View(), "No deliveries")
}

func TestView_KeyCommands(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"refresh", keyRunes("r"), messages.RefreshRequested{Force: false}},
		{"force refresh", keyRunes("R"), messages.RefreshRequested{Force: true}},
		{"add", keyRunes("a"), messages.ViewChanged{View: messages.ViewAddDelivery}},
		{"credentials", keyRunes("c"), messages.ViewChanged{View: messages.ViewCredentials}},
		{"help", keyRunes("?"), messages.ViewChanged{View: messages.ViewHelp}},
		{"quit", keyRunes("q"), messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := loadedView(t, &MockDeliveryService{})

			_, cmd := view.Update(tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_Enter_SelectsDelivery(t *testing.T) {
	view := loadedView(t, &MockDeliveryService{})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.DeliverySelected)
	require.True(t, ok)
	assert.Equal(t, "d2", selected.Delivery.Delivery.ID)
	assert.Equal(t, 1, view.SelectedIndex())
}

func TestView_Delete_Confirmed(t *testing.T) {
	var removedID string
	mock := &MockDeliveryService{
		RemoveFunc: func(ctx context.Context, id string, confirm driving.ConfirmFunc) (bool, error) {
			removedID = id
			require.NotNil(t, confirm)
			assert.True(t, confirm(ctx, domain.Delivery{ID: id}))
			return true, nil
		},
	}
	view := loadedView(t, mock)

	_, cmd := view.Update(keyRunes("d"))
	assert.Nil(t, cmd)
	require.NotNil(t, view.PendingDelete())
	assert.Contains(t, view.View(), `Delete "Keyboard"?`)

	_, cmd = view.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	removed, ok := cmd().(messages.DeliveryRemoved)
	require.True(t, ok)
	assert.NoError(t, removed.Err)
	assert.Equal(t, "d1", removedID)
	assert.Nil(t, view.PendingDelete())

	_, cmd = view.Update(removed)
	require.NotNil(t, cmd, "removal reloads the list")
}

func TestView_Delete_Cancelled(t *testing.T) {
	called := false
	mock := &MockDeliveryService{
		RemoveFunc: func(context.Context, string, driving.ConfirmFunc) (bool, error) {
			called = true
			return true, nil
		},
	}
	view := loadedView(t, mock)

	view.Update(keyRunes("d"))
	_, cmd := view.Update(keyRunes("n"))

	assert.Nil(t, cmd)
	assert.Nil(t, view.PendingDelete())
	assert.False(t, called)
}

func TestView_DeliveryRemovedError(t *testing.T) {
	view := loadedView(t, &MockDeliveryService{})

	_, cmd := view.Update(messages.DeliveryRemoved{ID: "d1", Err: domain.ErrNotFound})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.Err(), domain.ErrNotFound)
}
