package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil delivery service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDeliveryService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Deliveries: &mockDeliveryService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ports", func(t *testing.T) {
		var ports *Ports
		assert.ErrorIs(t, ports.Validate(), ErrMissingDeliveryService)
	})

	t.Run("deliveries only is valid", func(t *testing.T) {
		ports := &Ports{Deliveries: &mockDeliveryService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Deliveries: &mockDeliveryService{},
			Refresh:    &mockRefreshEngine{},
			Carriers:   mockCarrierRegistry{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func connect(t *testing.T, ports *Ports) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server, err := NewServer(ports)
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestServer_ListTools(t *testing.T) {
	t.Run("all tools with refresh engine", func(t *testing.T) {
		session := connect(t, &Ports{
			Deliveries: &mockDeliveryService{},
			Refresh:    &mockRefreshEngine{},
		})
		assert.ElementsMatch(t,
			[]string{"list_deliveries", "refresh_deliveries", "add_delivery"},
			toolNames(t, session))
	})

	t.Run("refresh tool omitted without engine", func(t *testing.T) {
		session := connect(t, &Ports{Deliveries: &mockDeliveryService{}})
		assert.ElementsMatch(t, []string{"list_deliveries", "add_delivery"}, toolNames(t, session))
	})
}
