package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for parcels resources.
	uriScheme = "parcels://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "deliveries",
		Name:        "deliveries",
		Description: "All tracked deliveries, most relevant first",
		MIMEType:    "application/json",
	}, s.handleDeliveriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "deliveries/{deliveryId}",
		Name:        "delivery",
		Description: "A single delivery with its packages",
		MIMEType:    "application/json",
	}, s.handleDeliveryResource)

	if s.ports.Carriers != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "carriers",
			Name:        "carriers",
			Description: "Supported carriers and whether they are tracked remotely",
			MIMEType:    "application/json",
		}, s.handleCarriersResource)
	}
}

func (s *Server) handleDeliveriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	views, err := s.ports.Deliveries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}

	out := make([]DeliveryOutput, len(views))
	for i := range views {
		out[i] = toDeliveryOutput(views[i])
	}
	return jsonResult(req.Params.URI, out)
}

func (s *Server) handleDeliveryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// parcels://deliveries/{deliveryId}
	id := extractDeliveryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	view, err := s.ports.Deliveries.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting delivery: %w", err)
	}
	return jsonResult(req.Params.URI, toDeliveryOutput(*view))
}

func (s *Server) handleCarriersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type carrierInfo struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		RemoteTracking bool   `json:"remote_tracking"`
	}

	carriers := s.ports.Carriers.List()
	infos := make([]carrierInfo, len(carriers))
	for i, c := range carriers {
		infos[i] = carrierInfo{ID: c.ID, Name: c.Name}
		if _, adapter, ok := s.ports.Carriers.Get(c.ID); ok && adapter != nil {
			infos[i].RemoteTracking = adapter.AbleToTrackRemotely(ctx)
		}
	}
	return jsonResult(req.Params.URI, infos)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDeliveryID extracts the id from a URI like parcels://deliveries/{deliveryId}.
func extractDeliveryID(uri string) string {
	const prefix = uriScheme + "deliveries/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
