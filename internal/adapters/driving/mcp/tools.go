package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
	"github.com/custodia-labs/parcels/internal/logger"
)

// ListDeliveriesInput is the input schema for the list_deliveries tool.
type ListDeliveriesInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"refresh stale deliveries before listing"`
}

// ListDeliveriesOutput is the output schema for the list_deliveries tool.
type ListDeliveriesOutput struct {
	Deliveries []DeliveryOutput `json:"deliveries"`
	Count      int              `json:"count"`
}

// DeliveryOutput is a delivery as seen by an assistant.
type DeliveryOutput struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Carrier        string          `json:"carrier"`
	TrackingNumber string          `json:"tracking_number"`
	Status         string          `json:"status"`
	Summary        string          `json:"summary"`
	LastUpdated    string          `json:"last_updated,omitempty"`
	Packages       []PackageOutput `json:"packages"`
}

// PackageOutput is one package of a delivery.
type PackageOutput struct {
	Delivered    bool   `json:"delivered"`
	DeliveryDate string `json:"delivery_date,omitempty"`
}

// RefreshDeliveriesInput is the input schema for the refresh_deliveries tool.
type RefreshDeliveriesInput struct {
	Force bool `json:"force,omitempty" jsonschema:"refresh every delivery, even those updated in the last 30 minutes"`
}

// RefreshDeliveriesOutput is the output schema for the refresh_deliveries tool.
type RefreshDeliveriesOutput struct {
	Updated  int             `json:"updated"`
	Skipped  int             `json:"skipped"`
	Failures []FailureOutput `json:"failures"`
}

// FailureOutput describes a delivery that could not be refreshed.
type FailureOutput struct {
	DeliveryID     string `json:"delivery_id"`
	TrackingNumber string `json:"tracking_number"`
	Error          string `json:"error"`
}

// AddDeliveryInput is the input schema for the add_delivery tool.
type AddDeliveryInput struct {
	Name           string `json:"name" jsonschema:"a label for the delivery"`
	Carrier        string `json:"carrier" jsonschema:"carrier id: usps, ups or fedex"`
	TrackingNumber string `json:"tracking_number" jsonschema:"the carrier tracking number"`
	DeliveryDate   string `json:"delivery_date,omitempty" jsonschema:"expected delivery date (YYYY-MM-DD) for carriers without remote tracking"`
}

// AddDeliveryOutput is the output schema for the add_delivery tool.
type AddDeliveryOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Carrier string `json:"carrier"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_deliveries",
		Description: "List tracked deliveries, most relevant first",
	}, s.handleListDeliveries)

	if s.ports.Refresh != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "refresh_deliveries",
			Description: "Fetch the latest tracking data from the carriers",
		}, s.handleRefreshDeliveries)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_delivery",
		Description: "Start tracking a new delivery",
	}, s.handleAddDelivery)
}

func (s *Server) handleListDeliveries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDeliveriesInput,
) (*mcp.CallToolResult, ListDeliveriesOutput, error) {
	if input.Refresh && s.ports.Refresh != nil {
		// A pass that cannot run still leaves the cached list usable.
		if _, err := s.ports.Refresh.Refresh(ctx, false); err != nil {
			logger.Warn("mcp: refresh skipped: %v", err)
		}
	}

	views, err := s.ports.Deliveries.List(ctx)
	if err != nil {
		return nil, ListDeliveriesOutput{}, fmt.Errorf("listing deliveries: %w", err)
	}

	output := ListDeliveriesOutput{
		Deliveries: make([]DeliveryOutput, len(views)),
		Count:      len(views),
	}
	for i := range views {
		output.Deliveries[i] = toDeliveryOutput(views[i])
	}
	return nil, output, nil
}

func (s *Server) handleRefreshDeliveries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshDeliveriesInput,
) (*mcp.CallToolResult, RefreshDeliveriesOutput, error) {
	report, err := s.ports.Refresh.Refresh(ctx, input.Force)
	if err != nil {
		return nil, RefreshDeliveriesOutput{}, fmt.Errorf("refreshing deliveries: %w", err)
	}

	output := RefreshDeliveriesOutput{
		Updated:  len(report.Updated),
		Skipped:  len(report.Skipped),
		Failures: make([]FailureOutput, len(report.Failures)),
	}
	for i, f := range report.Failures {
		output.Failures[i] = FailureOutput{
			DeliveryID:     f.DeliveryID,
			TrackingNumber: f.TrackingNumber,
			Error:          f.Err.Error(),
		}
	}
	return nil, output, nil
}

func (s *Server) handleAddDelivery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddDeliveryInput,
) (*mcp.CallToolResult, AddDeliveryOutput, error) {
	req := driving.AddDeliveryRequest{
		Name:           input.Name,
		Carrier:        input.Carrier,
		TrackingNumber: input.TrackingNumber,
	}
	if input.DeliveryDate != "" {
		date, err := time.ParseInLocation(time.DateOnly, input.DeliveryDate, time.Local)
		if err != nil {
			return nil, AddDeliveryOutput{}, fmt.Errorf("%w: delivery_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		req.ManualDeliveryDate = &date
	}

	delivery, err := s.ports.Deliveries.Add(ctx, req)
	if err != nil {
		return nil, AddDeliveryOutput{}, err
	}

	return nil, AddDeliveryOutput{
		ID:      delivery.ID,
		Name:    delivery.Name,
		Carrier: delivery.Carrier,
	}, nil
}

func toDeliveryOutput(v domain.DeliveryView) DeliveryOutput {
	carrier := v.Carrier.Name
	if carrier == "" {
		carrier = v.Delivery.Carrier
	}

	out := DeliveryOutput{
		ID:             v.Delivery.ID,
		Name:           v.Delivery.Name,
		Carrier:        carrier,
		TrackingNumber: v.Delivery.TrackingNumber,
		Status:         v.Summary.Icon.String(),
		Summary:        v.Summary.Accessory,
		Packages:       make([]PackageOutput, len(v.Packages)),
	}
	if !v.LastUpdated.IsZero() {
		out.LastUpdated = v.LastUpdated.Format(time.RFC3339)
	}
	for i, p := range v.Packages {
		out.Packages[i] = PackageOutput{Delivered: p.Delivered}
		if p.DeliveryDate != nil {
			out.Packages[i].DeliveryDate = p.DeliveryDate.Local().Format(time.DateOnly)
		}
	}
	return out
}
