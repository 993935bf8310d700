package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

var carrierColors = map[domain.Color]lipgloss.Color{
	domain.ColorBlue:   lipgloss.Color("#3B82F6"),
	domain.ColorOrange: lipgloss.Color("#F97316"),
	domain.ColorPurple: lipgloss.Color("#8B5CF6"),
	domain.ColorGreen:  lipgloss.Color("#22C55E"),
}

func iconGlyph(icon domain.Icon) string {
	switch icon {
	case domain.IconComplete:
		return "●"
	case domain.IconPartial:
		return "◐"
	case domain.IconInProgress:
		return "○"
	default:
		return "?"
	}
}

func toneStyle(tone domain.Tone) lipgloss.Style {
	switch tone {
	case domain.ToneWarning:
		return warningStyle
	case domain.ToneSuccess:
		return successStyle
	case domain.ToneInfo:
		return infoStyle
	default:
		return lipgloss.NewStyle()
	}
}

func carrierLabel(c domain.Carrier) string {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	style := lipgloss.NewStyle()
	if color, ok := carrierColors[c.Color]; ok {
		style = style.Foreground(color)
	}
	return style.Render(name)
}

// writeDeliveryLine renders one delivery as a single list row.
func writeDeliveryLine(w io.Writer, v domain.DeliveryView) {
	fmt.Fprintf(w, "%s %s  %s  %s  %s\n",
		iconGlyph(v.Summary.Icon),
		headerStyle.Render(v.Delivery.Name),
		carrierLabel(v.Carrier),
		dimStyle.Render(v.Delivery.TrackingNumber),
		toneStyle(v.Summary.Tone).Render(v.Summary.Accessory),
	)
}

// writeDeliveryDetail renders a delivery and each of its packages.
func writeDeliveryDetail(w io.Writer, v domain.DeliveryView) {
	fmt.Fprintf(w, "%s\n", headerStyle.Render(v.Delivery.Name))
	fmt.Fprintf(w, "  ID:        %s\n", v.Delivery.ID)
	fmt.Fprintf(w, "  Carrier:   %s\n", carrierLabel(v.Carrier))
	fmt.Fprintf(w, "  Tracking:  %s\n", v.Delivery.TrackingNumber)
	fmt.Fprintf(w, "  Status:    %s\n", toneStyle(v.Summary.Tone).Render(v.Summary.Accessory))
	if v.LastUpdated.IsZero() {
		fmt.Fprintf(w, "  Updated:   never\n")
	} else {
		fmt.Fprintf(w, "  Updated:   %s\n", v.LastUpdated.Local().Format(time.DateTime))
	}

	if len(v.Packages) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Packages:")
	for i, p := range v.Packages {
		fmt.Fprintf(w, "    %d. %s\n", i+1, packageLine(p))
	}
}

func packageLine(p domain.Package) string {
	var b strings.Builder
	if p.Delivered {
		b.WriteString("delivered")
	} else {
		b.WriteString("in transit")
	}
	if p.DeliveryDate != nil {
		b.WriteString(", ")
		b.WriteString(p.DeliveryDate.Local().Format(time.DateOnly))
	} else {
		b.WriteString(", date unknown")
	}
	return b.String()
}
