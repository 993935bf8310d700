package domain

import "time"

// Icon summarises the aggregate package state of a delivery.
type Icon int

// Delivery icons.
const (
	// IconUnknown means there are no packages (never refreshed or empty result).
	IconUnknown Icon = iota
	// IconComplete means every package is delivered.
	IconComplete
	// IconPartial means some, but not all, packages are delivered.
	IconPartial
	// IconInProgress means no package is delivered yet.
	IconInProgress
)

// String returns the string representation.
func (i Icon) String() string {
	switch i {
	case IconComplete:
		return "complete"
	case IconPartial:
		return "partial"
	case IconInProgress:
		return "in-progress"
	default:
		return "unknown"
	}
}

// Tone is the semantic colour of an accessory label.
type Tone int

// Accessory tones.
const (
	ToneDefault Tone = iota
	ToneWarning
	ToneSuccess
	ToneInfo
)

// String returns the string representation.
func (t Tone) String() string {
	switch t {
	case ToneWarning:
		return "warning"
	case ToneSuccess:
		return "success"
	case ToneInfo:
		return "info"
	default:
		return "default"
	}
}

// DeliverySummary is the presentation summary of a delivery's packages.
type DeliverySummary struct {
	Icon      Icon
	Accessory string
	Tone      Tone
}

// DeliveryView is a delivery joined with its carrier, cached packages and summary.
type DeliveryView struct {
	Delivery    Delivery
	Carrier     Carrier
	Packages    []Package
	LastUpdated time.Time
	Summary     DeliverySummary
}
