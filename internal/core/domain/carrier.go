package domain

// Color is a display colour hint for a carrier or label.
// Adapters map it to their own palette.
type Color string

// Display colours.
const (
	ColorNone   Color = ""
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorGreen  Color = "green"
)

// Carrier describes a shipping carrier.
// Carriers are registered at startup and never change afterwards.
type Carrier struct {
	// ID is the stable identifier stored on deliveries (e.g., "fedex").
	ID string `json:"id"`

	// Name is the display name (e.g., "FedEx").
	Name string `json:"name"`

	// Color is the display colour.
	Color Color `json:"color"`
}

// Built-in carrier ids.
const (
	CarrierUSPS  = "usps"
	CarrierUPS   = "ups"
	CarrierFedEx = "fedex"
)

// BuiltinCarriers returns the supported carriers in display order.
func BuiltinCarriers() []Carrier {
	return []Carrier{
		{ID: CarrierUSPS, Name: "USPS", Color: ColorBlue},
		{ID: CarrierUPS, Name: "UPS", Color: ColorOrange},
		{ID: CarrierFedEx, Name: "FedEx", Color: ColorPurple},
	}
}
