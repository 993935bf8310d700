// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates delivered packages.
	Success lipgloss.Color

	// Warning indicates deliveries that need attention.
	Warning lipgloss.Color

	// Info highlights partial progress.
	Info lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Carriers maps carrier colour hints to terminal colours.
	Carriers map[domain.Color]lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Info:       lipgloss.Color("#89B4FA"), // Blue
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Carriers: map[domain.Color]lipgloss.Color{
			domain.ColorBlue:   lipgloss.Color("#3B82F6"),
			domain.ColorOrange: lipgloss.Color("#F97316"),
			domain.ColorPurple: lipgloss.Color("#A855F7"),
			domain.ColorGreen:  lipgloss.Color("#22C55E"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Info style for informational labels.
	Info lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Tone returns the style for an accessory tone.
func (s *Styles) Tone(t domain.Tone) lipgloss.Style {
	switch t {
	case domain.ToneWarning:
		return s.Warning
	case domain.ToneSuccess:
		return s.Success
	case domain.ToneInfo:
		return s.Info
	default:
		return s.Normal
	}
}

// Carrier returns the style for a carrier's display colour.
// Unknown colours fall back to the normal style.
func (s *Styles) Carrier(c domain.Color) lipgloss.Style {
	if color, ok := s.theme.Carriers[c]; ok {
		return lipgloss.NewStyle().Foreground(color)
	}
	return s.Normal
}

// Icon returns the glyph for a delivery icon.
func Icon(i domain.Icon) string {
	switch i {
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
