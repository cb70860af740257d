// Package theme holds the arcade palette shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow  = lipgloss.Color("#FACC15")
	ArcadeCyan    = lipgloss.Color("#22D3EE")
	ArcadeMagenta = lipgloss.Color("#E879F9")
)

// ModeColor is the accent used for each game mode's HUD.
func ModeColor(mode string) color.Color {
	switch mode {
	case "escape":
		return ArcadeCyan
	case "battle":
		return Error
	case "story":
		return ArcadeMagenta
	case "sprint":
		return ArcadeYellow
	}
	return Primary
}

// Gauge picks the fill color of a meter that drains toward zero: the
// normal fill above half, a warning below, and Error in the last quarter.
func Gauge(fraction float64, fill color.Color) color.Color {
	switch {
	case fraction <= 0.25:
		return Error
	case fraction <= 0.5:
		return Accent
	}
	return fill
}
