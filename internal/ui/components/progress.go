package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// ProgressBar is a labelled meter such as boss HP or a countdown.
type ProgressBar struct {
	Label    string
	Fraction float64
	Width    int
	// Fill colors the filled part. Zero means theme.Secondary.
	Fill color.Color
	// Drains shifts the fill toward warning colors as the meter empties.
	Drains bool
}

// NewProgressBar creates a meter of the given total width.
func NewProgressBar(label string, fraction float64, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, Width: width}
}

// View renders the label followed by a bar of block glyphs.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := max(p.Width-lipgloss.Width(b.String()), 4)
	frac := min(max(p.Fraction, 0), 1)
	filled := int(float64(barWidth)*frac + 0.5)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	if p.Drains {
		fill = theme.Gauge(frac, fill)
	}

	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	return b.String()
}
