// Package layout draws the frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// Smallest terminal the frame is drawn in. Rounds need room for a prompt,
// four options and the feedback line.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall returns a resize notice when the terminal is below the minimum.
func TooSmall(width, height int) (string, bool) {
	if width >= MinWidth && height >= MinHeight {
		return "", false
	}
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		)), true
}

// Header is the top bar: game name, screen title, and the player's
// ledger total when a player is known.
type Header struct {
	Title  string
	Player string
	Points int
}

func (h Header) Render(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  LinguoQuest")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)

	var right string
	if h.Player != "" {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Player+"   ") +
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("★ %d pts", h.Points))
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lists key hints, dropping hints from the middle when they
// do not fit so the last one (usually Quit) stays visible.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	content := "  " + strings.Join(parts, "   ")
	for len(parts) > 1 && lipgloss.Width(content) > width-4 {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
		content = "  " + strings.Join(parts, "   ")
	}
	return bar(content, width)
}

// RenderFrame stacks header, content padded to the remaining height, and
// footer.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
