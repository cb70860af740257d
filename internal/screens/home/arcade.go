package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := components.BannerArt
	if compact || cw < components.BannerWidth {
		art = components.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}

// renderStatsBar renders the player's totals in a bordered box matching content width.
func renderStatsBar(points, rounds int, best string, cw int, compact bool) string {
	pointStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	roundStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	bestText := dimStyle.Render("▲ NO BEST MODE")
	if best != "" {
		bestText = bestStyle.Render("▲ " + strings.ToUpper(best))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			pointStyle.Render(fmt.Sprintf("★%d", points)),
			roundStyle.Render(fmt.Sprintf("▶%d", rounds)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			pointStyle.Render(fmt.Sprintf("★ %d PTS", points)),
			roundStyle.Render(fmt.Sprintf("▶ %d ROUNDS", rounds)),
			bestText,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button, or as
// plain lines when the terminal is too short for bordered buttons.
func renderArcadeMenu(menu components.Menu, cw int, compact bool) string {
	var lines []string
	for i, item := range menu.Items {
		state := components.ButtonIdle
		switch {
		case item.Disabled:
			state = components.ButtonDisabled
		case i == menu.Selected:
			state = components.ButtonSelected
		}

		if !compact {
			lines = append(lines, components.ArcadeButton(item.Label, state, buttonWidth))
			continue
		}
		switch state {
		case components.ButtonSelected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).
				Render(" ▸ "+item.Label+" "))
		case components.ButtonDisabled:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Border).Render("   "+item.Label))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderOfflineBanner warns that rounds use the built-in question sets.
func renderOfflineBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No LLM configured: using built-in questions")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
