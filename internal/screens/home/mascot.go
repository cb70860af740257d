package home

import (
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes after a winning round
	MascotAlert                            // Orange, exclamation after a penalty
)

const mascotIdle = ` ,___,
 (O,O)
 /)Aa)
--"-"--`

const mascotCelebrating = ` ,___,
 (★,★)
\/)Aa)/
--"-"--`

const mascotAlert = ` ,___,
 (O,O) !
 /)Aa)
--"-"--`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
