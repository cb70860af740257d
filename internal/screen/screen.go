// Package screen defines what the router and app expect of a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/linguoquest/linguoquest/internal/ui/layout"
)

// Screen is one page of the terminal UI. View draws only the area between
// the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Closer is implemented by screens that hold resources, such as a running
// round, to release when they leave the stack.
type Closer interface {
	Close()
}

// Refresher is implemented by screens that reload their data when they
// become active again.
type Refresher interface {
	Refresh() tea.Cmd
}
