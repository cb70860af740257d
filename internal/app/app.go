// Package app is the terminal front end: a root Bubble Tea model hosting a
// stack of screens.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/screens/home"
	"github.com/linguoquest/linguoquest/internal/screens/welcome"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/layout"
	"github.com/linguoquest/linguoquest/internal/ui/teaclock"
)

// Deps are the services the screens use.
type Deps struct {
	Launcher *arcade.Launcher
	Scores   store.ScoreRepo // nil disables the scores screen
	Offline  bool            // no LLM provider behind Launcher
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	player string
	points int
	width  int
	height int
}

// newAppModel starts on the splash screen, which hands over to home.
func newAppModel(deps Deps) AppModel {
	splash := welcome.New(func() screen.Screen {
		return home.New(deps.Launcher, deps.Scores, deps.Offline)
	})
	return AppModel{
		router: router.New(splash),
		player: deps.Launcher.Player(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case teaclock.Msg:
		// Round timers and ledger writes belong to whichever game screen
		// started them, active or not.
		return m, msg.Apply()

	case home.TotalsMsg:
		if msg.Err == nil {
			m.points = msg.Points
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !handlesEscape(m.router.Active()) {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func handlesEscape(s screen.Screen) bool {
	h, ok := s.(screen.EscapeHandler)
	return ok && h.HandlesEscape()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if notice, small := layout.TooSmall(m.width, m.height); small {
		v.SetContent(notice)
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.Header{Title: title, Player: m.player, Points: m.points}.Render(m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
