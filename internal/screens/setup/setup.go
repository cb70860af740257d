// Package setup walks the player through choosing a mode, subject and
// grade before a round.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/screens/game"
	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/layout"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

type stage int

const (
	stageMode stage = iota
	stageSubject
	stageGrade
)

// pickMsg carries the value chosen on the current stage.
type pickMsg struct {
	value string
}

// SetupScreen collects an arcade.Request.
type SetupScreen struct {
	launcher *arcade.Launcher
	stage    stage
	req      arcade.Request
	menu     components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscapeHandler = (*SetupScreen)(nil)

// New creates a setup screen that starts rounds with launcher.
func New(launcher *arcade.Launcher) *SetupScreen {
	s := &SetupScreen{launcher: launcher}
	s.menu = s.menuFor(stageMode)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	switch s.stage {
	case stageSubject:
		return "Choose a Subject"
	case stageGrade:
		return "Choose a Grade"
	}
	return "Choose a Game"
}

func (s *SetupScreen) HandlesEscape() bool { return true }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-9", Description: "Quick pick"},
		{Key: "Esc", Description: "Back"},
	}
}

// Request returns the selections made so far.
func (s *SetupScreen) Request() arcade.Request {
	return s.req
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pickMsg:
		return s.pick(msg.value)
	case tea.KeyMsg:
		if msg.String() == "esc" {
			if s.stage == stageMode {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			s.stage--
			s.menu = s.menuFor(s.stage)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) pick(value string) (screen.Screen, tea.Cmd) {
	switch s.stage {
	case stageMode:
		s.req.Mode = engine.Mode(value)
	case stageSubject:
		s.req.Subject = content.Subject(value)
	case stageGrade:
		s.req.Grade = content.Grade(value)
		next := game.New(s.launcher, s.req)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.stage++
	s.menu = s.menuFor(s.stage)
	return s, nil
}

func (s *SetupScreen) menuFor(st stage) components.Menu {
	var values, labels, hints []string
	switch st {
	case stageMode:
		for _, m := range engine.Modes() {
			values = append(values, string(m))
			labels = append(labels, m.Title())
			hints = append(hints, m.Blurb())
		}
	case stageSubject:
		for _, sub := range content.Subjects() {
			values = append(values, string(sub))
			labels = append(labels, string(sub))
		}
	case stageGrade:
		for _, g := range content.Grades() {
			values = append(values, string(g))
			labels = append(labels, "Grade "+string(g))
		}
	}

	items := make([]components.MenuItem, len(values))
	for i, v := range values {
		items[i] = components.MenuItem{
			Label:  labels[i],
			Action: func() tea.Cmd { return func() tea.Msg { return pickMsg{value: v} } },
		}
		if i < len(hints) {
			items[i].Hint = hints[i]
		}
	}
	menu := components.NewMenu(items)
	menu.Numbered = true
	return menu
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.Title()))
	b.WriteString("\n\n")

	if crumb := s.breadcrumb(); crumb != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(crumb))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if item, ok := s.menu.Current(); ok && item.Hint != "" {
		mode := engine.Modes()[s.menu.Selected]
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.ModeColor(string(mode))).
			Italic(true).
			Render(item.Hint))
	}
	return b.String()
}

func (s *SetupScreen) breadcrumb() string {
	var parts []string
	if s.stage > stageMode {
		parts = append(parts, s.req.Mode.Title())
	}
	if s.stage > stageSubject {
		parts = append(parts, string(s.req.Subject))
	}
	return strings.Join(parts, " › ")
}
