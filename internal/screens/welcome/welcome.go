// Package welcome plays the splash animation shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bookEnd      = 500 * time.Millisecond
	bannerStart  = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const bookArt = `   __________   __________
  /  Aa  Bb  \ /  Éé  अआ  \
 /   Cc  Dd   V   Çç  कख   \
/______________|____________\`

// Letters drift over the open book once it has appeared.
var glyphFrames = []string{"a", "é", "क", "ç", "z", "ü"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the home
// screen. Any key skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's screen.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	book := lipgloss.NewStyle().Foreground(theme.Primary).Render(bookArt)
	if w.elapsed >= bookEnd {
		glyph := glyphFrames[w.tickCount%len(glyphFrames)]
		drift := strings.Repeat(" ", 4+w.tickCount%12)
		sparkle := lipgloss.NewStyle().Foreground(theme.ArcadeMagenta).Render(drift + glyph)
		book = sparkle + "\n" + book
	}
	sections = append(sections, book)

	if w.elapsed >= bannerStart {
		banner := components.BannerArt
		if width < components.BannerWidth+2 {
			banner = components.BannerCompact
		}
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(banner),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Every word is a level."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
