// Package result shows the outcome of a finished round.
package result

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/layout"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// RecordedMsg reports the score ledger write for the round.
type RecordedMsg struct {
	Record store.ScoreRecord
	Err    error
}

// ResultScreen displays a round outcome.
type ResultScreen struct {
	req     arcade.Request
	outcome engine.Outcome
	stats   engine.Stats

	recorded *store.ScoreRecord
	saveErr  error
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscapeHandler = (*ResultScreen)(nil)

// New creates a result screen.
func New(req arcade.Request, out engine.Outcome, stats engine.Stats) *ResultScreen {
	return &ResultScreen{req: req, outcome: out, stats: stats}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Round Over"
}

func (s *ResultScreen) HandlesEscape() bool { return true }

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

// Recorded returns the ledger entry once it has been written.
func (s *ResultScreen) Recorded() (store.ScoreRecord, bool) {
	if s.recorded == nil {
		return store.ScoreRecord{}, false
	}
	return *s.recorded, true
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err
			return s, nil
		}
		rec := msg.Record
		s.recorded = &rec
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	headline, fg := s.headline()
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(fmt.Sprintf("★ %d points", s.outcome.Points)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s · Grade %s", s.req.Mode.Title(), s.req.Subject, s.req.Grade)))
	b.WriteString("\n\n")

	statsLines := fmt.Sprintf("Answered: %d    Correct: %d", s.stats.Answered, s.stats.Correct)
	if detail := s.modeDetail(); detail != "" {
		statsLines += "\n" + detail
	}
	card := components.ArcadeCard(
		lipgloss.NewStyle().Foreground(theme.Text).Render(statsLines),
		min(width-4, 44),
		theme.ModeColor(string(s.req.Mode)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	var status string
	switch {
	case s.saveErr != nil:
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("Score could not be saved")
	case s.recorded != nil:
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("Saved as entry #%d", s.recorded.Sequence))
	case s.outcome.Points == 0:
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Render("No points this time")
	}
	if status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, status))
	}

	return b.String()
}

func (s *ResultScreen) headline() (string, color.Color) {
	if s.outcome.Penalty {
		switch s.req.Mode {
		case engine.ModeEscape:
			return "The clock ran out!", theme.Error
		case engine.ModeBattle:
			return "The boss got away!", theme.Error
		}
		return "Round over", theme.Error
	}
	switch s.req.Mode {
	case engine.ModeEscape:
		return "You escaped!", theme.Success
	case engine.ModeBattle:
		return "Boss defeated!", theme.Success
	case engine.ModeStory:
		return "The End", theme.Success
	}
	return "Sprint complete!", theme.Success
}

func (s *ResultScreen) modeDetail() string {
	switch s.req.Mode {
	case engine.ModeEscape:
		return fmt.Sprintf("Misses: %d", s.stats.WrongCount)
	case engine.ModeBattle:
		return fmt.Sprintf("Lives left: %d", s.stats.Lives)
	}
	return ""
}
