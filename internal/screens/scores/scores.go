// Package scores lists the player's recorded rounds.
package scores

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/layout"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

const recentLimit = 50

type scoresLoadedMsg struct {
	Recent []store.ScoreRecord
	Totals []store.ModeTotal
	Err    error
}

// ScoresScreen displays per-mode totals and recent rounds.
type ScoresScreen struct {
	repo     store.ScoreRepo
	player   string
	recent   []store.ScoreRecord
	totals   []store.ModeTotal
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ScoresScreen)(nil)
var _ screen.KeyHintProvider = (*ScoresScreen)(nil)

// New creates a scores screen for player.
func New(repo store.ScoreRepo, player string) *ScoresScreen {
	return &ScoresScreen{repo: repo, player: player}
}

func (s *ScoresScreen) Init() tea.Cmd {
	repo, player := s.repo, s.player
	return func() tea.Msg {
		ctx := context.Background()

		recent, err := repo.RecentScores(ctx, store.ScoreQuery{Player: player, Limit: recentLimit})
		if err != nil {
			return scoresLoadedMsg{Err: err}
		}
		totals, err := repo.ModeTotals(ctx, player)
		if err != nil {
			return scoresLoadedMsg{Recent: recent}
		}
		return scoresLoadedMsg{Recent: recent, Totals: totals}
	}
}

func (s *ScoresScreen) Title() string {
	return "Scores"
}

func (s *ScoresScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.recent = msg.Recent
			s.totals = msg.Totals
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.recent)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *ScoresScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading scores...")
	}
	if len(s.recent) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rounds yet. Go play!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for _, t := range s.totals {
		line := fmt.Sprintf("%-20s %3d rounds  %5d pts", engine.Mode(t.Mode).Title(), t.Rounds, t.Points)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.ModeColor(t.Mode)).Bold(true).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))))
	b.WriteString("\n\n")

	// Keep the selection on screen.
	rows := max(height-len(s.totals)-6, 3)
	start := max(0, s.selected-rows+1)
	end := min(len(s.recent), start+rows)

	for i := start; i < end; i++ {
		rec := s.recent[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		penalty := ""
		if rec.Penalty {
			penalty = "  penalty"
		}
		line := fmt.Sprintf("%s%s  %-20s %-8s G%s  %4d pts%s",
			prefix, rec.CreatedAt.Format("Jan 02 15:04"), engine.Mode(rec.Mode).Title(),
			rec.Subject, rec.Grade, rec.Points, penalty)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
