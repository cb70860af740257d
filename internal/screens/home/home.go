// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/screens/scores"
	"github.com/linguoquest/linguoquest/internal/screens/setup"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/components"
)

// TotalsMsg carries the player's ledger totals. The app header reads it
// too.
type TotalsMsg struct {
	Player      string
	Points      int
	Rounds      int
	BestMode    engine.Mode
	LastPenalty bool
	HasLast     bool
	Err         error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	launcher *arcade.Launcher
	scores   store.ScoreRepo
	offline  bool
	menu     components.Menu
	totals   TotalsMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates the home screen. scores may be nil when no ledger is open;
// offline marks a launcher without an LLM behind it.
func New(launcher *arcade.Launcher, scoresRepo store.ScoreRepo, offline bool) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PLAY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(launcher)}
			}
		}},
		{Label: "SCORES", Disabled: scoresRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: scores.New(scoresRepo, launcher.Player())}
			}
		}},
		{Label: "EXIT GAME", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		launcher: launcher,
		scores:   scoresRepo,
		offline:  offline,
		menu:     components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadTotals()
}

// Refresh reloads totals after a round.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadTotals()
}

func (h *HomeScreen) loadTotals() tea.Cmd {
	if h.scores == nil {
		return nil
	}
	repo, player := h.scores, h.launcher.Player()
	return func() tea.Msg {
		return LoadTotals(context.Background(), repo, player)
	}
}

// LoadTotals summarizes player's ledger.
func LoadTotals(ctx context.Context, repo store.ScoreRepo, player string) TotalsMsg {
	msg := TotalsMsg{Player: player}

	modes, err := repo.ModeTotals(ctx, player)
	if err != nil {
		msg.Err = err
		return msg
	}
	best := 0
	for _, m := range modes {
		msg.Points += m.Points
		msg.Rounds += m.Rounds
		if m.Points > best {
			best = m.Points
			msg.BestMode = engine.Mode(m.Mode)
		}
	}

	last, err := repo.RecentScores(ctx, store.ScoreQuery{Player: player, Limit: 1})
	if err != nil {
		msg.Err = err
		return msg
	}
	if len(last) == 1 {
		msg.HasLast = true
		msg.LastPenalty = last[0].Penalty
	}
	return msg
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if totals, ok := msg.(TotalsMsg); ok {
		if totals.Err == nil {
			h.totals = totals
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case !h.totals.HasLast:
		return MascotIdle
	case h.totals.LastPenalty:
		return MascotAlert
	}
	return MascotCelebrating
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	best := ""
	if h.totals.BestMode != "" {
		best = h.totals.BestMode.Title()
	}
	sections = append(sections, renderStatsBar(h.totals.Points, h.totals.Rounds, best, cw, compact))
	if h.offline {
		sections = append(sections, renderOfflineBanner(cw))
	}
	sections = append(sections, renderArcadeMenu(h.menu, cw, termHeight < 24))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
