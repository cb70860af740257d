package game

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screen"
	"github.com/linguoquest/linguoquest/internal/screens/result"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/layout"
	"github.com/linguoquest/linguoquest/internal/ui/teaclock"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// typeInterval is the story typewriter speed.
const typeInterval = 30 * time.Millisecond

// GameScreen plays one round. The engine runs inside Update through a
// teaclock.Scheduler.
type GameScreen struct {
	launcher *arcade.Launcher
	req      arcade.Request
	sched    *teaclock.Scheduler
	round    *arcade.Round
	cancel   context.CancelFunc
	errMsg   string

	snap    engine.Snapshot
	cardKey string
	choice  components.MultiChoice
	spin    spinner.Model
	maxHP   int

	typed   int
	typeLen int
	typeSeq int
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.EscapeHandler = (*GameScreen)(nil)
var _ screen.Closer = (*GameScreen)(nil)

// New creates a game screen for req. The round is launched by Init.
func New(launcher *arcade.Launcher, req arcade.Request) *GameScreen {
	return &GameScreen{
		launcher: launcher,
		req:      req,
		sched:    teaclock.New(),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ModeColor(string(req.Mode)))),
		),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	round, err := s.launcher.Launch(s.req, s.sched, arcade.Observer{
		OnChange:   s.onChange,
		OnComplete: s.onComplete,
		OnRecorded: s.onRecorded,
	})
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.round = round
	s.snap = round.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	round.Start(ctx)
	return tea.Batch(s.sched.Drain(), s.spin.Tick)
}

func (s *GameScreen) Title() string {
	return s.req.Mode.Title()
}

func (s *GameScreen) HandlesEscape() bool { return true }

// Close abandons an unfinished round when the screen leaves the stack.
func (s *GameScreen) Close() {
	if s.round != nil && !s.round.Phase().Done() {
		s.round.Cancel()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.sched.Close()
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch s.snap.Phase {
	case engine.PhaseContentError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case engine.PhaseActive:
		if s.typing() {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Skip"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.round == nil {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
			return s, popCmd
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.snap.Phase != engine.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case typeTickMsg:
		if msg.seq != s.typeSeq || !s.typing() {
			return s, nil
		}
		s.typed++
		return s, s.typeTick()

	case components.ChoiceMsg:
		// A timeout may have closed the window first; the engine rejects it.
		_ = s.round.Submit(msg.Index)
		return s, s.sched.Drain()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		s.round.Cancel()
		return s, tea.Batch(s.sched.Drain(), popCmd)
	}

	switch s.snap.Phase {
	case engine.PhaseContentError:
		if key == "r" && s.round.Retry() {
			return s, tea.Batch(s.sched.Drain(), s.spin.Tick)
		}
	case engine.PhaseActive:
		if s.typing() {
			if key == "enter" || key == "space" {
				s.typed = s.typeLen
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GameScreen) onChange(snap engine.Snapshot) {
	s.snap = snap
	if snap.Stats.BossHP > s.maxHP {
		s.maxHP = snap.Stats.BossHP
	}

	switch snap.Phase {
	case engine.PhaseActive:
		key := fmt.Sprintf("%s#%d", snap.Card.ID, snap.Stats.Answered)
		if key == s.cardKey {
			return
		}
		s.cardKey = key
		s.choice = components.NewMultiChoice("", snap.Card.Options)
		if snap.Mode == engine.ModeStory {
			s.typeSeq++
			s.typed = 0
			s.typeLen = utf8.RuneCountInString(snap.Card.Prompt)
			s.sched.Emit(s.typeTick())
		}
	case engine.PhaseFeedback:
		if fb := snap.Feedback; fb != nil {
			s.choice.Reveal(fb.Choice, fb.CorrectIndex)
		}
	}
}

func (s *GameScreen) onComplete(out engine.Outcome) {
	next := result.New(s.req, out, s.snap.Stats)
	s.sched.Emit(func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
}

func (s *GameScreen) onRecorded(rec store.ScoreRecord, err error) {
	s.sched.Emit(func() tea.Msg { return result.RecordedMsg{Record: rec, Err: err} })
}

func (s *GameScreen) typing() bool {
	return s.snap.Mode == engine.ModeStory && s.typed < s.typeLen
}

func (s *GameScreen) typeTick() tea.Cmd {
	seq := s.typeSeq
	return tea.Tick(typeInterval, func(time.Time) tea.Msg { return typeTickMsg{seq: seq} })
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
