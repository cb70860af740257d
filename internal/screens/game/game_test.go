package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/screens/result"
	"github.com/linguoquest/linguoquest/internal/store"
	"github.com/linguoquest/linguoquest/internal/ui/teaclock"
)

// harness plays the role of the bubbletea runtime: it runs commands in
// order and feeds their messages back to the screen.
type harness struct {
	t        *testing.T
	screen   *GameScreen
	queue    []tea.Cmd
	nav      []tea.Msg
	recorded []result.RecordedMsg
}

func newHarness(t *testing.T, s *GameScreen) *harness {
	h := &harness{t: t, screen: s}
	h.enqueue(s.Init())
	return h
}

func (h *harness) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		h.queue = append(h.queue, cmd)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.screen.Update(msg)
	h.enqueue(cmd)
}

func (h *harness) key(k string) {
	r := []rune(k)[0]
	h.send(tea.KeyPressMsg{Code: r, Text: k})
}

// pump runs queued commands until cond holds or the queue is empty.
func (h *harness) pump(cond func() bool) {
	h.t.Helper()
	for steps := 0; len(h.queue) > 0; steps++ {
		if cond != nil && cond() {
			return
		}
		require.Less(h.t, steps, 2000, "runaway command loop")
		cmd := h.queue[0]
		h.queue = h.queue[1:]
		h.dispatch(cmd())
	}
}

func (h *harness) dispatch(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.enqueue(cmd)
		}
	case teaclock.Msg:
		h.enqueue(msg.Apply())
	case result.RecordedMsg:
		h.recorded = append(h.recorded, msg)
	case router.ReplaceScreenMsg, router.PopScreenMsg, router.PopToRootMsg:
		h.nav = append(h.nav, msg)
	default:
		h.send(msg)
	}
}

func (h *harness) phase() engine.Phase {
	return h.screen.snap.Phase
}

func (h *harness) inPhase(p engine.Phase) func() bool {
	return func() bool { return h.phase() == p }
}

func questions(n int) []content.QuestionItem {
	out := make([]content.QuestionItem, n)
	for i := range out {
		out[i] = content.QuestionItem{
			ID:            fmt.Sprintf("q%d", i+1),
			Prompt:        "Pick the noun",
			Options:       []string{"run", "table", "quickly"},
			CorrectOption: "table",
		}
	}
	return out
}

func quickBattle() engine.Battle {
	b := engine.DefaultBattle()
	b.Rounds = 2
	b.CorrectDelay = time.Millisecond
	b.IncorrectDelay = time.Millisecond
	return b
}

func newLauncher(t *testing.T, sup content.Supplier, opts ...arcade.Option) (*arcade.Launcher, store.ScoreRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts = append([]arcade.Option{
		arcade.WithScores(st.ScoreRepo()),
		arcade.WithPicker(func() engine.Picker { return engine.FixedPicker(0) }),
	}, opts...)
	return arcade.New(sup, "asha", opts...), st.ScoreRepo()
}

func request(mode engine.Mode) arcade.Request {
	return arcade.Request{Mode: mode, Subject: content.SubjectEnglish, Grade: content.Grade6}
}

func TestGameScreen_BattleToResult(t *testing.T) {
	l, _ := newLauncher(t, &content.Static{Questions: questions(2)}, arcade.WithPolicy(quickBattle()))
	h := newHarness(t, New(l, request(engine.ModeBattle)))

	assert.Contains(t, h.screen.View(80, 24), "Preparing")
	h.pump(h.inPhase(engine.PhaseActive))
	require.Equal(t, engine.PhaseActive, h.phase())
	assert.Contains(t, h.screen.View(80, 24), "The Exam Phantom")

	h.key("2")
	h.pump(func() bool { return h.screen.snap.Stats.Answered == 1 && h.phase() == engine.PhaseActive })
	assert.Equal(t, 90, h.screen.snap.Stats.BossHP)

	h.key("2")
	h.pump(nil)

	require.Len(t, h.nav, 1)
	replace, ok := h.nav[0].(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", h.nav[0])
	res, ok := replace.Screen.(*result.ResultScreen)
	require.True(t, ok)
	assert.Contains(t, res.View(80, 24), "120 points")

	require.Len(t, h.recorded, 1)
	require.NoError(t, h.recorded[0].Err)
	assert.Equal(t, 120, h.recorded[0].Record.Points)
}

func TestGameScreen_FeedbackRevealsAnswer(t *testing.T) {
	battle := quickBattle()
	battle.IncorrectDelay = time.Hour
	l, _ := newLauncher(t, &content.Static{Questions: questions(2)}, arcade.WithPolicy(battle))
	h := newHarness(t, New(l, request(engine.ModeBattle)))
	h.pump(h.inPhase(engine.PhaseActive))

	h.key("1")
	h.pump(h.inPhase(engine.PhaseFeedback))
	require.Equal(t, engine.PhaseFeedback, h.phase())

	view := h.screen.View(80, 24)
	assert.Contains(t, view, "Not quite")
	assert.Equal(t, 2, h.screen.snap.Stats.Lives)

	// Answers during feedback go nowhere.
	h.key("2")
	assert.Equal(t, 1, h.screen.snap.Stats.Answered)
}

func TestGameScreen_EscapeCancels(t *testing.T) {
	l, scores := newLauncher(t, &content.Static{Questions: questions(7)})
	s := New(l, request(engine.ModeEscape))
	h := newHarness(t, s)
	h.pump(h.inPhase(engine.PhaseActive))
	require.Equal(t, engine.PhaseActive, h.phase())
	assert.Contains(t, s.View(80, 24), "Door 1/7")
	assert.Contains(t, s.View(80, 24), "10:00")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, engine.PhaseCancelled, h.phase())

	var popped bool
	for _, msg := range flatten(cmd) {
		if _, ok := msg.(router.PopScreenMsg); ok {
			popped = true
		}
	}
	assert.True(t, popped)

	s.Close()
	recent, err := scores.RecentScores(t.Context(), store.ScoreQuery{})
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestGameScreen_ContentErrorRetry(t *testing.T) {
	sup := &content.Static{Err: content.ErrEmpty}
	l, _ := newLauncher(t, sup, arcade.WithPolicy(quickBattle()))
	h := newHarness(t, New(l, request(engine.ModeBattle)))

	h.pump(h.inPhase(engine.PhaseContentError))
	require.Equal(t, engine.PhaseContentError, h.phase())
	assert.Contains(t, h.screen.View(80, 24), "Press R to try again")

	sup.Err = nil
	sup.Questions = questions(2)
	h.key("r")
	h.pump(h.inPhase(engine.PhaseActive))
	assert.Equal(t, engine.PhaseActive, h.phase())
}

func TestGameScreen_StoryTypewriter(t *testing.T) {
	story := &content.StoryGraph{
		StartNodeID: "start",
		Nodes: []content.StoryNode{{
			ID:   "start",
			Text: "A fox waits at the gate.",
			Choices: []content.Choice{
				{Text: "Greet the fox", IsCorrect: true, NextNodeID: "end"},
				{Text: "Run away", NextNodeID: "start"},
			},
		}},
	}
	policy := engine.DefaultStory()
	policy.Delay = time.Millisecond
	l, _ := newLauncher(t, &content.Static{Story: story}, arcade.WithPolicy(policy))
	h := newHarness(t, New(l, request(engine.ModeStory)))
	h.pump(h.inPhase(engine.PhaseActive))

	require.True(t, h.screen.typing())
	assert.NotContains(t, h.screen.View(80, 24), "Greet the fox")

	// The first key finishes the passage instead of answering.
	h.send(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, h.screen.typing())
	assert.Equal(t, 0, h.screen.snap.Stats.Answered)
	view := h.screen.View(80, 24)
	assert.Contains(t, view, "A fox waits at the gate.")
	assert.Contains(t, view, "Greet the fox")

	h.key("1")
	h.pump(nil)
	require.Len(t, h.nav, 1)
	replace := h.nav[0].(router.ReplaceScreenMsg)
	assert.True(t, strings.Contains(replace.Screen.View(80, 24), "The End"))
}

func TestGameScreen_InvalidRequest(t *testing.T) {
	l, _ := newLauncher(t, &content.Static{})
	s := New(l, arcade.Request{Mode: "chess"})
	assert.Nil(t, s.Init())
	assert.Contains(t, s.View(80, 24), "Could not start the round")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

// flatten runs cmd and any batch it returns, without running timers.
func flatten(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, flatten(c)...)
		}
	default:
		out = append(out, msg)
	}
	return out
}
