package engine

import (
	"context"
	"time"

	"github.com/linguoquest/linguoquest/internal/content"
)

// Escape unlocks a fixed number of doors against one global countdown.
// A wrong answer costs time and the same door must be answered again.
type Escape struct {
	Doors          int
	Budget         time.Duration
	Tick           time.Duration
	MissPenalty    time.Duration
	BaseReward     int
	FlawlessBonus  int
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

func DefaultEscape() Escape {
	return Escape{
		Doors:          7,
		Budget:         600 * time.Second,
		Tick:           time.Second,
		MissPenalty:    15 * time.Second,
		BaseReward:     100,
		FlawlessBonus:  20,
		CorrectDelay:   1200 * time.Millisecond,
		IncorrectDelay: 1500 * time.Millisecond,
	}
}

func (Escape) Mode() Mode { return ModeEscape }

func (e Escape) Load(ctx context.Context, sup content.Supplier, p Params) (Deck, error) {
	return loadQuestions(ctx, sup, p, e.Doors)
}

func (e Escape) Begin(s *Stats, _ Picker) {
	s.Remaining = e.Budget
}

func (e Escape) Clock() ClockSpec {
	return ClockSpec{Scope: ClockRound, Tick: e.Tick, InFeedback: true}
}

func (Escape) OnCorrect(s *Stats) {
	s.Streak++
}

func (e Escape) OnIncorrect(s *Stats) {
	s.Streak = 0
	s.WrongCount++
	s.Remaining = max(0, s.Remaining-e.MissPenalty)
}

func (Escape) RepeatOnMiss() bool { return true }

func (e Escape) FeedbackDelay(correct bool) time.Duration {
	if correct {
		return e.CorrectDelay
	}
	return e.IncorrectDelay
}

func (Escape) IsTerminal(s Stats) bool {
	return s.Remaining <= 0
}

func (e Escape) Reward(s Stats) Outcome {
	if s.Remaining <= 0 {
		return Outcome{Points: 0, Penalty: true}
	}
	pts := e.BaseReward
	if s.WrongCount == 0 {
		pts += e.FlawlessBonus
	}
	return Outcome{Points: pts, Penalty: s.WrongCount > 0}
}

// Battle whittles down a boss over a fixed number of rounds while the
// player has a few lives to spare.
type Battle struct {
	Rounds         int
	BossHP         int
	Damage         int
	Lives          int
	BaseReward     int
	FlawlessBonus  int
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

func DefaultBattle() Battle {
	return Battle{
		Rounds:         10,
		BossHP:         100,
		Damage:         10,
		Lives:          3,
		BaseReward:     100,
		FlawlessBonus:  20,
		CorrectDelay:   1200 * time.Millisecond,
		IncorrectDelay: 1500 * time.Millisecond,
	}
}

func (Battle) Mode() Mode { return ModeBattle }

func (b Battle) Load(ctx context.Context, sup content.Supplier, p Params) (Deck, error) {
	return loadQuestions(ctx, sup, p, b.Rounds)
}

func (b Battle) Begin(s *Stats, pick Picker) {
	s.BossHP = b.BossHP
	s.Lives = b.Lives
	boss := bosses[pick.IntN(len(bosses))]
	s.Boss = &boss
}

func (Battle) Clock() ClockSpec { return ClockSpec{} }

func (b Battle) OnCorrect(s *Stats) {
	s.BossHP = max(0, s.BossHP-b.Damage)
	s.Streak++
}

// OnIncorrect costs a life. Missing the final round loses the battle
// even with lives to spare.
func (Battle) OnIncorrect(s *Stats) {
	s.Streak = 0
	s.Lives = max(0, s.Lives-1)
	s.WrongCount++
	if s.Lives == 0 || s.LastItem {
		s.Defeated = true
	}
}

func (Battle) RepeatOnMiss() bool { return false }

func (b Battle) FeedbackDelay(correct bool) time.Duration {
	if correct {
		return b.CorrectDelay
	}
	return b.IncorrectDelay
}

func (Battle) IsTerminal(s Stats) bool {
	return s.Lives <= 0 || s.Defeated
}

// Reward pays the base reward for a won battle, plus the bonus when no
// life was lost. A won battle carries no penalty.
func (b Battle) Reward(s Stats) Outcome {
	if s.Lives <= 0 || s.Defeated {
		return Outcome{Points: 0, Penalty: true}
	}
	pts := b.BaseReward
	if s.Lives == b.Lives {
		pts += b.FlawlessBonus
	}
	return Outcome{Points: pts, Penalty: false}
}

// Story walks a branching narrative. Every wrong turn costs points but
// the story always follows the chosen branch.
type Story struct {
	StartPoints int
	MissPenalty int
	Delay       time.Duration
}

func DefaultStory() Story {
	return Story{StartPoints: 100, MissPenalty: 20, Delay: 1500 * time.Millisecond}
}

func (Story) Mode() Mode { return ModeStory }

func (Story) Load(ctx context.Context, sup content.Supplier, p Params) (Deck, error) {
	g, err := sup.FetchStoryGraph(ctx, p.Subject, p.Grade)
	if err != nil {
		return nil, err
	}
	return newStoryDeck(g)
}

func (st Story) Begin(s *Stats, _ Picker) {
	s.Points = st.StartPoints
}

func (Story) Clock() ClockSpec { return ClockSpec{} }

func (Story) OnCorrect(s *Stats) {
	s.Streak++
}

func (st Story) OnIncorrect(s *Stats) {
	s.Streak = 0
	s.WrongCount++
	s.Points = max(0, s.Points-st.MissPenalty)
}

func (Story) RepeatOnMiss() bool { return false }

func (st Story) FeedbackDelay(bool) time.Duration { return st.Delay }

func (Story) IsTerminal(Stats) bool { return false }

func (st Story) Reward(s Stats) Outcome {
	return Outcome{Points: s.Points, Penalty: s.Points < st.StartPoints}
}

// Sprint races through a fixed number of items with a per-item countdown
// that shrinks as the streak grows.
type Sprint struct {
	Items        int
	Budget       time.Duration
	Tick         time.Duration
	StreakStep   int
	Shrink       time.Duration
	MinBudget    time.Duration
	BaseReward   int
	TargetStreak int
	Delay        time.Duration
}

func DefaultSprint() Sprint {
	return Sprint{
		Items:        15,
		Budget:       10 * time.Second,
		Tick:         100 * time.Millisecond,
		StreakStep:   3,
		Shrink:       1500 * time.Millisecond,
		MinBudget:    3 * time.Second,
		BaseReward:   100,
		TargetStreak: 10,
		Delay:        800 * time.Millisecond,
	}
}

func (Sprint) Mode() Mode { return ModeSprint }

func (sp Sprint) Load(ctx context.Context, sup content.Supplier, p Params) (Deck, error) {
	return loadQuestions(ctx, sup, p, sp.Items)
}

func (sp Sprint) Begin(s *Stats, _ Picker) {
	s.Budget = sp.Budget
	s.Remaining = sp.Budget
}

func (sp Sprint) Clock() ClockSpec {
	return ClockSpec{Scope: ClockItem, Tick: sp.Tick}
}

func (sp Sprint) OnCorrect(s *Stats) {
	s.Streak++
	if sp.StreakStep > 0 && s.Streak%sp.StreakStep == 0 {
		s.Budget = max(sp.MinBudget, s.Budget-sp.Shrink)
	}
}

func (sp Sprint) OnIncorrect(s *Stats) {
	s.Streak = 0
	s.WrongCount++
	s.Budget = sp.Budget
}

func (Sprint) RepeatOnMiss() bool { return false }

func (sp Sprint) FeedbackDelay(bool) time.Duration { return sp.Delay }

func (Sprint) IsTerminal(Stats) bool { return false }

func (sp Sprint) Reward(s Stats) Outcome {
	return Outcome{Points: sp.BaseReward, Penalty: s.Streak < sp.TargetStreak}
}
