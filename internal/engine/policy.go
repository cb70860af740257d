package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/linguoquest/linguoquest/internal/content"
)

// Params are the construction parameters of a round.
type Params struct {
	Subject content.Subject
	Grade   content.Grade
}

// Outcome is the result reported on completion.
type Outcome struct {
	Points  int  `json:"points"`
	Penalty bool `json:"penalty"`
}

// Stats are the per-round accumulators. Policies read and update them;
// which fields matter depends on the mode.
type Stats struct {
	// Remaining is the countdown of clocked modes.
	Remaining time.Duration `json:"remaining"`
	// Budget is the per-item allowance in Sprint.
	Budget time.Duration `json:"budget"`

	WrongCount int   `json:"wrong_count"`
	Lives      int   `json:"lives"`
	BossHP     int   `json:"boss_hp"`
	Boss       *Boss `json:"boss,omitempty"`
	Streak     int   `json:"streak"`
	Points     int   `json:"points"`

	Answered int `json:"answered"`
	Correct  int `json:"correct"`

	// LastItem is set by the engine while the final item of a fixed-length
	// deck is being resolved.
	LastItem bool `json:"last_item"`
	// Defeated marks a round lost before its normal end.
	Defeated bool `json:"defeated"`
}

// ClockScope says what a countdown measures.
type ClockScope int

const (
	ClockNone  ClockScope = iota
	ClockRound            // one countdown for the whole round
	ClockItem             // restarted from Stats.Budget for every item
)

// ClockSpec describes a mode's countdown.
type ClockSpec struct {
	Scope ClockScope
	Tick  time.Duration
	// InFeedback keeps the countdown running while feedback is shown.
	InFeedback bool
}

// Policy holds everything that differs between modes.
type Policy interface {
	Mode() Mode

	// Load fetches the round's content. It runs off the event loop.
	Load(ctx context.Context, sup content.Supplier, p Params) (Deck, error)

	// Begin initialises the accumulators once content has loaded.
	Begin(s *Stats, pick Picker)

	Clock() ClockSpec

	OnCorrect(s *Stats)
	// OnIncorrect also handles countdown expiry.
	OnIncorrect(s *Stats)

	// RepeatOnMiss presents the same item again after a miss.
	RepeatOnMiss() bool

	FeedbackDelay(correct bool) time.Duration

	// IsTerminal is checked when feedback ends, before advancing.
	IsTerminal(s Stats) bool

	Reward(s Stats) Outcome
}

// PolicyFor returns the default policy of a mode.
func PolicyFor(m Mode) (Policy, error) {
	switch m {
	case ModeEscape:
		return DefaultEscape(), nil
	case ModeBattle:
		return DefaultBattle(), nil
	case ModeStory:
		return DefaultStory(), nil
	case ModeSprint:
		return DefaultSprint(), nil
	}
	return nil, fmt.Errorf("unknown mode %q", m)
}

func loadQuestions(ctx context.Context, sup content.Supplier, p Params, count int) (Deck, error) {
	items, err := sup.FetchQuestions(ctx, p.Subject, p.Grade, count)
	if err != nil {
		return nil, err
	}
	return newQuestionDeck(items)
}
