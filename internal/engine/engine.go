// Package engine runs one round of a quiz game: loading content, taking
// answers, showing feedback and reporting exactly one completion or
// cancellation. Mode rules live in Policy implementations.
//
// An Engine is not safe for concurrent use. Every method must be called
// from the goroutine that drives its clock.Scheduler.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/clock"
	"github.com/linguoquest/linguoquest/internal/content"
)

// ErrInvalidSubmission is returned by Submit outside the answer window.
var ErrInvalidSubmission = errors.New("invalid submission")

// Hooks observe a round. OnComplete and OnCancel are mutually exclusive
// and fire at most once.
type Hooks struct {
	OnComplete func(Outcome)
	OnCancel   func()
	OnChange   func(Snapshot)
}

// Feedback describes the last resolved answer.
type Feedback struct {
	Choice       int    `json:"choice"`
	Correct      bool   `json:"correct"`
	TimedOut     bool   `json:"timed_out"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation,omitempty"`
}

// Snapshot is a read-only view of a round.
type Snapshot struct {
	Mode     Mode      `json:"mode"`
	Phase    Phase     `json:"phase"`
	Card     *Card     `json:"card,omitempty"`
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	Stats    Stats     `json:"stats"`
	Feedback *Feedback `json:"feedback,omitempty"`
	Outcome  *Outcome  `json:"outcome,omitempty"`
	Err      error     `json:"-"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithPicker sets the source of randomized flavor such as the Battle boss.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.pick = p
		}
	}
}

// timerSlot holds at most one pending callback. Bumping gen turns any
// callback already queued on the loop into a no-op.
type timerSlot struct {
	timer clock.Timer
	gen   int
}

// Engine is the round state machine.
type Engine struct {
	policy   Policy
	supplier content.Supplier
	sched    clock.Scheduler
	params   Params
	hooks    Hooks
	log      *zap.Logger
	pick     Picker

	ctx     context.Context
	started bool

	phase    Phase
	deck     Deck
	stats    Stats
	err      error
	feedback *Feedback
	outcome  *Outcome

	fetchGen    int
	cancelFetch context.CancelFunc

	tick  timerSlot
	pause timerSlot
}

// New creates an engine in the Loading phase. Nothing happens until Start.
func New(policy Policy, supplier content.Supplier, sched clock.Scheduler, params Params, hooks Hooks, opts ...Option) *Engine {
	e := &Engine{
		policy:   policy,
		supplier: supplier,
		sched:    sched,
		params:   params,
		hooks:    hooks,
		log:      zap.NewNop(),
		phase:    PhaseLoading,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pick == nil {
		e.pick = NewPicker(0)
	}
	e.log = e.log.Named("engine").With(
		zap.String("mode", string(policy.Mode())),
		zap.String("subject", string(params.Subject)),
		zap.String("grade", string(params.Grade)),
	)
	return e
}

// Mode returns the policy's mode.
func (e *Engine) Mode() Mode {
	return e.policy.Mode()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Start issues the content request. ctx bounds every fetch of the round,
// including retries. It reports false if the round was already started
// or cancelled.
func (e *Engine) Start(ctx context.Context) bool {
	if e.started || e.phase != PhaseLoading {
		return false
	}
	e.started = true
	e.ctx = ctx
	e.load()
	return true
}

// Retry re-issues the content request after a failure.
func (e *Engine) Retry() bool {
	if e.phase != PhaseContentError {
		return false
	}
	e.log.Info("retrying content fetch")
	e.load()
	return true
}

// Submit answers the current item. Only the first submission per item is
// accepted; anything outside the answer window returns
// ErrInvalidSubmission and changes nothing.
func (e *Engine) Submit(choice int) error {
	if e.phase != PhaseActive {
		e.log.Debug("submission ignored", zap.Stringer("phase", e.phase), zap.Int("choice", choice))
		return fmt.Errorf("%w: round is %s", ErrInvalidSubmission, e.phase)
	}
	card := e.deck.Card()
	if choice < 0 || choice >= len(card.Options) {
		e.log.Debug("submission out of range", zap.Int("choice", choice), zap.Int("options", len(card.Options)))
		return fmt.Errorf("%w: choice %d of %d", ErrInvalidSubmission, choice, len(card.Options))
	}
	e.resolve(card, choice, false)
	return nil
}

// Cancel abandons the round without a score. It is accepted until the
// round terminates.
func (e *Engine) Cancel() bool {
	if e.phase.Done() {
		return false
	}
	e.stopAll()
	e.phase = PhaseCancelled
	e.log.Info("round cancelled", zap.Int("answered", e.stats.Answered))
	e.emit()
	if e.hooks.OnCancel != nil {
		e.hooks.OnCancel()
	}
	return true
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:  e.policy.Mode(),
		Phase: e.phase,
		Stats: e.stats,
		Err:   e.err,
	}
	if e.stats.Boss != nil {
		b := *e.stats.Boss
		s.Stats.Boss = &b
	}
	if e.deck != nil {
		s.Index = e.deck.Position()
		s.Total = e.deck.Len()
		if e.phase == PhaseActive || e.phase == PhaseFeedback {
			c := e.deck.Card()
			s.Card = &c
		}
	}
	if e.feedback != nil {
		fb := *e.feedback
		s.Feedback = &fb
	}
	if e.outcome != nil {
		out := *e.outcome
		s.Outcome = &out
	}
	return s
}

func (e *Engine) load() {
	e.phase = PhaseLoading
	e.err = nil
	e.fetchGen++
	gen := e.fetchGen

	ctx, cancel := context.WithCancel(e.ctx)
	e.cancelFetch = cancel
	policy, supplier, params := e.policy, e.supplier, e.params

	e.sched.Go(func() func() {
		deck, err := policy.Load(ctx, supplier, params)
		return func() {
			cancel()
			if gen != e.fetchGen {
				return
			}
			e.cancelFetch = nil
			e.loaded(deck, err)
		}
	})
	e.emit()
}

func (e *Engine) loaded(deck Deck, err error) {
	if err != nil {
		if !errors.Is(err, content.ErrContentUnavailable) {
			err = fmt.Errorf("%w: %w", content.ErrContentUnavailable, err)
		}
		e.phase = PhaseContentError
		e.err = err
		e.log.Warn("content unavailable", zap.Error(err))
		e.emit()
		return
	}

	e.deck = deck
	e.stats = Stats{}
	e.policy.Begin(&e.stats, e.pick)
	e.log.Info("round started", zap.Int("items", deck.Len()))
	e.activate()
}

func (e *Engine) activate() {
	e.phase = PhaseActive
	e.feedback = nil

	spec := e.policy.Clock()
	switch spec.Scope {
	case ClockItem:
		e.stats.Remaining = e.stats.Budget
		e.armTick(spec)
	case ClockRound:
		if e.tick.timer == nil && e.stats.Remaining > 0 {
			e.armTick(spec)
		}
	}
	e.emit()
}

func (e *Engine) armTick(spec ClockSpec) {
	e.arm(&e.tick, spec.Tick, e.onTick)
}

func (e *Engine) onTick() {
	spec := e.policy.Clock()
	running := e.phase == PhaseActive || (e.phase == PhaseFeedback && spec.InFeedback)
	if !running {
		return
	}

	e.stats.Remaining = max(0, e.stats.Remaining-spec.Tick)
	if e.stats.Remaining > 0 {
		e.armTick(spec)
		e.emit()
		return
	}

	e.log.Debug("countdown expired", zap.Stringer("phase", e.phase))
	if e.phase == PhaseActive {
		e.resolve(e.deck.Card(), NoAnswer, true)
		return
	}
	// Expired during feedback; the round ends when feedback does.
	e.emit()
}

// resolve moves from Active to Feedback. Expiry arrives here with
// NoAnswer, exactly like a wrong answer.
func (e *Engine) resolve(card Card, choice int, timedOut bool) {
	correct := !timedOut && card.IsCorrect(choice)

	e.stats.LastItem = e.deck.Len() > 0 && e.deck.Position() == e.deck.Len()-1
	e.stats.Answered++
	if correct {
		e.stats.Correct++
		e.policy.OnCorrect(&e.stats)
	} else {
		e.policy.OnIncorrect(&e.stats)
	}

	e.phase = PhaseFeedback
	e.feedback = &Feedback{
		Choice:       choice,
		Correct:      correct,
		TimedOut:     timedOut,
		CorrectIndex: card.CorrectIndex(),
		Explanation:  card.Explanation,
	}

	// Once the final item is settled the round is over; a countdown still
	// running through feedback must not turn it into a loss.
	finishing := e.stats.LastItem && (correct || !e.policy.RepeatOnMiss())
	spec := e.policy.Clock()
	if spec.Scope == ClockNone || !spec.InFeedback || e.stats.Remaining <= 0 || finishing {
		e.disarm(&e.tick)
	}

	e.log.Debug("answer resolved",
		zap.String("item", card.ID),
		zap.Int("choice", choice),
		zap.Bool("correct", correct),
		zap.Bool("timed_out", timedOut))

	e.arm(&e.pause, e.policy.FeedbackDelay(correct), e.endFeedback)
	e.emit()
}

func (e *Engine) endFeedback() {
	if e.phase != PhaseFeedback {
		return
	}
	fb := e.feedback

	switch {
	case e.policy.IsTerminal(e.stats):
		e.terminate()
	case !fb.Correct && e.policy.RepeatOnMiss():
		e.activate()
	case !e.deck.Advance(fb.Choice):
		e.terminate()
	default:
		e.activate()
	}
}

func (e *Engine) terminate() {
	e.stopAll()
	out := e.policy.Reward(e.stats)
	e.outcome = &out
	e.phase = PhaseTerminated
	e.log.Info("round complete",
		zap.Int("points", out.Points),
		zap.Bool("penalty", out.Penalty),
		zap.Int("answered", e.stats.Answered),
		zap.Int("correct", e.stats.Correct))
	e.emit()
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(out)
	}
}

func (e *Engine) stopAll() {
	e.disarm(&e.tick)
	e.disarm(&e.pause)
	e.fetchGen++
	if e.cancelFetch != nil {
		e.cancelFetch()
		e.cancelFetch = nil
	}
}

func (e *Engine) arm(slot *timerSlot, d time.Duration, fn func()) {
	e.disarm(slot)
	gen := slot.gen
	slot.timer = e.sched.AfterFunc(d, func() {
		if slot.gen != gen {
			return
		}
		slot.timer = nil
		fn()
	})
}

func (e *Engine) disarm(slot *timerSlot) {
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}
	slot.gen++
}

func (e *Engine) emit() {
	if e.hooks.OnChange != nil {
		e.hooks.OnChange(e.Snapshot())
	}
}
