// Package arcade starts rounds for hosts: it builds the engine for a mode,
// records metrics and writes completed rounds to the score ledger.
package arcade

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/clock"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/metrics"
	"github.com/linguoquest/linguoquest/internal/store"
)

const persistTimeout = 5 * time.Second

// Request selects a round.
type Request struct {
	Mode    engine.Mode     `json:"mode"`
	Subject content.Subject `json:"subject"`
	Grade   content.Grade   `json:"grade"`
}

// ParseRequest resolves user-supplied names.
func ParseRequest(mode, subject, grade string) (Request, error) {
	m, err := engine.ParseMode(mode)
	if err != nil {
		return Request{}, err
	}
	s, err := content.ParseSubject(subject)
	if err != nil {
		return Request{}, err
	}
	g, err := content.ParseGrade(grade)
	if err != nil {
		return Request{}, err
	}
	return Request{Mode: m, Subject: s, Grade: g}, nil
}

// Observer receives round events on the scheduler's goroutine. Every field
// is optional.
type Observer struct {
	OnChange   func(engine.Snapshot)
	OnComplete func(engine.Outcome)
	OnCancel   func()
	// OnRecorded reports the ledger write that follows a completion.
	// It is not called when nothing is written.
	OnRecorded func(store.ScoreRecord, error)
}

// Launcher creates rounds.
type Launcher struct {
	supplier content.Supplier
	scores   store.ScoreRepo
	metrics  *metrics.Metrics
	player   string
	log      *zap.Logger
	picker   func() engine.Picker
	policies map[engine.Mode]engine.Policy
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithScores enables the score ledger.
func WithScores(repo store.ScoreRepo) Option {
	return func(l *Launcher) { l.scores = repo }
}

// WithMetrics enables round metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Launcher) { l.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Launcher) {
		if log != nil {
			l.log = log
		}
	}
}

// WithPicker sets the picker factory used for each round.
func WithPicker(fn func() engine.Picker) Option {
	return func(l *Launcher) { l.picker = fn }
}

// WithPolicy overrides the rules for one mode.
func WithPolicy(p engine.Policy) Option {
	return func(l *Launcher) { l.policies[p.Mode()] = p }
}

// New creates a launcher for player.
func New(supplier content.Supplier, player string, opts ...Option) *Launcher {
	l := &Launcher{
		supplier: supplier,
		player:   player,
		log:      zap.NewNop(),
		picker:   func() engine.Picker { return engine.NewPicker(0) },
		policies: make(map[engine.Mode]engine.Policy),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("arcade")
	return l
}

// Player returns the player id scores are recorded under.
func (l *Launcher) Player() string {
	return l.player
}

// Round is a launched engine with its session id.
type Round struct {
	*engine.Engine
	ID      string
	Request Request
}

// Launch builds a round driven by sched. Call Start on the result to
// begin loading content.
func (l *Launcher) Launch(req Request, sched clock.Scheduler, obs Observer) (*Round, error) {
	policy, ok := l.policies[req.Mode]
	if !ok {
		var err error
		if policy, err = engine.PolicyFor(req.Mode); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	log := l.log.With(zap.String("session_id", id))
	mode := string(req.Mode)
	lastPhase := engine.PhaseLoading

	hooks := engine.Hooks{
		OnChange: func(s engine.Snapshot) {
			if s.Phase == engine.PhaseContentError && lastPhase != engine.PhaseContentError && l.metrics != nil {
				l.metrics.ContentFailures.WithLabelValues(mode).Inc()
			}
			lastPhase = s.Phase
			if obs.OnChange != nil {
				obs.OnChange(s)
			}
		},
		OnComplete: func(out engine.Outcome) {
			if l.metrics != nil {
				l.metrics.RoundsCompleted.WithLabelValues(mode, strconv.FormatBool(out.Penalty)).Inc()
				l.metrics.Points.WithLabelValues(mode).Observe(float64(out.Points))
			}
			if obs.OnComplete != nil {
				obs.OnComplete(out)
			}
			l.record(sched, log, ScoreRecordFor(id, l.player, req, out), obs.OnRecorded)
		},
		OnCancel: func() {
			if l.metrics != nil {
				l.metrics.RoundsCancelled.WithLabelValues(mode).Inc()
			}
			if obs.OnCancel != nil {
				obs.OnCancel()
			}
		},
	}

	e := engine.New(policy, l.supplier, sched, engine.Params{Subject: req.Subject, Grade: req.Grade}, hooks,
		engine.WithLogger(log),
		engine.WithPicker(l.picker()),
	)
	if l.metrics != nil {
		l.metrics.RoundsStarted.WithLabelValues(mode).Inc()
	}
	log.Info("round launched", zap.String("mode", mode), zap.String("subject", string(req.Subject)), zap.String("grade", string(req.Grade)))
	return &Round{Engine: e, ID: id, Request: req}, nil
}

// ScoreRecordFor builds the ledger entry for a completed round.
func ScoreRecordFor(sessionID, player string, req Request, out engine.Outcome) store.ScoreRecord {
	return store.ScoreRecord{
		SessionID: sessionID,
		Player:    player,
		Mode:      string(req.Mode),
		Subject:   string(req.Subject),
		Grade:     string(req.Grade),
		Points:    out.Points,
		Penalty:   out.Penalty,
	}
}

// record writes rec off the loop. Zero-point rounds are not written.
func (l *Launcher) record(sched clock.Scheduler, log *zap.Logger, rec store.ScoreRecord, done func(store.ScoreRecord, error)) {
	if l.scores == nil || rec.Points <= 0 {
		log.Debug("score not recorded", zap.Int("points", rec.Points))
		return
	}
	scores := l.scores
	sched.Go(func() func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		saved, err := scores.AppendScore(ctx, rec)
		return func() {
			if err != nil {
				err = fmt.Errorf("record score: %w", err)
				log.Error("score write failed", zap.Error(err))
			} else {
				log.Info("score recorded", zap.Int64("sequence", saved.Sequence), zap.Int("points", saved.Points))
			}
			if done != nil {
				done(saved, err)
			}
		}
	})
}
