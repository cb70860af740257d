// Package ws hosts rounds over websockets. Each connection owns one event
// loop and at most one round at a time.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/clock"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/metrics"
)

const (
	sendBuffer   = 32
	loopBuffer   = 64
	writeTimeout = 10 * time.Second
	closeTimeout = 2 * time.Second
)

// Handler upgrades requests and runs one session per connection.
type Handler struct {
	launcher *arcade.Launcher
	metrics  *metrics.Metrics
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(launcher *arcade.Launcher, m *metrics.Metrics, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		launcher: launcher,
		metrics:  m,
		log:      log.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.ActiveSessions.Inc()
		defer h.metrics.ActiveSessions.Dec()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	loop := clock.NewLoop(loopBuffer)
	go loop.Run(ctx)

	s := &session{
		ctx:      ctx,
		launcher: h.launcher,
		loop:     loop,
		send:     make(chan outboundMessage, sendBuffer),
		log:      h.log.With(zap.String("remote", r.RemoteAddr)),
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range s.send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				s.log.Debug("write failed", zap.Error(err))
				cancel()
				return
			}
		}
	}()

	s.log.Info("connected")
	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			break
		}
		if !loop.Post(func() { s.handle(in) }) {
			break
		}
	}

	// Abandon any live round on the loop, then stop it.
	stopped := make(chan struct{})
	if loop.Post(func() { s.abandon(); close(stopped) }) {
		select {
		case <-stopped:
		case <-time.After(closeTimeout):
		}
	}
	cancel()
	<-loop.Done()
	close(s.send)
	<-writerDone
	s.log.Info("disconnected")
}

// session is confined to its loop goroutine.
type session struct {
	ctx      context.Context
	launcher *arcade.Launcher
	loop     *clock.Loop
	send     chan outboundMessage
	log      *zap.Logger
	round    *arcade.Round
}

func (s *session) handle(in inboundMessage) {
	switch in.Type {
	case msgStart:
		s.start(in.Payload)
	case msgAnswer:
		var p answerPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil || p.Choice == nil {
			s.fail("invalid answer payload")
			return
		}
		if s.round == nil {
			s.fail("no round in progress")
			return
		}
		if err := s.round.Submit(*p.Choice); err != nil {
			s.fail(err.Error())
		}
	case msgRetry:
		if s.round == nil || !s.round.Retry() {
			s.fail("nothing to retry")
		}
	case msgCancel:
		if s.round == nil || !s.round.Cancel() {
			s.fail("no round in progress")
		}
	default:
		s.fail("unsupported message type")
	}
}

func (s *session) start(raw json.RawMessage) {
	if s.round != nil && !s.round.Phase().Done() {
		s.fail("a round is already in progress")
		return
	}
	var p startPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.fail("invalid start payload")
		return
	}
	req, err := arcade.ParseRequest(p.Mode, p.Subject, p.Grade)
	if err != nil {
		s.fail(err.Error())
		return
	}

	var round *arcade.Round
	round, err = s.launcher.Launch(req, s.loop, arcade.Observer{
		OnChange: func(snap engine.Snapshot) {
			s.emit(msgState, stateFor(round.ID, snap))
		},
		OnComplete: func(out engine.Outcome) {
			s.emit(msgComplete, completePayload{SessionID: round.ID, Outcome: out})
		},
		OnCancel: func() {
			s.emit(msgCancelled, cancelledPayload{SessionID: round.ID})
		},
	})
	if err != nil {
		s.fail(err.Error())
		return
	}
	s.round = round
	round.Start(s.ctx)
}

func (s *session) abandon() {
	if s.round != nil && s.round.Cancel() {
		s.log.Info("round abandoned on disconnect", zap.String("session_id", s.round.ID))
	}
}

func (s *session) fail(msg string) {
	s.emit(msgError, errorPayload{Message: msg})
}

// emit queues msg for the writer. It never blocks past the session.
func (s *session) emit(typ string, payload any) {
	select {
	case s.send <- outboundMessage{Type: typ, Payload: payload}:
	case <-s.ctx.Done():
	}
}
