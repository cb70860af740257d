package ws

import (
	"encoding/json"

	"github.com/linguoquest/linguoquest/internal/engine"
)

// Client message types.
const (
	msgStart  = "start"
	msgAnswer = "answer"
	msgRetry  = "retry"
	msgCancel = "cancel"
)

// Server message types.
const (
	msgState     = "state"
	msgComplete  = "complete"
	msgCancelled = "cancelled"
	msgError     = "error"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type startPayload struct {
	Mode    string `json:"mode"`
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

type answerPayload struct {
	Choice *int `json:"choice"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type cardView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type statsView struct {
	RemainingMs int64        `json:"remaining_ms"`
	BudgetMs    int64        `json:"budget_ms,omitempty"`
	WrongCount  int          `json:"wrong_count"`
	Lives       int          `json:"lives,omitempty"`
	BossHP      int          `json:"boss_hp,omitempty"`
	Boss        *engine.Boss `json:"boss,omitempty"`
	Streak      int          `json:"streak"`
	Points      int          `json:"points,omitempty"`
	Answered    int          `json:"answered"`
	Correct     int          `json:"correct"`
}

type statePayload struct {
	SessionID string           `json:"session_id"`
	Mode      engine.Mode      `json:"mode"`
	Phase     engine.Phase     `json:"phase"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Card      *cardView        `json:"card,omitempty"`
	Stats     statsView        `json:"stats"`
	Feedback  *engine.Feedback `json:"feedback,omitempty"`
	Error     string           `json:"error,omitempty"`
}

type completePayload struct {
	SessionID string `json:"session_id"`
	engine.Outcome
}

type cancelledPayload struct {
	SessionID string `json:"session_id"`
}

// stateFor hides the answer key: cards carry no correctness or explanation
// until feedback.
func stateFor(id string, s engine.Snapshot) statePayload {
	p := statePayload{
		SessionID: id,
		Mode:      s.Mode,
		Phase:     s.Phase,
		Index:     s.Index,
		Total:     s.Total,
		Feedback:  s.Feedback,
		Stats: statsView{
			RemainingMs: s.Stats.Remaining.Milliseconds(),
			BudgetMs:    s.Stats.Budget.Milliseconds(),
			WrongCount:  s.Stats.WrongCount,
			Lives:       s.Stats.Lives,
			BossHP:      s.Stats.BossHP,
			Boss:        s.Stats.Boss,
			Streak:      s.Stats.Streak,
			Points:      s.Stats.Points,
			Answered:    s.Stats.Answered,
			Correct:     s.Stats.Correct,
		},
	}
	if s.Card != nil {
		p.Card = &cardView{ID: s.Card.ID, Prompt: s.Card.Prompt, Options: s.Card.Options}
	}
	if s.Err != nil {
		p.Error = s.Err.Error()
	}
	return p
}
