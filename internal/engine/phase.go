package engine

import (
	"fmt"
	"strings"
)

// Phase is the state of a round.
type Phase int

const (
	PhaseLoading      Phase = iota // Fetching content
	PhaseContentError              // Fetch failed; Retry or Cancel
	PhaseActive                    // Waiting for an answer
	PhaseFeedback                  // Showing the result of the last answer
	PhaseTerminated                // Outcome computed and reported
	PhaseCancelled                 // Abandoned without a score
)

var phaseNames = [...]string{"loading", "content_error", "active", "feedback", "terminated", "cancelled"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Done reports whether the round has exited.
func (p Phase) Done() bool {
	return p == PhaseTerminated || p == PhaseCancelled
}

// Mode selects a game.
type Mode string

const (
	ModeEscape Mode = "escape"
	ModeBattle Mode = "battle"
	ModeStory  Mode = "story"
	ModeSprint Mode = "sprint"
)

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeEscape, ModeBattle, ModeStory, ModeSprint}
}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Title is the display name.
func (m Mode) Title() string {
	switch m {
	case ModeEscape:
		return "Escape the Chapter"
	case ModeBattle:
		return "Boss Battle"
	case ModeStory:
		return "Interactive Story"
	case ModeSprint:
		return "Flash-Recall Sprint"
	}
	return string(m)
}

// Blurb is a one-line description for menus.
func (m Mode) Blurb() string {
	switch m {
	case ModeEscape:
		return "Unlock 7 doors before the 10 minute clock runs out"
	case ModeBattle:
		return "Defeat the boss in 10 hits with 3 lives"
	case ModeStory:
		return "Choose your path; wrong turns cost points"
	case ModeSprint:
		return "15 rapid questions; the clock shrinks as your streak grows"
	}
	return ""
}
