package result

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/content"
	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/router"
	"github.com/linguoquest/linguoquest/internal/store"
)

func battleResult(out engine.Outcome) *ResultScreen {
	req := arcade.Request{Mode: engine.ModeBattle, Subject: content.SubjectEnglish, Grade: content.Grade7}
	return New(req, out, engine.Stats{Answered: 10, Correct: 10, Lives: 3})
}

func TestResultScreen_Title(t *testing.T) {
	s := battleResult(engine.Outcome{Points: 120})
	if s.Title() != "Round Over" {
		t.Errorf("Title = %q, want %q", s.Title(), "Round Over")
	}
}

func TestResultScreen_Display(t *testing.T) {
	view := battleResult(engine.Outcome{Points: 120}).View(80, 24)
	for _, want := range []string{"Boss defeated!", "120 points", "Boss Battle", "Lives left: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_Penalty(t *testing.T) {
	view := battleResult(engine.Outcome{Points: 0, Penalty: true}).View(80, 24)
	if !strings.Contains(view, "The boss got away!") {
		t.Error("expected penalty headline")
	}
	if !strings.Contains(view, "No points this time") {
		t.Error("expected zero-points notice")
	}
}

func TestResultScreen_Recorded(t *testing.T) {
	s := battleResult(engine.Outcome{Points: 120})
	if _, ok := s.Recorded(); ok {
		t.Fatal("nothing recorded yet")
	}

	s.Update(RecordedMsg{Record: store.ScoreRecord{Sequence: 7, Points: 120}})
	rec, ok := s.Recorded()
	if !ok || rec.Sequence != 7 {
		t.Fatalf("Recorded = %+v, %v", rec, ok)
	}
	if !strings.Contains(s.View(80, 24), "entry #7") {
		t.Error("expected saved entry in view")
	}
}

func TestResultScreen_RecordFailed(t *testing.T) {
	s := battleResult(engine.Outcome{Points: 120})
	s.Update(RecordedMsg{Err: errors.New("disk full")})
	if _, ok := s.Recorded(); ok {
		t.Error("failed write should not count as recorded")
	}
	if !strings.Contains(s.View(80, 24), "could not be saved") {
		t.Error("expected save failure in view")
	}
}

func TestResultScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := battleResult(engine.Outcome{Points: 120})
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected command", key.String())
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("%s: expected PopToRootMsg", key.String())
		}
	}
}
