package content

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFallback_ServesBuiltinSetOnFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failing := &Static{Err: errors.New("gemini down")}

	var fallbacks int
	sup := WithFallback(failing, zap.New(core), OnFallback(func(Subject, error) { fallbacks++ }))

	items, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("len = %d, want 7", len(items))
	}
	if items[0].ID != "e1" || items[1].ID != "e2" {
		t.Errorf("first ids = %q, %q", items[0].ID, items[1].ID)
	}

	warns := logs.FilterLevelExact(zapcore.WarnLevel).Len()
	if warns != 1 || logs.Len() != 1 {
		t.Errorf("want exactly one warning log, got %d warnings of %d entries", warns, logs.Len())
	}
	if fallbacks != 1 {
		t.Errorf("fallback hook calls = %d, want 1", fallbacks)
	}
}

func TestFallback_EmptyResultUsesFallback(t *testing.T) {
	sup := WithFallback(&Static{}, nil)

	items, err := sup.FetchQuestions(context.Background(), SubjectFrench, Grade7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "f1" {
		t.Errorf("got %+v", items)
	}
}

func TestFallback_LiveContentPassesThrough(t *testing.T) {
	live := &Static{Questions: []QuestionItem{
		{ID: "x", Prompt: "p", Options: []string{"a", "b"}, CorrectOption: "a"},
	}}
	core, logs := observer.New(zapcore.DebugLevel)
	sup := WithFallback(live, zap.New(core))

	items, err := sup.FetchQuestions(context.Background(), SubjectHindi, Grade8, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].ID != "x" {
		t.Errorf("id = %q, want x", items[0].ID)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no logs, got %d", logs.Len())
	}
}

func TestFallback_EmptySetIsUnavailable(t *testing.T) {
	sup := WithFallback(&Static{Err: errors.New("boom")}, nil, WithSets(map[Subject][]QuestionItem{}))

	_, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 5)
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("err = %v, want ErrContentUnavailable", err)
	}

	_, err = sup.FetchStoryGraph(context.Background(), SubjectEnglish, Grade6)
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("story err = %v, want ErrContentUnavailable", err)
	}
}

func TestFallback_CancelledContextDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sup := WithFallback(&Static{}, nil)
	_, err := sup.FetchQuestions(ctx, SubjectEnglish, Grade6, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFallback_NilSupplierServesStory(t *testing.T) {
	sup := WithFallback(nil, nil)

	g, err := sup.FetchStoryGraph(context.Background(), SubjectHindi, Grade6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateStory(g); err != nil {
		t.Fatalf("fallback story invalid: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(g.Nodes))
	}
}

func TestFitToCount(t *testing.T) {
	set := BuiltinSet(SubjectEnglish)

	tests := []struct {
		name    string
		count   int
		wantIDs []string
	}{
		{"truncate", 1, []string{"e1"}},
		{"exact", 2, []string{"e1", "e2"}},
		{"repeat", 5, []string{"e1", "e2", "e1-2", "e2-2", "e1-3"}},
		{"zero keeps all", 0, []string{"e1", "e2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitToCount(set, tt.count)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("[%d] id = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestStoryFromQuestions(t *testing.T) {
	g := StoryFromQuestions(BuiltinSet(SubjectFrench))

	start, ok := g.Start()
	if !ok {
		t.Fatal("start node missing")
	}
	if start.Text != "Comment dit-on 'I have' en français ?" {
		t.Errorf("start text = %q", start.Text)
	}

	var correct int
	for _, c := range start.Choices {
		if c.IsCorrect {
			correct++
			if c.Text != "J'ai" {
				t.Errorf("correct choice = %q", c.Text)
			}
		}
		if _, ok := g.Node(c.NextNodeID); !ok {
			t.Errorf("choice %q leads to missing node %q", c.Text, c.NextNodeID)
		}
	}
	if correct != 1 {
		t.Errorf("correct choices = %d, want 1", correct)
	}

	last := g.Nodes[len(g.Nodes)-1]
	for _, c := range last.Choices {
		if _, ok := g.Node(c.NextNodeID); ok {
			t.Errorf("last node choice %q should end the story", c.Text)
		}
	}

	if StoryFromQuestions(nil) != nil {
		t.Error("expected nil graph for empty input")
	}
}

func TestBuiltinSetsAreValid(t *testing.T) {
	for _, sub := range Subjects() {
		set := BuiltinSet(sub)
		if len(set) < 2 {
			t.Errorf("%s: fallback set has %d items, want >= 2", sub, len(set))
		}
		for _, q := range set {
			if err := ValidateQuestion(q); err != nil {
				t.Errorf("%s: %v", sub, err)
			}
		}
	}
}
