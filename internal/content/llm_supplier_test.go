package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/linguoquest/linguoquest/internal/llm"
)

func TestLLMSupplier_FetchQuestions(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"id":"a","question":"Pick the noun","options":["run","table","quickly","blue"],"correctAnswer":"table","explanation":"A table is a thing."},
		{"id":"b","question":"Broken","options":["x","y"],"correctAnswer":"z","explanation":""},
		{"id":"a","question":"Past of go","options":["goed","went","gone","going"],"correctAnswer":"went","explanation":"Irregular verb."}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	sup := NewLLMSupplier(mock, DefaultLLMConfig(), nil)

	items, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (invalid item dropped)", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "q3" {
		t.Errorf("ids = %q, %q; duplicate id should be renamed", items[0].ID, items[1].ID)
	}

	req := mock.Requests()[0]
	if req.Schema != QuestionSetSchema {
		t.Error("expected question set schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Number of questions: 10") || !strings.Contains(msg, "The School Boy") {
		t.Errorf("user message missing count or syllabus:\n%s", msg)
	}
}

func TestLLMSupplier_RenamedIDsStayUnique(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"id":"a","question":"1","options":["x","y"],"correctAnswer":"x","explanation":""},
		{"id":"a","question":"2","options":["x","y"],"correctAnswer":"y","explanation":""},
		{"id":"q2","question":"3","options":["x","y"],"correctAnswer":"x","explanation":""},
		{"id":"","question":"4","options":["x","y"],"correctAnswer":"y","explanation":""},
		{"id":"q5","question":"5","options":["x","y"],"correctAnswer":"x","explanation":""}
	]}`)
	sup := NewLLMSupplier(llm.NewMockProvider(llm.MockResponse{Content: raw}), DefaultLLMConfig(), nil)

	items, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("len = %d, want 5", len(items))
	}
	ids := make(map[string]bool, len(items))
	for _, q := range items {
		if ids[q.ID] {
			t.Fatalf("id %q used twice", q.ID)
		}
		ids[q.ID] = true
	}
	if items[2].ID != "q2" || items[4].ID != "q5" {
		t.Errorf("model ids not kept: %q, %q", items[2].ID, items[4].ID)
	}
}

func TestLLMSupplier_TruncatesToCount(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"id":"a","question":"1","options":["x","y"],"correctAnswer":"x","explanation":""},
		{"id":"b","question":"2","options":["x","y"],"correctAnswer":"y","explanation":""},
		{"id":"c","question":"3","options":["x","y"],"correctAnswer":"x","explanation":""}
	]}`)
	sup := NewLLMSupplier(llm.NewMockProvider(llm.MockResponse{Content: raw}), DefaultLLMConfig(), nil)

	items, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
}

func TestLLMSupplier_AllInvalidIsEmpty(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"id":"a","question":"q","options":["x","y"],"correctAnswer":"nope","explanation":""}]}`)
	sup := NewLLMSupplier(llm.NewMockProvider(llm.MockResponse{Content: raw}), DefaultLLMConfig(), nil)

	_, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 2)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestLLMSupplier_ProviderError(t *testing.T) {
	sup := NewLLMSupplier(llm.NewMockProvider(), DefaultLLMConfig(), nil)

	_, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 2)
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestLLMSupplier_FetchStoryGraph(t *testing.T) {
	raw := json.RawMessage(`{"startNodeId":"s","nodes":[
		{"id":"s","text":"A letter arrives.","choices":[
			{"text":"Read 'J'ai'","isCorrect":true,"nextNodeId":"t"},
			{"text":"Read 'Je suis'","isCorrect":false,"nextNodeId":"t"}]},
		{"id":"t","text":"You answer it.","choices":[{"text":"Sign","isCorrect":true,"nextNodeId":"end"}]}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	sup := NewLLMSupplier(mock, DefaultLLMConfig(), nil)

	g, err := sup.FetchStoryGraph(context.Background(), SubjectFrench, Grade6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.StartNodeID != "s" || len(g.Nodes) != 2 {
		t.Errorf("graph = %+v", g)
	}
	if mock.Requests()[0].Schema != StoryGraphSchema {
		t.Error("expected story schema")
	}
}

func TestLLMSupplier_StoryWithChoicelessEnding(t *testing.T) {
	raw := json.RawMessage(`{"startNodeId":"s","nodes":[
		{"id":"s","text":"The train is late.","choices":[
			{"text":"Wait","isCorrect":true,"nextNodeId":"fin"},
			{"text":"Walk","isCorrect":false,"nextNodeId":"fin"}]},
		{"id":"fin","text":"You arrive home.","choices":[]}
	]}`)
	sup := NewLLMSupplier(llm.NewMockProvider(llm.MockResponse{Content: raw}), DefaultLLMConfig(), nil)

	g, err := sup.FetchStoryGraph(context.Background(), SubjectFrench, Grade6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end, ok := g.Node("fin"); !ok || len(end.Choices) != 0 {
		t.Errorf("ending node = %+v", end)
	}
}

func TestLLMSupplier_StoryWithMissingStartFails(t *testing.T) {
	raw := json.RawMessage(`{"startNodeId":"nowhere","nodes":[{"id":"s","text":"x","choices":[]}]}`)
	sup := NewLLMSupplier(llm.NewMockProvider(llm.MockResponse{Content: raw}), DefaultLLMConfig(), nil)

	if _, err := sup.FetchStoryGraph(context.Background(), SubjectFrench, Grade6); err == nil {
		t.Fatal("expected error")
	}
}
