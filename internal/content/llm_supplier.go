package content

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/llm"
)

// Purpose labels recorded with every LLM request.
const (
	PurposeQuestions = "question-set"
	PurposeStory     = "story-graph"
)

// LLMConfig controls the LLM-backed supplier.
type LLMConfig struct {
	// MaxTokens bounds a question set response. Story responses get
	// StoryMaxTokens.
	MaxTokens      int
	StoryMaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultLLMConfig returns recommended generation settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:      4096,
		StoryMaxTokens: 4096,
		Temperature:    0.8,
	}
}

// LLMSupplier generates content with an LLM provider.
type LLMSupplier struct {
	provider llm.Provider
	config   LLMConfig
	log      *zap.Logger
}

// NewLLMSupplier creates a supplier backed by provider.
func NewLLMSupplier(provider llm.Provider, cfg LLMConfig, log *zap.Logger) *LLMSupplier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMSupplier{provider: provider, config: cfg, log: log.Named("content.llm")}
}

type questionSetOutput struct {
	Questions []QuestionItem `json:"questions"`
}

func (s *LLMSupplier) FetchQuestions(ctx context.Context, subject Subject, grade Grade, count int) ([]QuestionItem, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuestions)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      questionSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuestionMessage(subject, grade, count)}},
		Schema:      QuestionSetSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var out questionSetOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse question set: %w", err)
	}

	items := make([]QuestionItem, 0, len(out.Questions))
	// The first item carrying an id keeps it. Later duplicates and blank
	// ids get a fresh qN that no other item uses.
	owner := make(map[string]int, len(out.Questions))
	for i, q := range out.Questions {
		if _, ok := owner[q.ID]; q.ID != "" && !ok {
			owner[q.ID] = i
		}
	}
	for i, q := range out.Questions {
		if at, ok := owner[q.ID]; !ok || at != i {
			q.ID = freshID(owner, i+1)
			owner[q.ID] = i
		}
		if err := ValidateQuestion(q); err != nil {
			s.log.Debug("dropping invalid question", zap.Error(err))
			continue
		}
		items = append(items, q)
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	if count > 0 && len(items) > count {
		items = items[:count]
	}
	return items, nil
}

func freshID(taken map[string]int, n int) string {
	for ; ; n++ {
		id := fmt.Sprintf("q%d", n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func (s *LLMSupplier) FetchStoryGraph(ctx context.Context, subject Subject, grade Grade) (*StoryGraph, error) {
	ctx = llm.WithPurpose(ctx, PurposeStory)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      storySystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildStoryMessage(subject, grade)}},
		Schema:      StoryGraphSchema,
		MaxTokens:   s.config.StoryMaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate story: %w", err)
	}

	var g StoryGraph
	if err := json.Unmarshal(resp.Content, &g); err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	if err := ValidateStory(&g); err != nil {
		return nil, err
	}
	return &g, nil
}
