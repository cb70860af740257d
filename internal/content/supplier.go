package content

import (
	"context"
	"errors"
)

// ErrContentUnavailable means neither the live supplier nor the built-in
// fallback could produce content.
var ErrContentUnavailable = errors.New("content unavailable")

// ErrEmpty is returned by suppliers that produced no usable items.
var ErrEmpty = errors.New("supplier returned no items")

// Supplier produces round content.
type Supplier interface {
	// FetchQuestions returns up to count question items.
	FetchQuestions(ctx context.Context, subject Subject, grade Grade, count int) ([]QuestionItem, error)

	// FetchStoryGraph returns a branching story.
	FetchStoryGraph(ctx context.Context, subject Subject, grade Grade) (*StoryGraph, error)
}

// Static serves fixed content. It is used when no LLM provider is configured
// and in tests.
type Static struct {
	Questions []QuestionItem
	Story     *StoryGraph
	Err       error
}

func (s *Static) FetchQuestions(ctx context.Context, _ Subject, _ Grade, count int) ([]QuestionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Questions) == 0 {
		return nil, ErrEmpty
	}
	return fitToCount(s.Questions, count), nil
}

func (s *Static) FetchStoryGraph(ctx context.Context, _ Subject, _ Grade) (*StoryGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Story == nil {
		return nil, ErrEmpty
	}
	return s.Story, nil
}
