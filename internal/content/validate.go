package content

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func itemValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(questionRules, QuestionItem{})
	})
	return validate
}

// questionRules enforces that the correct option is one of the options.
func questionRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(QuestionItem)
	if q.CorrectIndex() < 0 {
		sl.ReportError(q.CorrectOption, "CorrectOption", "correctAnswer", "oneofoptions", "")
	}
}

// ValidateQuestion checks a question item's invariants.
func ValidateQuestion(q QuestionItem) error {
	if err := itemValidator().Struct(q); err != nil {
		return describe(q.ID, err)
	}
	if hasDuplicates(q.Options) {
		return fmt.Errorf("question %q: duplicate options", q.ID)
	}
	return nil
}

// ValidateStory checks a story graph's shape. Dangling NextNodeIDs and
// nodes without choices are allowed since they mark the end of the story,
// but the start node must offer at least one choice.
func ValidateStory(g *StoryGraph) error {
	if g == nil {
		return errors.New("story: empty graph")
	}
	if err := itemValidator().Struct(g); err != nil {
		return describe("story", err)
	}
	start, ok := g.Start()
	if !ok {
		return fmt.Errorf("story: start node %q not found", g.StartNodeID)
	}
	if len(start.Choices) == 0 {
		return fmt.Errorf("story: start node %q has no choices", start.ID)
	}
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("story: duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}

func describe(subject string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", subject, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%s: %s", subject, strings.Join(parts, "; "))
}

func hasDuplicates(opts []string) bool {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		key := strings.ToLower(strings.TrimSpace(o))
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}
