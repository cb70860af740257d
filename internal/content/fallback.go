package content

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var errNoLiveSupplier = errors.New("no live supplier configured")

// builtinSets is the small per-subject question set served when generation
// is unavailable.
var builtinSets = map[Subject][]QuestionItem{
	SubjectEnglish: {
		{
			ID:            "e1",
			Prompt:        "Identify the figure of speech: 'The wind whispered through the trees'.",
			Options:       []string{"Simile", "Metaphor", "Personification", "Alliteration"},
			CorrectOption: "Personification",
			Explanation:   "Attributing human qualities (whispering) to non-human things (wind) is personification.",
		},
		{
			ID:            "e2",
			Prompt:        "Which tense is used in: 'I have been studying for three hours'?",
			Options:       []string{"Past Continuous", "Present Perfect Continuous", "Future Perfect", "Present Perfect"},
			CorrectOption: "Present Perfect Continuous",
			Explanation:   "The structure 'have been + verb-ing' denotes an action that started in the past and continues to the present.",
		},
	},
	SubjectHindi: {
		{
			ID:            "h1",
			Prompt:        "सूरदास की प्रसिद्ध रचना कौन सी है?",
			Options:       []string{"साकेत", "सूरसागर", "कामायनी", "यशोधरा"},
			CorrectOption: "सूरसागर",
			Explanation:   "सूरसागर सूरदास की सबसे प्रसिद्ध और महत्वपूर्ण रचना है।",
		},
		{
			ID:            "h2",
			Prompt:        "'कमल' का पर्यायवाची शब्द क्या है?",
			Options:       []string{"नीरद", "पंकज", "अंबर", "दिनकर"},
			CorrectOption: "पंकज",
			Explanation:   "पंकज कमल का पर्यायवाची है, जिसका अर्थ है कीचड़ में जन्म लेने वाला।",
		},
	},
	SubjectFrench: {
		{
			ID:            "f1",
			Prompt:        "Comment dit-on 'I have' en français ?",
			Options:       []string{"Je suis", "J'ai", "Je vais", "Je fais"},
			CorrectOption: "J'ai",
			Explanation:   "Le verbe 'avoir' (to have) à la première personne du présent est 'J'ai'.",
		},
		{
			ID:            "f2",
			Prompt:        "Quel est le pluriel de 'le journal' ?",
			Options:       []string{"les journals", "les journaux", "les journale", "les journalles"},
			CorrectOption: "les journaux",
			Explanation:   "En français, les mots finissant par -al prennent généralement -aux au pluriel.",
		},
	},
}

// BuiltinSet returns a copy of the built-in questions for a subject.
func BuiltinSet(subject Subject) []QuestionItem {
	return append([]QuestionItem(nil), builtinSets[subject]...)
}

// Fallback decorates a Supplier with the built-in question sets.
type Fallback struct {
	next       Supplier
	sets       map[Subject][]QuestionItem
	log        *zap.Logger
	onFallback func(subject Subject, cause error)
}

// FallbackOption configures a Fallback.
type FallbackOption func(*Fallback)

// WithSets replaces the built-in sets.
func WithSets(sets map[Subject][]QuestionItem) FallbackOption {
	return func(f *Fallback) { f.sets = sets }
}

// OnFallback registers a hook invoked whenever fallback content is served.
func OnFallback(fn func(subject Subject, cause error)) FallbackOption {
	return func(f *Fallback) { f.onFallback = fn }
}

// WithFallback wraps next. A nil next always serves fallback content.
func WithFallback(next Supplier, log *zap.Logger, opts ...FallbackOption) *Fallback {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Fallback{next: next, sets: builtinSets, log: log.Named("content")}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fallback) FetchQuestions(ctx context.Context, subject Subject, grade Grade, count int) ([]QuestionItem, error) {
	cause := errNoLiveSupplier
	if f.next != nil {
		items, err := f.next.FetchQuestions(ctx, subject, grade, count)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		cause = err
		if cause == nil {
			cause = ErrEmpty
		}
	}

	set := f.sets[subject]
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrContentUnavailable, subject, cause)
	}
	f.log.Warn("question supplier failed, serving fallback set",
		zap.String("subject", string(subject)),
		zap.String("grade", string(grade)),
		zap.Int("count", count),
		zap.Error(cause))
	if f.onFallback != nil {
		f.onFallback(subject, cause)
	}
	return fitToCount(set, count), nil
}

func (f *Fallback) FetchStoryGraph(ctx context.Context, subject Subject, grade Grade) (*StoryGraph, error) {
	cause := errNoLiveSupplier
	if f.next != nil {
		g, err := f.next.FetchStoryGraph(ctx, subject, grade)
		if err == nil && g != nil && len(g.Nodes) > 0 {
			return g, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		cause = err
		if cause == nil {
			cause = ErrEmpty
		}
	}

	set := f.sets[subject]
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrContentUnavailable, subject, cause)
	}
	f.log.Warn("story supplier failed, serving fallback story",
		zap.String("subject", string(subject)),
		zap.String("grade", string(grade)),
		zap.Error(cause))
	if f.onFallback != nil {
		f.onFallback(subject, cause)
	}
	return StoryFromQuestions(set), nil
}

// fitToCount truncates items to count, or repeats them cyclically when
// there are fewer. Repeats get a suffixed id so ids stay unique.
func fitToCount(items []QuestionItem, count int) []QuestionItem {
	if count <= 0 || count == len(items) {
		return append([]QuestionItem(nil), items...)
	}
	if count < len(items) {
		return append([]QuestionItem(nil), items[:count]...)
	}
	out := make([]QuestionItem, 0, count)
	for i := 0; len(out) < count; i++ {
		q := items[i%len(items)]
		if lap := i / len(items); lap > 0 {
			q.ID = fmt.Sprintf("%s-%d", q.ID, lap+1)
		}
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out
}

// StoryFromQuestions turns a question list into a linear story: each
// question is a node, every option leads on, and the last node leads nowhere.
func StoryFromQuestions(items []QuestionItem) *StoryGraph {
	if len(items) == 0 {
		return nil
	}
	g := &StoryGraph{StartNodeID: nodeID(0)}
	for i, q := range items {
		next := nodeID(i + 1)
		if i == len(items)-1 {
			next = "end"
		}
		node := StoryNode{ID: nodeID(i), Text: q.Prompt}
		for _, opt := range q.Options {
			node.Choices = append(node.Choices, Choice{
				Text:       opt,
				IsCorrect:  opt == q.CorrectOption,
				NextNodeID: next,
			})
		}
		g.Nodes = append(g.Nodes, node)
	}
	return g
}

func nodeID(i int) string {
	return fmt.Sprintf("n%d", i+1)
}
