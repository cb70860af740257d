package engine

import (
	"errors"

	"github.com/linguoquest/linguoquest/internal/content"
)

// NoAnswer is the choice recorded when the countdown runs out.
const NoAnswer = -1

var (
	errNoStart   = errors.New("story has no start node")
	errNoChoices = errors.New("story start node has no choices")
)

// Card is the item currently shown to the player.
type Card struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Correct     []bool   `json:"-"`
	Explanation string   `json:"explanation,omitempty"`
}

// IsCorrect reports whether choice is a correct option.
func (c Card) IsCorrect(choice int) bool {
	return choice >= 0 && choice < len(c.Correct) && c.Correct[choice]
}

// CorrectIndex returns the first correct option, or -1.
func (c Card) CorrectIndex() int {
	for i, ok := range c.Correct {
		if ok {
			return i
		}
	}
	return -1
}

// Deck walks the content of one round.
type Deck interface {
	// Card returns a fresh copy of the current item.
	Card() Card

	// Advance moves past the current item given the choice made on it.
	// It reports false when there is no next item.
	Advance(choice int) bool

	// Position is the zero-based index of the current item.
	Position() int

	// Len is the number of items, or 0 when the length depends on the
	// path taken.
	Len() int
}

type questionDeck struct {
	items []content.QuestionItem
	pos   int
}

func newQuestionDeck(items []content.QuestionItem) (*questionDeck, error) {
	if len(items) == 0 {
		return nil, content.ErrEmpty
	}
	return &questionDeck{items: items}, nil
}

func (d *questionDeck) Card() Card {
	it := d.items[d.pos]
	c := Card{
		ID:          it.ID,
		Prompt:      it.Prompt,
		Options:     append([]string(nil), it.Options...),
		Correct:     make([]bool, len(it.Options)),
		Explanation: it.Explanation,
	}
	for i, opt := range it.Options {
		c.Correct[i] = opt == it.CorrectOption
	}
	return c
}

func (d *questionDeck) Advance(int) bool {
	if d.pos+1 >= len(d.items) {
		return false
	}
	d.pos++
	return true
}

func (d *questionDeck) Position() int { return d.pos }
func (d *questionDeck) Len() int      { return len(d.items) }

type storyDeck struct {
	graph *content.StoryGraph
	node  *content.StoryNode
	steps int
}

func newStoryDeck(g *content.StoryGraph) (*storyDeck, error) {
	start, ok := g.Start()
	if !ok {
		return nil, errNoStart
	}
	if len(start.Choices) == 0 {
		return nil, errNoChoices
	}
	return &storyDeck{graph: g, node: start}, nil
}

func (d *storyDeck) Card() Card {
	c := Card{
		ID:      d.node.ID,
		Prompt:  d.node.Text,
		Options: make([]string, len(d.node.Choices)),
		Correct: make([]bool, len(d.node.Choices)),
	}
	for i, ch := range d.node.Choices {
		c.Options[i] = ch.Text
		c.Correct[i] = ch.IsCorrect
	}
	return c
}

// Advance follows the chosen edge whether or not it was correct. An edge
// to an unknown node, or to a node offering no choices, is the end of
// the story.
func (d *storyDeck) Advance(choice int) bool {
	if choice < 0 || choice >= len(d.node.Choices) {
		return false
	}
	next, ok := d.graph.Node(d.node.Choices[choice].NextNodeID)
	if !ok || len(next.Choices) == 0 {
		return false
	}
	d.node = next
	d.steps++
	return true
}

func (d *storyDeck) Position() int { return d.steps }
func (d *storyDeck) Len() int      { return 0 }
