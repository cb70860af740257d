package content

import (
	"fmt"
	"strings"
)

// Subject is a language taught on the platform.
type Subject string

const (
	SubjectEnglish Subject = "English"
	SubjectHindi   Subject = "Hindi"
	SubjectFrench  Subject = "French"
)

// Subjects returns all subjects in menu order.
func Subjects() []Subject {
	return []Subject{SubjectEnglish, SubjectHindi, SubjectFrench}
}

// ParseSubject resolves a subject name case-insensitively.
func ParseSubject(s string) (Subject, error) {
	for _, sub := range Subjects() {
		if strings.EqualFold(string(sub), strings.TrimSpace(s)) {
			return sub, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// Grade is a school grade.
type Grade string

const (
	Grade6 Grade = "6"
	Grade7 Grade = "7"
	Grade8 Grade = "8"
)

// Grades returns all grades in menu order.
func Grades() []Grade {
	return []Grade{Grade6, Grade7, Grade8}
}

// ParseGrade accepts "7" as well as "grade 7".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "grade"))
	for _, g := range Grades() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown grade %q", s)
}

// QuestionItem is one multiple-choice question.
type QuestionItem struct {
	ID            string   `json:"id" validate:"required"`
	Prompt        string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,max=6,dive,required"`
	CorrectOption string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation,omitempty"`
}

// CorrectIndex returns the index of the correct option, or -1.
func (q QuestionItem) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.CorrectOption {
			return i
		}
	}
	return -1
}

// Choice is one way out of a story node.
type Choice struct {
	Text       string `json:"text" validate:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	NextNodeID string `json:"nextNodeId"`
}

// StoryNode is a passage of a branching story.
type StoryNode struct {
	ID      string   `json:"id" validate:"required"`
	Text    string   `json:"text" validate:"required"`
	Choices []Choice `json:"choices" validate:"dive"`
}

// StoryGraph is a directed graph of story nodes. A NextNodeID with no
// matching node ends the story.
type StoryGraph struct {
	StartNodeID string      `json:"startNodeId" validate:"required"`
	Nodes       []StoryNode `json:"nodes" validate:"min=1,dive"`
}

// Node looks up a node by id.
func (g *StoryGraph) Node(id string) (*StoryNode, bool) {
	if g == nil || id == "" {
		return nil, false
	}
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Start returns the entry node.
func (g *StoryGraph) Start() (*StoryNode, bool) {
	return g.Node(g.StartNodeID)
}
