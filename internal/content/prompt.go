package content

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You write language revision quizzes for school students in grades 6-8.

Rules:
- Every question is multiple choice with exactly 4 options and exactly one correct option.
- correctAnswer must be copied verbatim from options.
- Questions must be answerable from the listed syllabus topics.
- Write Hindi questions in Devanagari and French questions in French.
- Every question includes a one or two sentence explanation of the correct answer.
- Ids are short unique strings.
- Do not repeat a question within the set.`

const storySystemPrompt = `You write short "choose your own adventure" revision stories for school students in grades 6-8.

Rules:
- The story is a graph of nodes. Each node has narrative text and 2-4 choices.
- Each choice tests the student's knowledge of the syllabus; mark the right one with isCorrect.
- Every choice has a nextNodeId. Use an id that does not exist (for example "end"), or a node with no choices, to finish the story.
- The start node must have choices.
- Keep the path from the start node to any ending between 3 and 6 nodes.
- startNodeId must name one of the nodes.`

// buildQuestionMessage renders the user message for a question set.
func buildQuestionMessage(subject Subject, grade Grade, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Grade: %s\n", grade)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	b.WriteString("\nSyllabus:\n")
	b.WriteString(renderSyllabus(SyllabusFor(subject, grade)))
	return b.String()
}

// buildStoryMessage renders the user message for a story graph.
func buildStoryMessage(subject Subject, grade Grade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Grade: %s\n", grade)
	b.WriteString("\nSyllabus:\n")
	b.WriteString(renderSyllabus(SyllabusFor(subject, grade)))
	return b.String()
}

func renderSyllabus(s Syllabus) string {
	if s.Empty() {
		return "General revision"
	}
	var b strings.Builder
	section := func(name string, topics []string) {
		if len(topics) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(topics, "; "))
	}
	section("Literature", s.Literature)
	section("Grammar", s.Grammar)
	section("Lessons", s.Lessons)
	return strings.TrimRight(b.String(), "\n")
}
