package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

// ChoiceMsg reports the option the player picked.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector. It does not know the answer;
// the caller reveals it after grading.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	Locked   bool
	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		chosen:   -1,
		correct:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Enter or a number key emits a ChoiceMsg and
// locks the component.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked || m.revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m.pick(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m.pick(i)
			}
		}
	}

	return m, nil
}

func (m MultiChoice) pick(i int) (MultiChoice, tea.Cmd) {
	m.Locked = true
	return m, func() tea.Msg { return ChoiceMsg{Index: i} }
}

// Reveal shows the graded result. chosen is -1 when time ran out.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Locked = true
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	s := ""
	if m.Question != "" {
		s = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question) + "\n\n"
	}

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && i == m.correct:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.revealed && i == m.chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}
