package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/ui/components"
	"github.com/linguoquest/linguoquest/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.round == nil {
		return centered(width, theme.Error, "Could not start the round: "+s.errMsg)
	}

	switch s.snap.Phase {
	case engine.PhaseLoading:
		return "\n\n" + centered(width, theme.TextDim,
			fmt.Sprintf("%s Preparing %s questions for grade %s...", s.spin.View(), s.req.Subject, s.req.Grade))
	case engine.PhaseContentError:
		return s.renderContentError(width)
	case engine.PhaseCancelled:
		return "\n\n" + centered(width, theme.TextDim, "Round abandoned.")
	case engine.PhaseTerminated:
		return "\n\n" + centered(width, theme.TextDim, "Tallying your score...")
	}

	var b strings.Builder
	b.WriteString(s.renderHUD(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(s.renderPrompt(width))
	b.WriteString("\n\n")

	if !s.typing() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	}
	if s.snap.Phase == engine.PhaseFeedback {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *GameScreen) renderHUD(width int) string {
	st := s.snap.Stats
	accent := lipgloss.NewStyle().Foreground(theme.ModeColor(string(s.snap.Mode))).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var left, right string
	var bar string
	switch s.snap.Mode {
	case engine.ModeEscape:
		left = accent.Render(fmt.Sprintf("  Door %d/%d", s.snap.Index+1, s.snap.Total))
		right = dim.Render(fmt.Sprintf("Misses %d  T %s", st.WrongCount, clockText(st.Remaining)))
	case engine.ModeBattle:
		name := "Boss"
		if st.Boss != nil {
			name = fmt.Sprintf("%s, %s", st.Boss.Name, st.Boss.Title)
		}
		left = accent.Render("  " + name)
		right = dim.Render(fmt.Sprintf("%s  Streak %d", lives(st.Lives), st.Streak))
		hp := 0.0
		if s.maxHP > 0 {
			hp = float64(st.BossHP) / float64(s.maxHP)
		}
		meter := components.NewProgressBar(fmt.Sprintf("HP %3d", st.BossHP), hp, min(width-4, 60))
		meter.Fill = theme.Error
		bar = meter.View()
	case engine.ModeStory:
		left = accent.Render(fmt.Sprintf("  Chapter %d", s.snap.Index+1))
		right = dim.Render(fmt.Sprintf("★ %d", st.Points))
	case engine.ModeSprint:
		left = accent.Render(fmt.Sprintf("  Card %d/%d", s.snap.Index+1, s.snap.Total))
		right = dim.Render(fmt.Sprintf("Streak %d  Budget %.0fs", st.Streak, st.Budget.Seconds()))
		timeLeft := 0.0
		if st.Budget > 0 {
			timeLeft = float64(st.Remaining) / float64(st.Budget)
		}
		meter := components.NewProgressBar(fmt.Sprintf("%4.1fs", st.Remaining.Seconds()), timeLeft, min(width-4, 60))
		meter.Fill = theme.ArcadeYellow
		meter.Drains = true
		bar = meter.View()
	}

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	if bar != "" {
		line += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
	}
	return line
}

func (s *GameScreen) renderPrompt(width int) string {
	if s.snap.Card == nil {
		return ""
	}
	text := s.snap.Card.Prompt
	if s.snap.Mode == engine.ModeStory {
		text = string([]rune(text)[:min(s.typed, s.typeLen)])
	}
	return lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Bold(s.snap.Mode != engine.ModeStory).
		Render(text)
}

func (s *GameScreen) renderFeedback(width int) string {
	fb := s.snap.Feedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	switch {
	case fb.Correct:
		b.WriteString(centered(width, theme.Success, "Correct!"))
	case fb.TimedOut:
		b.WriteString(centered(width, theme.Accent, "Time's up!"))
	default:
		b.WriteString(centered(width, theme.Error, "Not quite"))
	}
	if fb.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.TextDim).Render(fb.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

func (s *GameScreen) renderContentError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Error, "Couldn't load this round"))
	if s.snap.Err != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.TextDim, s.snap.Err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Text, "Press R to try again or Esc to go back."))
	return b.String()
}

func centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(true).
		Render(text)
}

func clockText(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func lives(n int) string {
	return strings.Repeat("♥", max(n, 0))
}
