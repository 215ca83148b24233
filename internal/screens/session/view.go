package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.finished:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Scoring...")
	case s.showingQuitConfirm:
		return s.renderQuitConfirm(width)
	case s.paused:
		return s.renderPaused(width)
	case s.showingFeedback:
		return s.renderFeedback(width)
	case s.hasPrompt:
		return s.renderQuestion(width)
	default:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing exam...")
	}
}

// renderQuestion renders the active question with the status line on top.
func (s *SessionScreen) renderQuestion(width int) string {
	p := s.prompt

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", p.Question.Domain))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s",
			p.Serial,
			p.Total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			correctSoFar(s),
			s.renderTimer(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	promptStyle := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, promptStyle.Render(p.Question.Prompt)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answer with A-D, or arrows + Enter"))

	return b.String()
}

// renderTimer renders the countdown, switching to the warning style inside
// the beep threshold. Hidden when the live timer is disabled.
func (s *SessionScreen) renderTimer() string {
	if !s.cfg.LiveTimer {
		return ""
	}
	mins := int(s.remaining.Minutes())
	secs := int(s.remaining.Seconds()) % 60
	clock := "⏱ " + layout.FormatClock(mins, secs)
	if s.lowTime {
		return theme.TimerLow.Render(clock)
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(clock)
}

func correctSoFar(s *SessionScreen) int {
	n := 0
	for _, a := range s.engine.Answers() {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// renderFeedback renders the immediate-reveal overlay after a submit.
func (s *SessionScreen) renderFeedback(width int) string {
	q := s.prompt.Question

	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Incorrect"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s) %s", q.Answer, q.Options[q.Answer])))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	if q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(q.Explanation)))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderPaused renders the parked-question notice. In adaptive mode the
// parked question will not return; in linear mode it is re-offered.
func (s *SessionScreen) renderPaused(width int) string {
	note := "The question will be shown again when you resume."
	if s.cfg.Adaptive {
		note = "Adaptive mode: a different question will be drawn on resume."
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("Paused"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(note+"\nThe exam clock keeps running."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to resume."))

	return b.String()
}

// renderQuitConfirm renders the end-early dialog.
func (s *SessionScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the exam early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answered questions will be graded."))
	b.WriteString("\n\n")

	yes := components.NewButton("[Y] End and grade", true, nil)
	no := components.NewButton("[N] Keep going", false, nil)
	row := lipgloss.JoinHorizontal(lipgloss.Center, yes.View(), "  ", no.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))

	if s.savePath != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("[S] Save progress and exit without grading"))
	}

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
