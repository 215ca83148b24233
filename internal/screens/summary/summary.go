package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/exam"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/screens/review"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// SummaryScreen displays the graded result of a finished exam.
type SummaryScreen struct {
	result analytics.SessionResult
	qmap   map[int]question.Question
	cfg    exam.Config
	note   string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. qmap resolves question ids for the review
// screen; note is an optional one-line warning shown under the score.
func New(result analytics.SessionResult, qmap map[int]question.Question, cfg exam.Config, note string) *SummaryScreen {
	return &SummaryScreen{result: result, qmap: qmap, cfg: cfg, note: note}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Exam Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if len(s.result.Answers) > 0 {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Review answers"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Done"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		if len(s.result.Answers) == 0 {
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: review.New(s.result, s.qmap)}
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Exam complete!"))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if res.Percentage < 70 {
		scoreStyle = scoreStyle.Foreground(theme.Error)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(scoreStyle.Render(fmt.Sprintf("%d/%d  (%.2f%%)", res.Correct, res.Total, res.Percentage))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  %s", res.User, res.Timestamp.Format("Jan 02, 2006 15:04"))))
	b.WriteString("\n\n")

	if s.note != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render(s.note))
		b.WriteString("\n\n")
	}

	if s.cfg.Reveal == exam.RevealDeferred && len(res.Answers) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("Feedback was withheld during the exam. Press R to review your answers."))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Domains")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-8, 56)
	labelWidth := 0
	domains := make([]string, 0, len(res.PerDomain))
	for d := range res.PerDomain {
		domains = append(domains, d)
		if len(d) > labelWidth {
			labelWidth = len(d)
		}
	}
	sort.Strings(domains)

	for _, d := range domains {
		st := res.PerDomain[d]
		pct := 0.0
		if st.Total > 0 {
			pct = float64(st.Correct) / float64(st.Total)
		}
		label := fmt.Sprintf("%-*s %2d/%-2d", labelWidth, d, st.Correct, st.Total)
		bar := components.NewProgressBar(label, pct, true, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if len(res.WrongQuestionIDs) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d questions to revisit", len(res.WrongQuestionIDs))))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
