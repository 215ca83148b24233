package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// ReviewScreen walks through a graded answer log question by question,
// showing the chosen and correct options plus the explanation. With the
// wrong-only filter on it visits just the missed questions.
type ReviewScreen struct {
	answers []analytics.AnswerRecord
	qmap    map[int]question.Question

	index     int
	wrongOnly bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen over a finished session's answers.
func New(result analytics.SessionResult, qmap map[int]question.Question) *ReviewScreen {
	return &ReviewScreen{
		answers: result.Answers,
		qmap:    qmap,
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	filter := "Wrong only"
	if s.wrongOnly {
		filter = "All answers"
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Navigate"},
		{Key: "W", Description: filter},
		{Key: "Esc", Description: "Back"},
	}
}

// visible returns the indexes into answers the current filter allows.
func (s *ReviewScreen) visible() []int {
	idx := make([]int, 0, len(s.answers))
	for i, a := range s.answers {
		if s.wrongOnly && a.IsCorrect {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	vis := s.visible()
	switch kmsg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h", "p":
		if s.index > 0 {
			s.index--
		}
	case "right", "l", "n", "enter":
		if s.index < len(vis)-1 {
			s.index++
		}
	case "w", "W":
		s.wrongOnly = !s.wrongOnly
		s.index = 0
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	vis := s.visible()
	if len(vis) == 0 {
		msg := "Nothing to review."
		if s.wrongOnly {
			msg = "No wrong answers. Well done!"
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  " + msg)
	}

	if s.index >= len(vis) {
		s.index = len(vis) - 1
	}
	a := s.answers[vis[s.index]]
	q, ok := s.qmap[a.QuestionID]

	var b strings.Builder

	filterTag := ""
	if s.wrongOnly {
		filterTag = "  (wrong only)"
	}
	verdict := theme.Correct.Render("✓ correct")
	if !a.IsCorrect {
		verdict = theme.Incorrect.Render("✗ wrong")
	}
	header := fmt.Sprintf("  %d of %d%s    %s    %s",
		s.index+1, len(vis), filterTag, a.Domain, verdict)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if !ok {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Question %d is not in the loaded pool.", a.QuestionID)))
		return b.String()
	}

	promptStyle := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, promptStyle.Render(q.Prompt)))
	b.WriteString("\n\n")

	choices := components.NewMultiChoice(question.Labels, q.Options)
	choices.Reveal(a.Correct, a.Chosen)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choices.View()))

	if q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(q.Explanation)))
	}

	return b.String()
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
