package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

type detailLoadedMsg struct {
	SessionID string
	Result    analytics.SessionResult
	Err       error
}

// HistoryScreen lists stored sessions with expandable per-domain detail.
type HistoryScreen struct {
	repo store.HistoryRepo
	user string

	sessions []store.SessionSummary
	details  map[string]analytics.SessionResult
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history screen. An empty user lists every user's sessions.
func New(repo store.HistoryRepo, user string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		user:     user,
		details:  make(map[string]analytics.SessionResult),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, user := s.repo, s.user
	return func() tea.Msg {
		sessions, err := repo.List(context.Background(), user, 50)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		if msg.Err == nil {
			s.details[msg.SessionID] = msg.Result
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s.toggleDetails()
		}
	}
	return s, nil
}

// toggleDetails expands the selected row, loading the full result the first
// time it opens.
func (s *HistoryScreen) toggleDetails() (screen.Screen, tea.Cmd) {
	if s.selected >= len(s.sessions) {
		return s, nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	sess := s.sessions[s.selected]
	if _, ok := s.details[sess.SessionID]; ok || !s.expanded[s.selected] {
		return s, nil
	}
	repo := s.repo
	return s, func() tea.Msg {
		res, err := repo.Result(context.Background(), sess.SessionID)
		return detailLoadedMsg{SessionID: sess.SessionID, Result: res, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exams taken yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		mode := "linear"
		if sess.Adaptive {
			mode = "adaptive"
		}
		title := sess.Title
		if title == "" {
			title = "Exam"
		}

		line := fmt.Sprintf("%s%s  %-20s %s  %d/%d  %.2f%%  %s",
			prefix,
			sess.Timestamp.Format("Jan 02, 2006 15:04"),
			truncate(title, 20),
			sess.User,
			sess.Correct, sess.Total,
			sess.Percentage,
			mode,
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(sessionID string, width int) string {
	res, ok := s.details[sessionID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    loading...")) + "\n"
	}

	domains := make([]string, 0, len(res.PerDomain))
	for d := range res.PerDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	var b strings.Builder
	for _, d := range domains {
		st := res.PerDomain[d]
		pct := 0.0
		if st.Total > 0 {
			pct = float64(st.Correct) / float64(st.Total) * 100
		}
		line := fmt.Sprintf("    %-24s %2d/%-2d  %5.1f%%", d, st.Correct, st.Total, pct)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
