package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/screens/history"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// Deps carries everything the home screen needs to start an exam and browse
// history without knowing how the session is assembled.
type Deps struct {
	History     store.HistoryRepo // nil when no database is open
	PoolSize    int
	PoolTitle   string
	DomainCount int
	User        string

	// Launch builds a fresh session screen for the given user.
	Launch func(user string) (screen.Screen, error)
}

type statsLoadedMsg struct {
	Sessions int
	Accuracy float64
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string

	user        string
	editingUser bool
	userInput   components.TextInput

	sessions int
	accuracy float64
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps: deps,
		user: deps.User,
	}

	menuLabels := []string{"START EXAM", "HISTORY", "QUIT"}
	items := []components.MenuItem{
		{Label: menuLabels[0], Action: h.startExam},
		{Label: menuLabels[1], Disabled: deps.History == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.History, "")}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.menuLabels = menuLabels
	return h
}

func (h *HomeScreen) startExam() tea.Cmd {
	if h.deps.Launch == nil {
		return nil
	}
	s, err := h.deps.Launch(h.user)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.History == nil {
		return nil
	}
	repo := h.deps.History
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := repo.List(ctx, "", 0)
		if err != nil {
			return statsLoadedMsg{}
		}
		totals, err := repo.DomainTotals(ctx, "")
		if err != nil {
			return statsLoadedMsg{Sessions: len(sessions)}
		}
		var correct, total int
		for _, d := range totals {
			correct += d.Correct
			total += d.Total
		}
		var acc float64
		if total > 0 {
			acc = float64(correct) / float64(total) * 100
		}
		return statsLoadedMsg{Sessions: len(sessions), Accuracy: acc}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.sessions = msg.Sessions
		h.accuracy = msg.Accuracy
		return h, nil

	case tea.KeyMsg:
		if h.editingUser {
			switch msg.String() {
			case "enter":
				if v := strings.TrimSpace(h.userInput.Value()); v != "" {
					h.user = v
				}
				h.editingUser = false
				return h, nil
			case "esc":
				h.editingUser = false
				return h, nil
			}
			var cmd tea.Cmd
			h.userInput, cmd = h.userInput.Update(msg)
			return h, cmd
		}
		if msg.String() == "u" {
			h.editingUser = true
			h.userInput = components.NewTextInput(h.user, 24)
			return h, h.userInput.Init()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by adding
	// back header + footer + frame gaps.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(cw, compact))

	if h.deps.PoolTitle != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(h.deps.PoolTitle))
	}

	sections = append(sections, renderStatsBar(
		h.deps.PoolSize, h.deps.DomainCount, h.sessions, h.accuracy, cw, compact))

	var buttons []string
	for i, label := range h.menuLabels {
		if h.menu.Items[i].Disabled {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(24).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(label))
			continue
		}
		buttons = append(buttons, components.PanelButton(label, i == h.menu.Selected, 24))
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n")))

	userLine := "candidate: " + h.user + "  (press u to change)"
	if h.editingUser {
		userLine = "candidate: " + h.userInput.View()
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(userLine))

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
