package app

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/exam"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/screens/home"
	sessionscreen "github.com/abhisek/examsim/internal/screens/session"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/layout"
)

// Options carries the assembled dependencies for the TUI.
type Options struct {
	Store     *store.Store // nil disables history and persistence
	Pool      []question.Question
	PoolTitle string
	Cfg       exam.Config
	Assemble  exam.AssembleOpts

	// Seed fixes the selection and adaptive draw; 0 means time-seeded.
	Seed int64

	// SavePath enables save-and-exit from a running session.
	SavePath string

	// Resume, when set, reconstructs an interrupted session on the first
	// launch instead of assembling a fresh working set.
	Resume *exam.SavedState

	// AutoStart skips the home screen and opens straight into a session.
	AutoStart bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	user   string
	width  int
	height int
}

// newAppModel builds the screen stack for the given options.
func newAppModel(opts Options) (AppModel, error) {
	var history store.HistoryRepo
	if opts.Store != nil {
		history = opts.Store.History()
	}

	launch := func(user string) (screen.Screen, error) {
		cfg := opts.Cfg
		if user != "" {
			cfg.User = user
		}

		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		if st := opts.Resume; st != nil {
			opts.Resume = nil // resume applies to the first launch only
			cfg.Adaptive = st.Adaptive
			if st.User != "" {
				cfg.User = st.User
			}
			// Linear saves the full working set; adaptive saves only the
			// remaining queue, so the answered count is added back to keep
			// the finish check at the original total.
			cfg.NumQuestions = len(st.Questions)
			if st.Adaptive {
				cfg.NumQuestions += len(st.Answers)
			}
			eng := exam.New(st.Questions, cfg, rng, exam.WithResume(st.Answers, st.Cursor))
			return sessionscreen.New(eng, cfg, history, opts.SavePath), nil
		}

		eng, err := exam.Assemble(opts.Pool, cfg, opts.Assemble, rng)
		if err != nil {
			return nil, err
		}
		return sessionscreen.New(eng, cfg, history, opts.SavePath), nil
	}

	var initial screen.Screen
	if opts.AutoStart {
		s, err := launch(opts.Cfg.User)
		if err != nil {
			return AppModel{}, err
		}
		initial = s
	} else {
		initial = home.New(home.Deps{
			History:     history,
			PoolSize:    len(opts.Pool),
			PoolTitle:   opts.PoolTitle,
			DomainCount: len(question.Domains(opts.Pool)),
			User:        opts.Cfg.User,
			Launch:      launch,
		})
	}

	return AppModel{
		router: router.New(initial),
		user:   opts.Cfg.User,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen for custom hints, with stack-aware
// defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
