package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/exam"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/screens/summary"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
)

// SessionScreen drives one exam.Engine from start to finish: it pulls
// prompts, routes answer keys to Submit, and hands the result to the
// summary screen when the engine stops yielding.
type SessionScreen struct {
	engine    *exam.Engine
	cfg       exam.Config
	history   store.HistoryRepo // nil disables persistence
	qmap      map[int]question.Question
	sessionID string
	savePath  string

	timer     *exam.TimerDisplay
	remaining time.Duration
	lowTime   bool

	prompt    exam.Prompt
	hasPrompt bool
	choices   components.MultiChoice

	showingFeedback    bool
	lastCorrect        bool
	paused             bool
	showingQuitConfirm bool
	finished           bool
	saveNote           string
	errMsg             string

	result *analytics.SessionResult
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen over an assembled engine. The working set is
// captured up front so the summary and review screens can resolve question
// ids after the adaptive queue has drained.
func New(engine *exam.Engine, cfg exam.Config, history store.HistoryRepo, savePath string) *SessionScreen {
	qmap := make(map[int]question.Question)
	for _, q := range engine.Queue() {
		qmap[q.ID] = q
	}
	return &SessionScreen{
		engine:    engine,
		cfg:       cfg,
		history:   history,
		qmap:      qmap,
		sessionID: uuid.New().String(),
		savePath:  savePath,
		remaining: cfg.TimeLimit,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.engine.Start()
	s.timer = exam.NewTimerDisplay(s.engine.Remaining, time.Second)
	s.timer.Start()

	logrus.WithFields(logrus.Fields{
		"session": s.sessionID,
		"user":    s.cfg.User,
		"total":   s.cfg.NumQuestions,
	}).Debug("exam started")

	cmd := s.advance()
	return tea.Batch(s.waitForTick(), cmd)
}

func (s *SessionScreen) Title() string {
	if s.cfg.Title != "" {
		return s.cfg.Title
	}
	return "Exam"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuitConfirm:
		hints := []layout.KeyHint{
			{Key: "Y", Description: "End and grade"},
			{Key: "N", Description: "Keep going"},
		}
		if s.savePath != "" {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Save and exit"})
		}
		return hints
	case s.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case s.paused:
		return []layout.KeyHint{
			{Key: "any key", Description: "Resume"},
		}
	default:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "P", Description: "Pause"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)

	case resultSavedMsg:
		if msg.Err != nil {
			logrus.WithError(msg.Err).Warn("persist session result")
			s.saveNote = "Result could not be saved to history."
		}
		return s, s.gotoSummary()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	s.remaining = time.Duration(msg)
	s.lowTime = s.cfg.BeepThreshold > 0 && s.remaining <= s.cfg.BeepThreshold

	if s.engine.TimeUp() {
		// Drop the pending question; the deadline ends the session even
		// mid-question.
		s.engine.Pause()
		return s, s.finishSession()
	}
	return s, s.waitForTick()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.finished {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.engine.Pause()
			return s, s.finishSession()
		case "s", "S":
			if s.savePath == "" {
				return s, nil
			}
			s.showingQuitConfirm = false
			s.engine.Pause()
			if err := exam.SaveState(s.savePath, s.engine); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.stopTimer()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	if s.showingFeedback {
		s.showingFeedback = false
		return s, s.advance()
	}

	if s.paused {
		s.paused = false
		return s, s.advance()
	}

	if !s.hasPrompt {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "p", "P":
		s.engine.Pause()
		s.hasPrompt = false
		s.paused = true
		return s, nil
	case "up", "k":
		s.choices.MoveUp()
		return s, nil
	case "down", "j":
		s.choices.MoveDown()
		return s, nil
	case "enter":
		return s, s.submit(s.choices.SelectedLabel())
	case "a", "A", "b", "B", "c", "C", "d", "D":
		label := string(key[0] &^ 0x20) // uppercase ASCII
		s.choices.Select(label)
		return s, s.submit(label)
	}
	return s, nil
}

// submit records the answer and either reveals feedback or moves straight on,
// depending on the reveal policy.
func (s *SessionScreen) submit(label string) tea.Cmd {
	if label == "" {
		return nil
	}
	correct := s.engine.Submit(label)
	s.hasPrompt = false

	if s.cfg.Reveal == exam.RevealImmediate {
		s.lastCorrect = correct
		s.choices.Reveal(s.prompt.Question.Answer, label)
		s.showingFeedback = true
		return nil
	}
	return s.advance()
}

// advance pulls the next prompt from the engine, or starts the finish flow
// once the engine stops yielding.
func (s *SessionScreen) advance() tea.Cmd {
	p, ok := s.engine.Next()
	if !ok {
		return s.finishSession()
	}
	s.prompt = p
	s.hasPrompt = true
	s.choices = components.NewMultiChoice(question.Labels, p.Question.Options)
	return nil
}

func (s *SessionScreen) finishSession() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	s.stopTimer()

	res := analytics.BuildResult(s.engine.Answers(), s.cfg.User)
	s.result = &res

	logrus.WithFields(logrus.Fields{
		"session": s.sessionID,
		"score":   res.Percentage,
		"total":   res.Total,
	}).Debug("exam finished")

	if s.history == nil {
		return s.gotoSummary()
	}
	history := s.history
	sessionID, title, adaptive := s.sessionID, s.cfg.Title, s.cfg.Adaptive
	return func() tea.Msg {
		return resultSavedMsg{Err: history.Append(context.Background(), sessionID, title, adaptive, res)}
	}
}

func (s *SessionScreen) gotoSummary() tea.Cmd {
	res := s.result
	qmap := s.qmap
	cfg := s.cfg
	note := s.saveNote
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(*res, qmap, cfg, note),
		}
	}
}

func (s *SessionScreen) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// waitForTick blocks on the timer channel and forwards the freshest sample.
func (s *SessionScreen) waitForTick() tea.Cmd {
	timer := s.timer
	if timer == nil {
		return nil
	}
	return func() tea.Msg {
		return timerTickMsg(<-timer.Ticks())
	}
}
