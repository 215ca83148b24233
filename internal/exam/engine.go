// Package exam implements the time-boxed session engine: a pull-based state
// machine that serves questions one at a time from a selected working set
// until the set is exhausted, the deadline passes, or every selected
// question has been answered.
package exam

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/question"
)

// State is the engine lifecycle state.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateFinished
)

// Prompt is what the engine yields for each served question.
type Prompt struct {
	Question  question.Question
	Serial    int // 1-based position among answered-so-far+1
	Total     int
	Remaining time.Duration
}

// Engine owns the remaining-question queue and the answer log for the
// session's lifetime. Exactly one caller drives it: Next yields a question,
// then either Submit or Pause resumes the loop. The only method safe to call
// concurrently is Remaining, which is a pure read used by the live timer.
type Engine struct {
	cfg     Config
	queue   []question.Question
	cursor  int
	current *question.Question
	answers []analytics.AnswerRecord

	rng   *rand.Rand
	now   func() time.Time
	state State

	start    time.Time
	deadline time.Time
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock replaces the wall-clock source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithResume pre-seeds the answer log and linear cursor from a previously
// interrupted session. Resumption is reconstruction: the engine starts in
// Created as usual, there is no separate resumed state.
func WithResume(prior []analytics.AnswerRecord, cursor int) Option {
	return func(e *Engine) {
		e.answers = append(e.answers, prior...)
		e.cursor = cursor
	}
}

// New creates an engine over an already-selected working set. The questions
// are assumed validated upstream; rng drives the adaptive domain draw.
func New(qs []question.Question, cfg Config, rng *rand.Rand, opts ...Option) *Engine {
	queue := make([]question.Question, len(qs))
	copy(queue, qs)

	e := &Engine{
		cfg:   cfg,
		queue: queue,
		rng:   rng,
		now:   time.Now,
		state: StateCreated,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start transitions Created → Running, recording the start instant and
// computing the deadline.
func (e *Engine) Start() {
	if e.state != StateCreated {
		return
	}
	e.start = e.now()
	e.deadline = e.start.Add(e.cfg.TimeLimit)
	e.state = StateRunning
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Remaining returns the time left before the deadline, floored at zero.
// Before Start it reports the full time limit. Pure and race-free: it only
// reads immutable fields and the clock.
func (e *Engine) Remaining() time.Duration {
	if e.state == StateCreated {
		return e.cfg.TimeLimit
	}
	r := e.deadline.Sub(e.now())
	if r < 0 {
		return 0
	}
	return r
}

// TimeUp reports whether the deadline has passed.
func (e *Engine) TimeUp() bool {
	return e.state != StateCreated && e.Remaining() == 0
}

// Next picks and yields the next question, or returns false once the engine
// is Finished. Exhaustion of the queue and an elapsed deadline are the
// normal termination signals, not errors. After a true return the caller
// must call Submit or Pause before calling Next again.
func (e *Engine) Next() (Prompt, bool) {
	if e.state == StateCreated {
		e.Start()
	}
	if e.state == StateFinished {
		return Prompt{}, false
	}
	if e.Remaining() == 0 {
		e.finish()
		return Prompt{}, false
	}

	var q *question.Question
	if e.cfg.Adaptive {
		q = e.pickAdaptive()
	} else {
		q = e.pickLinear()
	}
	if q == nil {
		e.finish()
		return Prompt{}, false
	}

	e.current = q
	return Prompt{
		Question:  *q,
		Serial:    len(e.answers) + 1,
		Total:     e.cfg.NumQuestions,
		Remaining: e.Remaining(),
	}, true
}

// Submit records an answer for the question most recently yielded by Next.
// The label must already be normalized to the valid set by the presentation
// boundary. It returns whether the answer was correct.
func (e *Engine) Submit(label string) bool {
	if e.current == nil {
		return false
	}
	q := e.current
	e.current = nil

	chosen := strings.ToUpper(label)
	correct := strings.EqualFold(chosen, q.Answer)
	e.answers = append(e.answers, analytics.AnswerRecord{
		QuestionID: q.ID,
		Chosen:     chosen,
		Correct:    strings.ToUpper(q.Answer),
		IsCorrect:  correct,
		Domain:     q.Domain,
	})

	if len(e.answers) >= e.cfg.NumQuestions {
		e.finish()
	}
	return correct
}

// Pause skips the question most recently yielded by Next without recording
// an answer. In linear mode the cursor rewinds so the same question is
// re-offered next time; in adaptive mode the question was already popped
// from the queue and stays dropped.
func (e *Engine) Pause() {
	if e.current == nil {
		return
	}
	if !e.cfg.Adaptive {
		e.cursor--
	}
	e.current = nil
}

// Answers returns the answer log recorded so far.
func (e *Engine) Answers() []analytics.AnswerRecord {
	out := make([]analytics.AnswerRecord, len(e.answers))
	copy(out, e.answers)
	return out
}

// Cursor returns the linear cursor position, for state saving.
func (e *Engine) Cursor() int { return e.cursor }

// Queue returns the remaining question queue, for state saving. In linear
// mode this is the full working set; consume it together with Cursor.
func (e *Engine) Queue() []question.Question {
	out := make([]question.Question, len(e.queue))
	copy(out, e.queue)
	return out
}

func (e *Engine) finish() {
	e.current = nil
	e.state = StateFinished
}

// pickLinear advances a forward cursor over the selected question list.
func (e *Engine) pickLinear() *question.Question {
	if e.cursor >= len(e.queue) {
		return nil
	}
	q := e.queue[e.cursor]
	e.cursor++
	return &q
}

// pickAdaptive draws a domain weighted by 1-accuracy over the domains still
// present in the queue, then removes the first queued question of that
// domain. The within-domain pick is ordinal by design: one weighted domain
// draw, then a first-match scan.
func (e *Engine) pickAdaptive() *question.Question {
	if len(e.queue) == 0 {
		return nil
	}

	stats := analytics.DomainStats(e.answers)

	// Weight each queued domain; 0.5 accuracy for domains with no answers
	// yet in this session. Lexicographic order keeps the draw reproducible
	// under a fixed seed.
	weights := make(map[string]float64)
	for _, q := range e.queue {
		if _, ok := weights[q.Domain]; ok {
			continue
		}
		acc := 0.5
		if d, ok := stats[q.Domain]; ok && d.Total > 0 {
			acc = d.Accuracy()
		}
		weights[q.Domain] = 1 - acc
	}

	domains := make([]string, 0, len(weights))
	for d := range weights {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	chosen := e.drawDomain(domains, weights)

	for i, q := range e.queue {
		if q.Domain == chosen {
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			return &q
		}
	}

	// Unreachable: chosen always comes from the queued domains. Pop the
	// head to keep the loop terminating regardless.
	q := e.queue[0]
	e.queue = e.queue[1:]
	return &q
}

// drawDomain samples one domain according to normalized weights. A zero
// weight sum degenerates to the single-candidate (first) domain.
func (e *Engine) drawDomain(domains []string, weights map[string]float64) string {
	sum := 0.0
	for _, d := range domains {
		sum += weights[d]
	}
	if sum <= 0 {
		return domains[0]
	}

	r := e.rng.Float64() * sum
	acc := 0.0
	for _, d := range domains {
		acc += weights[d]
		if r < acc {
			return d
		}
	}
	return domains[len(domains)-1]
}
