package exam

import (
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/question"
)

// fakeClock is a manually advanced clock for deadline tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func q(id int, domain, answer string) question.Question {
	return question.Question{
		ID:     id,
		Domain: domain,
		Prompt: "?",
		Options: map[string]string{
			"A": "a", "B": "b", "C": "c", "D": "d",
		},
		Answer: answer,
	}
}

func fourQuestions() []question.Question {
	return []question.Question{
		q(1, "A", "A"), q(2, "A", "B"), q(3, "B", "C"), q(4, "B", "D"),
	}
}

func newTestEngine(qs []question.Question, cfg Config, opts ...Option) *Engine {
	return New(qs, cfg, rand.New(rand.NewSource(1)), opts...)
}

func TestEngine_LinearFlow(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour, Reveal: RevealImmediate}
	e := newTestEngine(fourQuestions(), cfg)

	if e.State() != StateCreated {
		t.Fatalf("initial state = %v, want Created", e.State())
	}

	answers := []string{"A", "B", "A", "A"} // first two correct
	for i, label := range answers {
		p, ok := e.Next()
		if !ok {
			t.Fatalf("Next() ended early at question %d", i+1)
		}
		if p.Serial != i+1 {
			t.Errorf("Serial = %d, want %d", p.Serial, i+1)
		}
		if p.Total != 4 {
			t.Errorf("Total = %d, want 4", p.Total)
		}
		if p.Question.ID != i+1 {
			t.Errorf("served question %d, want %d (linear order)", p.Question.ID, i+1)
		}
		e.Submit(label)
	}

	if e.State() != StateFinished {
		t.Fatalf("state = %v after all answers, want Finished", e.State())
	}
	if _, ok := e.Next(); ok {
		t.Error("Next() yielded a question after Finished")
	}

	res := analytics.BuildResult(e.Answers(), "u")
	if res.Total != 4 || res.Correct != 2 || res.Incorrect != 2 {
		t.Errorf("result = %d/%d/%d, want 4/2/2", res.Total, res.Correct, res.Incorrect)
	}
	if res.Percentage != 50.0 {
		t.Errorf("Percentage = %v, want 50.0", res.Percentage)
	}
	if res.PerDomain["A"].Total != 2 || res.PerDomain["B"].Total != 2 {
		t.Errorf("PerDomain = %v, want 2 answers per domain", res.PerDomain)
	}
}

func TestEngine_ZeroTimeLimit(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{NumQuestions: 4, TimeLimit: 0}
	e := newTestEngine(fourQuestions(), cfg, WithClock(clock.Now))

	e.Start()
	if !e.TimeUp() {
		t.Error("TimeUp() = false immediately after start with zero limit")
	}
	if _, ok := e.Next(); ok {
		t.Error("Next() yielded a question with zero time limit")
	}
	if e.State() != StateFinished {
		t.Errorf("state = %v, want Finished", e.State())
	}
	if len(e.Answers()) != 0 {
		t.Errorf("answers = %d, want 0", len(e.Answers()))
	}
}

func TestEngine_DeadlineDuringSession(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{NumQuestions: 4, TimeLimit: 10 * time.Minute}
	e := newTestEngine(fourQuestions(), cfg, WithClock(clock.Now))

	p, ok := e.Next()
	if !ok {
		t.Fatal("Next() = false at start")
	}
	if p.Remaining != 10*time.Minute {
		t.Errorf("Remaining = %v, want 10m", p.Remaining)
	}
	e.Submit("A")

	clock.Advance(11 * time.Minute)
	if !e.TimeUp() {
		t.Error("TimeUp() = false past the deadline")
	}
	if _, ok := e.Next(); ok {
		t.Error("Next() yielded a question past the deadline")
	}
	if got := len(e.Answers()); got != 1 {
		t.Errorf("answers = %d, want 1", got)
	}
}

func TestEngine_RemainingMonotoneAndFloored(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{NumQuestions: 4, TimeLimit: 2 * time.Minute}
	e := newTestEngine(fourQuestions(), cfg, WithClock(clock.Now))
	e.Start()

	prev := e.Remaining()
	for i := 0; i < 5; i++ {
		clock.Advance(30 * time.Second)
		cur := e.Remaining()
		if cur > prev {
			t.Fatalf("Remaining increased: %v -> %v", prev, cur)
		}
		prev = cur
	}
	if prev != 0 {
		t.Errorf("Remaining = %v after deadline, want 0", prev)
	}
	if !e.TimeUp() {
		t.Error("TimeUp() = false with Remaining == 0")
	}
}

func TestEngine_PauseLinearReoffers(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour}
	e := newTestEngine(fourQuestions(), cfg)

	p1, _ := e.Next()
	e.Pause()
	p2, _ := e.Next()

	if p1.Question.ID != p2.Question.ID {
		t.Errorf("pause in linear mode served %d then %d, want the same question", p1.Question.ID, p2.Question.ID)
	}
	if len(e.Answers()) != 0 {
		t.Error("pause recorded an answer")
	}
}

func TestEngine_PauseAdaptiveDrops(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour, Adaptive: true}
	e := newTestEngine(fourQuestions(), cfg)

	p1, _ := e.Next()
	e.Pause()

	// The paused question must never come back.
	seen := make(map[int]bool)
	for {
		p, ok := e.Next()
		if !ok {
			break
		}
		seen[p.Question.ID] = true
		e.Submit("A")
	}
	if seen[p1.Question.ID] {
		t.Errorf("paused question %d was re-offered in adaptive mode", p1.Question.ID)
	}
	if len(seen) != 3 {
		t.Errorf("served %d questions after the drop, want 3", len(seen))
	}
}

func TestEngine_SubmitCaseInsensitive(t *testing.T) {
	cfg := Config{NumQuestions: 1, TimeLimit: time.Hour}
	e := newTestEngine([]question.Question{q(1, "A", "C")}, cfg)

	e.Next()
	if !e.Submit("c") {
		t.Error("Submit(\"c\") = false, want correct for answer C")
	}
	rec := e.Answers()[0]
	if rec.Chosen != "C" || rec.Correct != "C" {
		t.Errorf("record = %+v, want normalized labels", rec)
	}
}

func TestEngine_AdaptiveFavorsWeakDomain(t *testing.T) {
	// Domain A is all wrong so far, domain B all correct: weight 1 vs 0.
	// Every draw must come from A while A still has questions queued.
	prior := []analytics.AnswerRecord{
		{QuestionID: 100, Domain: "A", IsCorrect: false},
		{QuestionID: 101, Domain: "A", IsCorrect: false},
		{QuestionID: 102, Domain: "B", IsCorrect: true},
		{QuestionID: 103, Domain: "B", IsCorrect: true},
	}
	cfg := Config{NumQuestions: 8, TimeLimit: time.Hour, Adaptive: true}
	e := newTestEngine(fourQuestions(), cfg, WithResume(prior, 0))

	p1, ok := e.Next()
	if !ok {
		t.Fatal("Next() = false")
	}
	if p1.Question.Domain != "A" {
		t.Errorf("first adaptive pick from domain %q, want the weak domain A", p1.Question.Domain)
	}
	// Ordinal within-domain pick: first queued A question.
	if p1.Question.ID != 1 {
		t.Errorf("picked id %d, want 1 (first in queue order)", p1.Question.ID)
	}
	e.Submit("B") // wrong again, A stays weak

	p2, _ := e.Next()
	if p2.Question.Domain != "A" {
		t.Errorf("second adaptive pick from domain %q, want A", p2.Question.Domain)
	}
	e.Submit("B")

	// A exhausted: the draw may only yield queued domains.
	p3, _ := e.Next()
	if p3.Question.Domain != "B" {
		t.Errorf("pick from %q after A exhausted, want B", p3.Question.Domain)
	}
}

func TestEngine_AdaptiveUniformWhenUnknown(t *testing.T) {
	// No answers yet: every domain defaults to 0.5 accuracy and the draw
	// must still terminate and only yield queued questions.
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour, Adaptive: true}
	e := newTestEngine(fourQuestions(), cfg)

	served := 0
	for {
		_, ok := e.Next()
		if !ok {
			break
		}
		served++
		e.Submit("A")
	}
	if served != 4 {
		t.Errorf("served %d questions, want 4", served)
	}
}

func TestEngine_Resume(t *testing.T) {
	prior := []analytics.AnswerRecord{
		{QuestionID: 1, Chosen: "A", Correct: "A", IsCorrect: true, Domain: "A"},
		{QuestionID: 2, Chosen: "A", Correct: "B", IsCorrect: false, Domain: "A"},
	}
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour}
	e := newTestEngine(fourQuestions(), cfg, WithResume(prior, 2))

	p, ok := e.Next()
	if !ok {
		t.Fatal("Next() = false on resume")
	}
	if p.Serial != 3 {
		t.Errorf("Serial = %d, want 3 (two answers pre-seeded)", p.Serial)
	}
	if p.Question.ID != 3 {
		t.Errorf("resumed at question %d, want 3", p.Question.ID)
	}

	e.Submit("C")
	p, _ = e.Next()
	e.Submit("D")

	if e.State() != StateFinished {
		t.Errorf("state = %v, want Finished once the log reaches the total", e.State())
	}
	if got := len(e.Answers()); got != 4 {
		t.Errorf("final log = %d answers, want 4", got)
	}
}

func TestEngine_ResumeAdaptive(t *testing.T) {
	// An adaptive save holds only the remaining queue, so the resumed total
	// is remaining + answered. Every saved question must still be served.
	prior := []analytics.AnswerRecord{
		{QuestionID: 1, Chosen: "A", Correct: "A", IsCorrect: true, Domain: "A"},
	}
	remaining := []question.Question{
		q(2, "A", "B"), q(3, "B", "C"), q(4, "B", "D"),
	}
	cfg := Config{
		NumQuestions: len(remaining) + len(prior),
		TimeLimit:    time.Hour,
		Adaptive:     true,
	}
	e := newTestEngine(remaining, cfg, WithResume(prior, 0))

	served := 0
	for {
		p, ok := e.Next()
		if !ok {
			break
		}
		if p.Question.ID == 1 {
			t.Error("served an already-answered question")
		}
		served++
		e.Submit("A")
	}

	if served != len(remaining) {
		t.Errorf("served %d of %d remaining questions", served, len(remaining))
	}
	if e.State() != StateFinished {
		t.Errorf("state = %v, want Finished", e.State())
	}
	if got := len(e.Answers()); got != 4 {
		t.Errorf("final log = %d answers, want 4", got)
	}
}

func TestEngine_RemainingBeforeStart(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: 30 * time.Minute}
	e := newTestEngine(fourQuestions(), cfg)
	if e.Remaining() != 30*time.Minute {
		t.Errorf("Remaining before start = %v, want the full limit", e.Remaining())
	}
	if e.TimeUp() {
		t.Error("TimeUp() = true before start")
	}
}
