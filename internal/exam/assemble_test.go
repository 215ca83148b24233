package exam

import (
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/examsim/internal/question"
)

func assemblePool() []question.Question {
	return []question.Question{
		q(1, "A", "A"), q(2, "A", "B"), q(3, "A", "C"),
		q(4, "B", "D"), q(5, "B", "A"), q(6, "B", "B"),
	}
}

func TestAssemble_PlainOrdered(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour}
	e, err := Assemble(assemblePool(), cfg, AssembleOpts{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble() = %v", err)
	}

	queue := e.Queue()
	if len(queue) != 4 {
		t.Fatalf("working set = %d, want 4", len(queue))
	}
	for i, got := range queue {
		if got.ID != i+1 {
			t.Errorf("queue[%d] = id %d, want %d (pool order without shuffle)", i, got.ID, i+1)
		}
	}
}

func TestAssemble_CapsAtPoolSize(t *testing.T) {
	cfg := Config{NumQuestions: 50, TimeLimit: time.Hour}
	e, err := Assemble(assemblePool(), cfg, AssembleOpts{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble() = %v", err)
	}
	if len(e.Queue()) != 6 {
		t.Errorf("working set = %d, want the whole pool", len(e.Queue()))
	}

	// The engine's total must reflect the actual set size: the session ends
	// after all six answers, not at the requested 50.
	for {
		if _, ok := e.Next(); !ok {
			break
		}
		e.Submit("A")
	}
	if got := len(e.Answers()); got != 6 {
		t.Errorf("answers = %d, want 6", got)
	}
}

func TestAssemble_FilterApplied(t *testing.T) {
	pool := assemblePool()
	for i := range pool {
		if pool[i].Domain == "B" {
			pool[i].Tags = []string{"skip"}
		}
	}
	cfg := Config{NumQuestions: 10, TimeLimit: time.Hour}
	cfg.Bounds.ExcludeTags = []string{"skip"}

	e, err := Assemble(pool, cfg, AssembleOpts{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble() = %v", err)
	}
	for _, got := range e.Queue() {
		if got.Domain != "A" {
			t.Errorf("question %d from excluded domain %q", got.ID, got.Domain)
		}
	}
}

func TestAssemble_EmptyAfterFilter(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour}
	cfg.Bounds.IncludeTags = []string{"nonexistent"}

	if _, err := Assemble(assemblePool(), cfg, AssembleOpts{}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("Assemble() succeeded on an empty filtered pool")
	}
}

func TestAssemble_Blueprint(t *testing.T) {
	cfg := Config{NumQuestions: 10, TimeLimit: time.Hour}
	opts := AssembleOpts{Blueprint: map[string]int{"A": 2, "B": 1}}

	e, err := Assemble(assemblePool(), cfg, opts, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assemble() = %v", err)
	}

	counts := map[string]int{}
	for _, got := range e.Queue() {
		counts[got.Domain]++
	}
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Errorf("blueprint counts = %v, want A:2 B:1", counts)
	}
}

func TestAssemble_ShuffleOptionsKeepsAnswerText(t *testing.T) {
	cfg := Config{NumQuestions: 6, TimeLimit: time.Hour, ShuffleOptions: true}
	pool := assemblePool()
	e, err := Assemble(pool, cfg, AssembleOpts{}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Assemble() = %v", err)
	}

	orig := make(map[int]question.Question, len(pool))
	for _, p := range pool {
		orig[p.ID] = p
	}
	for _, got := range e.Queue() {
		want := orig[got.ID]
		if got.Options[got.Answer] != want.Options[want.Answer] {
			t.Errorf("question %d: answer text %q after shuffle, want %q",
				got.ID, got.Options[got.Answer], want.Options[want.Answer])
		}
	}
}

func TestAssemble_SeedDeterminism(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour, Shuffle: true}

	a, err := Assemble(assemblePool(), cfg, AssembleOpts{}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Assemble(assemblePool(), cfg, AssembleOpts{}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	qa, qb := a.Queue(), b.Queue()
	if len(qa) != len(qb) {
		t.Fatalf("set sizes differ: %d vs %d", len(qa), len(qb))
	}
	for i := range qa {
		if qa[i].ID != qb[i].ID {
			t.Errorf("position %d: %d vs %d under the same seed", i, qa[i].ID, qb[i].ID)
		}
	}
}
