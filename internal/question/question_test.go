package question

import (
	"math/rand"
	"testing"
)

func validQuestion() Question {
	return Question{
		ID:     7,
		Domain: "Security",
		Kind:   "mcq",
		Prompt: "Which port does HTTPS use by default?",
		Options: map[string]string{
			"A": "80", "B": "443", "C": "8080", "D": "22",
		},
		Answer:      "B",
		Explanation: "HTTPS defaults to TCP 443.",
	}
}

func TestValidate(t *testing.T) {
	if err := validQuestion().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	q := validQuestion()
	q.Answer = "E"
	if err := q.Validate(); err == nil {
		t.Error("Validate() accepted an answer outside the option labels")
	}

	q = validQuestion()
	delete(q.Options, "D")
	if err := q.Validate(); err == nil {
		t.Error("Validate() accepted a question with three options")
	}
}

func TestValidate_LowercaseAnswer(t *testing.T) {
	q := validQuestion()
	q.Answer = "b"
	if err := q.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for lowercase answer", err)
	}
}

func TestShuffleOptions_AnswerFollowsText(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	orig := validQuestion()
	correctText := orig.Options[orig.Answer]

	for i := 0; i < 50; i++ {
		got := ShuffleOptions(orig, rng)
		if err := got.Validate(); err != nil {
			t.Fatalf("shuffled question invalid: %v", err)
		}
		if got.Options[got.Answer] != correctText {
			t.Fatalf("answer %q maps to %q, want %q", got.Answer, got.Options[got.Answer], correctText)
		}
		if len(got.Options) != 4 {
			t.Fatalf("shuffled question has %d options", len(got.Options))
		}
	}

	// The input must not be mutated.
	if orig.Answer != "B" || orig.Options["B"] != "443" {
		t.Error("ShuffleOptions mutated its input")
	}
}

func TestByDomainAndDomains(t *testing.T) {
	qs := []Question{
		{ID: 1, Domain: "B"},
		{ID: 2, Domain: "A"},
		{ID: 3, Domain: "B"},
	}

	by := ByDomain(qs)
	if len(by["B"]) != 2 || by["B"][0].ID != 1 || by["B"][1].ID != 3 {
		t.Errorf("ByDomain kept wrong order for B: %v", by["B"])
	}

	doms := Domains(qs)
	if len(doms) != 2 || doms[0] != "A" || doms[1] != "B" {
		t.Errorf("Domains() = %v, want [A B]", doms)
	}
}
