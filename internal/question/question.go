package question

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Labels is the fixed set of option labels every question carries.
var Labels = []string{"A", "B", "C", "D"}

// Question is a single multiple-choice item from the bank. Instances are
// created once at load time and never mutated by the session engine.
type Question struct {
	ID          int               `json:"id"`
	Domain      string            `json:"domain"`
	Kind        string            `json:"type"`
	Prompt      string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"answer_text"`
	Tags        []string          `json:"tags,omitempty"`
	Difficulty  int               `json:"difficulty,omitempty"`
	Media       []string          `json:"media,omitempty"`
}

// Validate checks the structural invariants a question must satisfy before
// it may enter a session: all four option labels present and the correct
// answer referring to one of them.
func (q Question) Validate() error {
	if len(q.Options) != len(Labels) {
		return fmt.Errorf("question %d: expected %d options, got %d", q.ID, len(Labels), len(q.Options))
	}
	for _, l := range Labels {
		if _, ok := q.Options[l]; !ok {
			return fmt.Errorf("question %d: missing option %q", q.ID, l)
		}
	}
	if _, ok := q.Options[strings.ToUpper(q.Answer)]; !ok {
		return fmt.Errorf("question %d: answer %q is not an option label", q.ID, q.Answer)
	}
	return nil
}

// HasTag reports whether the question carries tag, compared case-insensitively.
func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ShuffleOptions returns a copy of q with its option texts permuted and the
// answer label remapped accordingly. It runs before a session is constructed;
// the engine itself never mutates questions.
func ShuffleOptions(q Question, rng *rand.Rand) Question {
	perm := rng.Perm(len(Labels))

	opts := make(map[string]string, len(Labels))
	answer := q.Answer
	for i, p := range perm {
		old := Labels[p]
		opts[Labels[i]] = q.Options[old]
		if old == strings.ToUpper(q.Answer) {
			answer = Labels[i]
		}
	}

	q.Options = opts
	q.Answer = answer
	return q
}

// ByDomain groups questions by their domain label, preserving input order
// within each group.
func ByDomain(qs []Question) map[string][]Question {
	by := make(map[string][]Question)
	for _, q := range qs {
		by[q.Domain] = append(by[q.Domain], q)
	}
	return by
}

// Domains returns the sorted set of domain labels present in qs.
func Domains(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		if !seen[q.Domain] {
			seen[q.Domain] = true
			out = append(out, q.Domain)
		}
	}
	sort.Strings(out)
	return out
}
