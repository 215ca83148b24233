// Package selector chooses a working set of questions from an eligible pool
// under per-domain quotas. All randomness flows through an explicitly passed
// *rand.Rand so callers can seed for reproducible selections.
package selector

import (
	"math"
	"math/rand"
	"sort"

	"github.com/abhisek/examsim/internal/question"
)

// Weighted draws a selection of total questions using relative per-domain
// weights. Each domain contributes min(round(total*weight), available)
// questions drawn uniformly without replacement; any shortfall is filled
// uniformly from the rest of the pool. The result has exactly total
// questions, or fewer when the pool itself is smaller. Domain iteration is
// lexicographic so a fixed seed yields a fixed selection. When shuffle is
// false the domain-then-fill order is preserved.
func Weighted(pool []question.Question, total int, weights map[string]float64, shuffle bool, rng *rand.Rand) []question.Question {
	by := question.ByDomain(pool)

	domains := make([]string, 0, len(weights))
	for d := range weights {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	var sel []question.Question
	picked := make(map[int]bool)
	for _, d := range domains {
		candidates := by[d]
		if len(candidates) == 0 {
			continue // zero eligible questions is not an error
		}
		need := int(math.Round(float64(total) * weights[d]))
		for _, q := range sample(candidates, min(need, len(candidates)), rng) {
			sel = append(sel, q)
			picked[q.ID] = true
		}
	}

	if len(sel) < total {
		var rest []question.Question
		for _, q := range pool {
			if !picked[q.ID] {
				rest = append(rest, q)
			}
		}
		short := total - len(sel)
		sel = append(sel, sample(rest, min(short, len(rest)), rng)...)
	}

	if len(sel) > total {
		sel = sel[:total]
	}
	if shuffle {
		rng.Shuffle(len(sel), func(i, j int) { sel[i], sel[j] = sel[j], sel[i] })
	}
	return sel
}

// Blueprint draws exactly min(count, available) questions per domain from an
// explicit domain quota map, without remainder fill. Iteration order is
// lexicographic; shuffle permutes the final selection.
func Blueprint(pool []question.Question, quotas map[string]int, shuffle bool, rng *rand.Rand) []question.Question {
	by := question.ByDomain(pool)

	domains := make([]string, 0, len(quotas))
	for d := range quotas {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	var sel []question.Question
	for _, d := range domains {
		candidates := by[d]
		if len(candidates) == 0 {
			continue
		}
		sel = append(sel, sample(candidates, min(quotas[d], len(candidates)), rng)...)
	}

	if shuffle {
		rng.Shuffle(len(sel), func(i, j int) { sel[i], sel[j] = sel[j], sel[i] })
	}
	return sel
}

// sample draws n elements from qs uniformly without replacement. qs is not
// mutated.
func sample(qs []question.Question, n int, rng *rand.Rand) []question.Question {
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(qs))[:n]
	out := make([]question.Question, 0, n)
	for _, i := range idx {
		out = append(out, qs[i])
	}
	return out
}
