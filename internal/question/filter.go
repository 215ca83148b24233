package question

// FilterBounds constrains the eligible subset of a pool. Zero-valued bounds
// leave the corresponding axis unbounded.
type FilterBounds struct {
	IncludeTags   []string
	ExcludeTags   []string
	MinDifficulty *int
	MaxDifficulty *int
}

// Filter returns the subset of pool matching bounds, preserving input order.
// Tag comparison is case-insensitive; a question with no difficulty is
// treated as difficulty 0. The function is pure: it never mutates pool and
// filtering twice with the same bounds yields the same result.
func Filter(pool []Question, bounds FilterBounds) []Question {
	out := make([]Question, 0, len(pool))
	for _, q := range pool {
		if eligible(q, bounds) {
			out = append(out, q)
		}
	}
	return out
}

func eligible(q Question, bounds FilterBounds) bool {
	if len(bounds.IncludeTags) > 0 {
		matched := false
		for _, t := range bounds.IncludeTags {
			if q.HasTag(t) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, t := range bounds.ExcludeTags {
		if q.HasTag(t) {
			return false
		}
	}
	if bounds.MinDifficulty != nil && q.Difficulty < *bounds.MinDifficulty {
		return false
	}
	if bounds.MaxDifficulty != nil && q.Difficulty > *bounds.MaxDifficulty {
		return false
	}
	return true
}
