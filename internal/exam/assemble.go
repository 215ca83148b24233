package exam

import (
	"errors"
	"math/rand"

	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/selector"
)

// ErrEmptyPool is returned when filtering leaves no questions to select from.
var ErrEmptyPool = errors.New("exam: no questions match the configured filters")

// AssembleOpts carries the selection-time knobs that do not belong in Config.
// At most one of Weights and Blueprint is expected; Blueprint wins when both
// are set since it fixes exact per-domain counts.
type AssembleOpts struct {
	Weights   map[string]float64
	Blueprint map[string]int
}

// Assemble filters the pool, draws the working set, applies option shuffling,
// and constructs the engine. The returned engine's Config carries the actual
// working-set size, which may be smaller than the requested NumQuestions when
// the pool runs short.
func Assemble(pool []question.Question, cfg Config, opts AssembleOpts, rng *rand.Rand, engineOpts ...Option) (*Engine, error) {
	filtered := question.Filter(pool, cfg.Bounds)
	if len(filtered) == 0 {
		return nil, ErrEmptyPool
	}

	n := cfg.NumQuestions
	if n <= 0 || n > len(filtered) {
		n = len(filtered)
	}

	var working []question.Question
	switch {
	case len(opts.Blueprint) > 0:
		working = selector.Blueprint(filtered, opts.Blueprint, cfg.Shuffle, rng)
	case len(opts.Weights) > 0:
		working = selector.Weighted(filtered, n, opts.Weights, cfg.Shuffle, rng)
	case cfg.Shuffle:
		working = make([]question.Question, 0, n)
		for _, i := range rng.Perm(len(filtered))[:n] {
			working = append(working, filtered[i])
		}
	default:
		working = filtered[:n]
	}
	if len(working) == 0 {
		return nil, ErrEmptyPool
	}

	if cfg.ShuffleOptions {
		shuffled := make([]question.Question, len(working))
		for i, q := range working {
			shuffled[i] = question.ShuffleOptions(q, rng)
		}
		working = shuffled
	}

	cfg.NumQuestions = len(working)
	return New(working, cfg, rng, engineOpts...), nil
}
