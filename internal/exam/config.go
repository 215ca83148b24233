package exam

import (
	"time"

	"github.com/abhisek/examsim/internal/question"
)

// RevealPolicy controls when correctness feedback is shown.
type RevealPolicy string

const (
	// RevealImmediate shows feedback right after each answer.
	RevealImmediate RevealPolicy = "immediate"
	// RevealDeferred withholds feedback until the session ends.
	RevealDeferred RevealPolicy = "deferred"
)

// Config describes a session. The engine reads NumQuestions, TimeLimit,
// Reveal and Adaptive; the rest is pass-through for the screens and
// bookkeeping layers.
type Config struct {
	NumQuestions   int
	TimeLimit      time.Duration
	Reveal         RevealPolicy
	Shuffle        bool
	ShuffleOptions bool
	Adaptive       bool
	Bounds         question.FilterBounds
	User           string

	// Display-only fields.
	Title         string
	LiveTimer     bool
	BeepThreshold time.Duration
	OpenMedia     bool
}

// DefaultConfig returns the standard exam configuration.
func DefaultConfig() Config {
	return Config{
		NumQuestions:  40,
		TimeLimit:     75 * time.Minute,
		Reveal:        RevealImmediate,
		Shuffle:       true,
		User:          "default",
		BeepThreshold: 5 * time.Minute,
	}
}
