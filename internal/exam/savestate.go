package exam

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/question"
)

// SavedState is the serialized form of an interrupted session: the working
// set, the linear cursor, and the answers recorded so far. A resumed engine
// is reconstructed from these at constructor time.
type SavedState struct {
	User      string                   `json:"user"`
	Adaptive  bool                     `json:"adaptive"`
	Questions []question.Question      `json:"questions"`
	Cursor    int                      `json:"index"`
	Answers   []analytics.AnswerRecord `json:"answers"`
}

// SaveState writes an interrupted engine's state to path.
func SaveState(path string, e *Engine) error {
	st := SavedState{
		User:      e.cfg.User,
		Adaptive:  e.cfg.Adaptive,
		Questions: e.Queue(),
		Cursor:    e.Cursor(),
		Answers:   e.Answers(),
	}
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode saved state: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write saved state: %w", err)
	}
	return nil
}

// LoadState reads a saved session state from path.
func LoadState(path string) (SavedState, error) {
	var st SavedState
	raw, err := os.ReadFile(path)
	if err != nil {
		return st, fmt.Errorf("read saved state: %w", err)
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("decode saved state: %w", err)
	}
	return st, nil
}
