package exam

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadState(t *testing.T) {
	cfg := Config{NumQuestions: 4, TimeLimit: time.Hour, User: "alex"}
	e := New(fourQuestions(), cfg, rand.New(rand.NewSource(1)))

	e.Next()
	e.Submit("A")
	e.Next()
	e.Submit("B")

	path := filepath.Join(t.TempDir(), "state.json")
	if err := SaveState(path, e); err != nil {
		t.Fatalf("SaveState() = %v", err)
	}

	st, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState() = %v", err)
	}
	if st.User != "alex" {
		t.Errorf("User = %q", st.User)
	}
	if st.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", st.Cursor)
	}
	if len(st.Answers) != 2 {
		t.Fatalf("Answers = %d, want 2", len(st.Answers))
	}
	if len(st.Questions) != 4 {
		t.Fatalf("Questions = %d, want 4", len(st.Questions))
	}

	// Reconstruct and finish the session.
	resumed := New(st.Questions, cfg, rand.New(rand.NewSource(1)), WithResume(st.Answers, st.Cursor))
	p, ok := resumed.Next()
	if !ok || p.Question.ID != 3 {
		t.Fatalf("resumed Next() = (%v, %v), want question 3", p.Question.ID, ok)
	}
}

func TestLoadState_Missing(t *testing.T) {
	if _, err := LoadState(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("LoadState() succeeded on a missing file")
	}
}
