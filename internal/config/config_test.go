package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseWeights(t *testing.T) {
	got, err := ParseWeights("Networking:3, Security:1", nil)
	if err != nil {
		t.Fatalf("ParseWeights() = %v", err)
	}
	if math.Abs(got["Networking"]-0.75) > 1e-9 {
		t.Errorf("Networking = %v, want 0.75", got["Networking"])
	}
	if math.Abs(got["Security"]-0.25) > 1e-9 {
		t.Errorf("Security = %v, want 0.25", got["Security"])
	}
}

func TestParseWeights_EmptyUsesFallback(t *testing.T) {
	fallback := map[string]float64{"A": 1}
	got, err := ParseWeights("  ", fallback)
	if err != nil {
		t.Fatalf("ParseWeights() = %v", err)
	}
	if got["A"] != 1 {
		t.Errorf("fallback not returned: %v", got)
	}
}

func TestParseWeights_Errors(t *testing.T) {
	tests := []string{"Networking", "A:x", "A:-1"}
	for _, spec := range tests {
		if _, err := ParseWeights(spec, nil); err == nil {
			t.Errorf("ParseWeights(%q) accepted malformed input", spec)
		}
	}
}

func TestNormalize_ZeroSumUnchanged(t *testing.T) {
	in := map[string]float64{"A": 0, "B": 0}
	got := Normalize(in)
	if got["A"] != 0 || got["B"] != 0 {
		t.Errorf("Normalize() = %v, want unchanged", got)
	}
}

func TestEqualWeights(t *testing.T) {
	got := EqualWeights([]string{"A", "B", "C", "D"})
	for d, w := range got {
		if math.Abs(w-0.25) > 1e-9 {
			t.Errorf("weight[%s] = %v, want 0.25", d, w)
		}
	}
	if EqualWeights(nil) != nil {
		t.Error("EqualWeights(nil) != nil")
	}
}

func TestLoadProfile(t *testing.T) {
	raw := `
title: Mock Exam
num_questions: 20
time_limit_minutes: 30
reveal: deferred
adaptive: true
include_tags: [core]
weights:
  Networking: 0.6
  Security: 0.4
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() = %v", err)
	}
	if p.Title != "Mock Exam" || p.NumQuestions != 20 || p.TimeLimitMins != 30 {
		t.Errorf("profile = %+v", p)
	}
	if p.Reveal != "deferred" {
		t.Errorf("Reveal = %q", p.Reveal)
	}
	if p.Adaptive == nil || !*p.Adaptive {
		t.Error("Adaptive not decoded")
	}
	if p.Weights["Networking"] != 0.6 {
		t.Errorf("Weights = %v", p.Weights)
	}
}

func TestLoadBlueprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bp.yaml")
	if err := os.WriteFile(path, []byte("Networking: 10\nSecurity: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bp, err := LoadBlueprint(path)
	if err != nil {
		t.Fatalf("LoadBlueprint() = %v", err)
	}
	if bp["Networking"] != 10 || bp["Security"] != 5 {
		t.Errorf("blueprint = %v", bp)
	}
}
