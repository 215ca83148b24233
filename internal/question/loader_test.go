package question

import (
	"os"
	"path/filepath"
	"testing"
)

const goodJSONL = `{"id":1,"domain":"Networking","type":"mcq","question":"Q1?","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"a","answer_text":"because","tags":["tcp"],"difficulty":2}

{"id":2,"domain":"Security","question":"Q2?","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"C"}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoad(t *testing.T) {
	path := writeTemp(t, "questions.jsonl", goodJSONL)
	qs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("Load() returned %d questions, want 2 (blank lines skipped)", len(qs))
	}
	if qs[0].Answer != "A" {
		t.Errorf("answer not normalized to upper case: %q", qs[0].Answer)
	}
	if qs[1].Kind != "mcq" {
		t.Errorf("missing type not defaulted: %q", qs[1].Kind)
	}
	if qs[0].Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", qs[0].Difficulty)
	}
}

func TestLoad_RejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"answer not a label", `{"id":1,"domain":"D","question":"?","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"E"}`},
		{"missing option", `{"id":1,"domain":"D","question":"?","options":{"A":"a","B":"b","C":"c"},"answer":"A"}`},
		{"missing prompt", `{"id":1,"domain":"D","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"A"}`},
		{"not json", `{id:1}`},
		{"unknown field", `{"id":1,"domain":"D","question":"?","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"A","bogus":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.jsonl", tt.line+"\n")
			if _, err := Load(path); err == nil {
				t.Error("Load() accepted a malformed record")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("Load() succeeded on a missing file")
	}
}

func TestLoadMetadata(t *testing.T) {
	path := writeTemp(t, "metadata.json", `{"title":"Practice Exam","domains":{"Networking":0.6,"Security":0.4}}`)
	m, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("LoadMetadata() = %v", err)
	}
	if m.Title != "Practice Exam" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Domains["Networking"] != 0.6 {
		t.Errorf("Domains[Networking] = %v, want 0.6", m.Domains["Networking"])
	}
}
