package question

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metadata describes a question bank: a display title and the default
// per-domain selection weights used when the caller supplies none.
type Metadata struct {
	Title   string             `json:"title"`
	Domains map[string]float64 `json:"domains"`
}

// Load reads a JSONL question file. Every non-blank line must be a single
// JSON object satisfying the record schema, and every decoded question must
// pass Validate. A malformed record fails the whole load; a session must not
// start on a partially valid bank.
func Load(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	var out []Question
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		if err := validateRecord([]byte(raw)); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		var q Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("%s:%d: decode: %w", path, line, err)
		}
		q.Answer = strings.ToUpper(q.Answer)
		if q.Kind == "" {
			q.Kind = "mcq"
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, q)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	return out, nil
}

// LoadMetadata reads the bank metadata JSON file.
func LoadMetadata(path string) (Metadata, error) {
	var m Metadata
	raw, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode metadata: %w", err)
	}
	return m, nil
}
