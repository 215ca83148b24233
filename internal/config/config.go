// Package config loads exam profiles and selection blueprints from YAML
// files and parses the compact weight syntax used on the command line.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile carries reusable exam defaults. Command-line flags override any
// field the profile sets.
type Profile struct {
	Title          string             `yaml:"title"`
	NumQuestions   int                `yaml:"num_questions"`
	TimeLimitMins  int                `yaml:"time_limit_minutes"`
	Reveal         string             `yaml:"reveal"`
	Shuffle        *bool              `yaml:"shuffle"`
	ShuffleOptions *bool              `yaml:"shuffle_options"`
	Adaptive       *bool              `yaml:"adaptive"`
	IncludeTags    []string           `yaml:"include_tags"`
	ExcludeTags    []string           `yaml:"exclude_tags"`
	MinDifficulty  *int               `yaml:"min_difficulty"`
	MaxDifficulty  *int               `yaml:"max_difficulty"`
	Weights        map[string]float64 `yaml:"weights"`
	Blueprint      map[string]int     `yaml:"blueprint"`
}

// LoadProfile reads a YAML exam profile from path.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// LoadBlueprint reads an explicit domain → question-count map from a YAML
// file.
func LoadBlueprint(path string) (map[string]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	var bp map[string]int
	if err := yaml.Unmarshal(raw, &bp); err != nil {
		return nil, fmt.Errorf("decode blueprint: %w", err)
	}
	return bp, nil
}

// ParseWeights parses the "domain:weight,domain:weight" flag syntax and
// normalizes the weights to sum to 1. An empty spec returns fallback
// unchanged.
func ParseWeights(spec string, fallback map[string]float64) (map[string]float64, error) {
	if strings.TrimSpace(spec) == "" {
		return fallback, nil
	}

	out := make(map[string]float64)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("weight %q: expected domain:value", part)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", part, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("weight %q: must be non-negative", part)
		}
		out[strings.TrimSpace(name)] = w
	}

	return Normalize(out), nil
}

// Normalize scales weights to sum to 1. A zero or empty map is returned
// unchanged.
func Normalize(weights map[string]float64) map[string]float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return weights
	}
	out := make(map[string]float64, len(weights))
	for d, w := range weights {
		out[d] = w / sum
	}
	return out
}

// EqualWeights assigns every domain the same weight summing to 1.
func EqualWeights(domains []string) map[string]float64 {
	if len(domains) == 0 {
		return nil
	}
	w := 1.0 / float64(len(domains))
	out := make(map[string]float64, len(domains))
	for _, d := range domains {
		out[d] = w
	}
	return out
}
