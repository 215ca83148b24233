// Package analytics turns the raw answer log of a session into scored,
// per-domain-broken-down results.
package analytics

import (
	"math"
	"time"
)

// AnswerRecord is one answered question, appended in answer order.
type AnswerRecord struct {
	QuestionID int    `json:"question_id"`
	Chosen     string `json:"chosen"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"is_correct"`
	Domain     string `json:"domain"`
}

// DomainCount is the correct/total pair tracked per domain.
type DomainCount struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns correct/total, or 0 when the domain has no answers.
func (d DomainCount) Accuracy() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.Total)
}

// SessionResult is the immutable scored snapshot built once at session end.
type SessionResult struct {
	Timestamp        time.Time              `json:"timestamp"`
	User             string                 `json:"user"`
	Total            int                    `json:"total"`
	Correct          int                    `json:"correct"`
	Incorrect        int                    `json:"incorrect"`
	Percentage       float64                `json:"percentage"`
	PerDomain        map[string]DomainCount `json:"per_domain"`
	WrongQuestionIDs []int                  `json:"wrong_question_ids"`
	Answers          []AnswerRecord         `json:"answers"`
}

// DomainStats groups the answer log by domain. Domains never answered are
// absent from the result; callers needing an accuracy for such a domain
// default it to 0.5 (unknown, assume average).
func DomainStats(answers []AnswerRecord) map[string]DomainCount {
	stats := make(map[string]DomainCount)
	for _, a := range answers {
		d := stats[a.Domain]
		d.Total++
		if a.IsCorrect {
			d.Correct++
		}
		stats[a.Domain] = d
	}
	return stats
}

// BuildResult folds the final answer log into a SessionResult. It reads the
// clock for the timestamp but has no other side effects and does not retain
// or mutate its inputs.
func BuildResult(answers []AnswerRecord, user string) SessionResult {
	correct := 0
	var wrong []int
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		} else {
			wrong = append(wrong, a.QuestionID)
		}
	}

	total := len(answers)
	pct := 0.0
	if total > 0 {
		pct = roundTo(float64(correct)/float64(total)*100, 2)
	}

	log := make([]AnswerRecord, len(answers))
	copy(log, answers)

	return SessionResult{
		Timestamp:        time.Now().UTC(),
		User:             user,
		Total:            total,
		Correct:          correct,
		Incorrect:        total - correct,
		Percentage:       pct,
		PerDomain:        DomainStats(answers),
		WrongQuestionIDs: wrong,
		Answers:          log,
	}
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
