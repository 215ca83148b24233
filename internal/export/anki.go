package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/question"
)

// WriteAnkiWrong writes an Anki-importable CSV holding one card per wrongly
// answered question. qmap indexes the session's working set by id; answers
// whose question is missing from it are skipped.
func WriteAnkiWrong(res analytics.SessionResult, qmap map[int]question.Question, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create anki csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{"Front", "Back", "Tags"}}

	wrong := make(map[int]bool, len(res.WrongQuestionIDs))
	for _, id := range res.WrongQuestionIDs {
		wrong[id] = true
	}

	for _, a := range res.Answers {
		if !wrong[a.QuestionID] {
			continue
		}
		q, ok := qmap[a.QuestionID]
		if !ok {
			continue
		}
		records = append(records, []string{
			cardFront(q),
			fmt.Sprintf("Correct: %s — %s", a.Correct, q.Explanation),
			ankiTag(a.Domain),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write anki csv: %w", err)
	}
	return nil
}

func cardFront(q question.Question) string {
	parts := []string{q.Prompt}
	for _, l := range question.Labels {
		parts = append(parts, fmt.Sprintf("%s. %s", l, q.Options[l]))
	}
	return strings.Join(parts, "<br>")
}

// ankiTag converts a domain label into a single Anki tag token.
func ankiTag(domain string) string {
	t := strings.ReplaceAll(domain, " ", "_")
	return strings.ReplaceAll(t, "&", "and")
}
