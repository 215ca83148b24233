// Package export renders finished session results into CSV, HTML, and Anki
// flashcard files. It only reads SessionResult values; nothing here feeds
// back into the engine.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/abhisek/examsim/internal/analytics"
)

// WriteCSV writes the session summary and per-domain breakdown to path.
func WriteCSV(res analytics.SessionResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{
		{"timestamp", "user", "total", "correct", "incorrect", "percentage"},
		{
			res.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			res.User,
			strconv.Itoa(res.Total),
			strconv.Itoa(res.Correct),
			strconv.Itoa(res.Incorrect),
			formatPct(res.Percentage),
		},
		{},
		{"Domain", "Correct", "Total", "%"},
	}
	for _, d := range sortedDomains(res.PerDomain) {
		st := res.PerDomain[d]
		records = append(records, []string{
			d,
			strconv.Itoa(st.Correct),
			strconv.Itoa(st.Total),
			formatPct(domainPct(st)),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func sortedDomains(per map[string]analytics.DomainCount) []string {
	out := make([]string, 0, len(per))
	for d := range per {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func domainPct(d analytics.DomainCount) float64 {
	if d.Total == 0 {
		return 0
	}
	return math.Round(float64(d.Correct)/float64(d.Total)*100*100) / 100
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
