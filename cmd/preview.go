package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/question"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show per-domain question counts after filtering (no database)",
	Long: `Load the question bank, apply the tag and difficulty filters, and print
how many questions each domain would contribute. Useful for checking that a
blueprint or weight map is satisfiable before starting a session.`,
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.String("include-tags", "", "Comma-separated tags a question must carry one of")
	f.String("exclude-tags", "", "Comma-separated tags that disqualify a question")
	f.Int("min-difficulty", -1, "Minimum question difficulty")
	f.Int("max-difficulty", -1, "Maximum question difficulty")
}

func runPreview(cmd *cobra.Command, args []string) error {
	pool, meta, err := loadPool(cmd)
	if err != nil {
		return err
	}

	var bounds question.FilterBounds
	f := cmd.Flags()
	if v, _ := f.GetString("include-tags"); v != "" {
		bounds.IncludeTags = splitTags(v)
	}
	if v, _ := f.GetString("exclude-tags"); v != "" {
		bounds.ExcludeTags = splitTags(v)
	}
	if f.Changed("min-difficulty") {
		v, _ := f.GetInt("min-difficulty")
		bounds.MinDifficulty = &v
	}
	if f.Changed("max-difficulty") {
		v, _ := f.GetInt("max-difficulty")
		bounds.MaxDifficulty = &v
	}

	eligible := question.Filter(pool, bounds)
	byDomain := question.ByDomain(eligible)

	if meta.Title != "" {
		fmt.Println(meta.Title)
	}
	fmt.Printf("%d of %d questions eligible\n\n", len(eligible), len(pool))

	domains := make([]string, 0, len(byDomain))
	width := 0
	for d := range byDomain {
		domains = append(domains, d)
		if len(d) > width {
			width = len(d)
		}
	}
	sort.Strings(domains)

	for _, d := range domains {
		fmt.Printf("  %-*s  %d\n", width, d, len(byDomain[d]))
	}
	return nil
}
