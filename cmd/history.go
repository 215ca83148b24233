package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past exam sessions",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.String("user", "", "Only show sessions for this candidate")
	f.Int("limit", 20, "Maximum number of sessions to list (0 = all)")
	f.Bool("domains", false, "Also print cumulative per-domain accuracy")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	repo := st.History()

	user, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")

	sessions, err := repo.List(ctx, user, limit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	for _, s := range sessions {
		mode := "linear"
		if s.Adaptive {
			mode = "adaptive"
		}
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %-10s  %-30s  %3d/%-3d  %6.2f%%  %s\n",
			s.Timestamp.Format("2006-01-02 15:04"),
			s.User, title, s.Correct, s.Total, s.Percentage, mode)
	}

	if show, _ := cmd.Flags().GetBool("domains"); show {
		totals, err := repo.DomainTotals(ctx, user)
		if err != nil {
			return fmt.Errorf("domain totals: %w", err)
		}

		domains := make([]string, 0, len(totals))
		width := 0
		for d := range totals {
			domains = append(domains, d)
			if len(d) > width {
				width = len(d)
			}
		}
		sort.Strings(domains)

		fmt.Println()
		for _, d := range domains {
			t := totals[d]
			fmt.Printf("  %-*s  %3d/%-3d  %5.1f%%\n",
				width, d, t.Correct, t.Total, t.Accuracy()*100)
		}
	}
	return nil
}
