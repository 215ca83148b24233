package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/export"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored session result",
	Long: `Write a stored session result to disk as a CSV summary, an HTML report,
or an Anki-importable CSV of the questions answered wrong. Without --session
the most recent session is exported.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("session", "", "Session ID to export (default: most recent)")
	f.String("user", "", "Candidate whose latest session to export")
	f.String("format", "csv", "Output format: csv, html or anki")
	f.StringP("out", "o", "", "Output file path (default derived from format)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		user, _ := cmd.Flags().GetString("user")
		sessionID, err = repo.Latest(ctx, user)
		if err != nil {
			return fmt.Errorf("find latest session: %w", err)
		}
		if sessionID == "" {
			return fmt.Errorf("no sessions recorded")
		}
	}

	res, err := repo.Result(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	switch format {
	case "csv":
		if out == "" {
			out = "exam_report.csv"
		}
		err = export.WriteCSV(res, out)
	case "html":
		if out == "" {
			out = "exam_report.html"
		}
		err = export.WriteHTML(res, out)
	case "anki":
		if out == "" {
			out = "anki_wrong.csv"
		}
		// Anki cards need the full question text, which history does not
		// store; resolve wrong answers against the current bank.
		pool, _, perr := loadPool(cmd)
		if perr != nil {
			return fmt.Errorf("load question bank: %w", perr)
		}
		qmap := make(map[int]question.Question, len(pool))
		for _, q := range pool {
			qmap[q.ID] = q
		}
		err = export.WriteAnkiWrong(res, qmap, out)
	default:
		return fmt.Errorf("unknown format %q: expected csv, html or anki", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}
