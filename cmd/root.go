package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examsim",
	Short: "Terminal exam simulator",
	Long:  "Examsim — timed multiple-choice exam sessions in the terminal, with adaptive ordering, history and exports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMSIM_DB env var)")
	rootCmd.PersistentFlags().String("data-dir", "data", "Directory holding the question bank")
	rootCmd.PersistentFlags().String("questions-file", "questions.jsonl", "Question bank file name inside the data dir")
	rootCmd.PersistentFlags().String("metadata-file", "metadata.json", "Bank metadata file name inside the data dir")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)

	initLogging()
}

// initLogging routes debug logs to a file when EXAMSIM_DEBUG names one.
// Logging to the terminal would corrupt the TUI, so the default sink is
// io.Discard.
func initLogging() {
	logrus.SetOutput(io.Discard)
	if path := os.Getenv("EXAMSIM_DEBUG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logrus.SetOutput(f)
			logrus.SetLevel(logrus.DebugLevel)
		}
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMSIM_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadPool reads the question bank and its metadata from the data dir.
// A missing metadata file is not an error; the bank just has no title or
// default weights.
func loadPool(cmd *cobra.Command) ([]question.Question, question.Metadata, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	qFile, _ := cmd.Flags().GetString("questions-file")
	mFile, _ := cmd.Flags().GetString("metadata-file")

	pool, err := question.Load(filepath.Join(dataDir, qFile))
	if err != nil {
		return nil, question.Metadata{}, err
	}

	meta, err := question.LoadMetadata(filepath.Join(dataDir, mFile))
	if err != nil {
		meta = question.Metadata{}
	}
	return pool, meta, nil
}
