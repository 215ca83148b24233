package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/app"
	"github.com/abhisek/examsim/internal/config"
	"github.com/abhisek/examsim/internal/exam"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/store"
)

// runApp opens the store, loads the question bank, and launches the TUI on
// the home screen with default exam settings.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	pool, meta, err := loadPool(cmd)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	cfg := exam.DefaultConfig()
	cfg.LiveTimer = true
	if meta.Title != "" {
		cfg.Title = meta.Title
	}

	weights := meta.Domains
	if len(weights) == 0 {
		weights = config.EqualWeights(question.Domains(pool))
	}

	return app.Run(app.Options{
		Store:     st,
		Pool:      pool,
		PoolTitle: meta.Title,
		Cfg:       cfg,
		Assemble:  exam.AssembleOpts{Weights: weights},
	})
}
