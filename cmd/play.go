package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/app"
	"github.com/abhisek/examsim/internal/config"
	"github.com/abhisek/examsim/internal/exam"
	"github.com/abhisek/examsim/internal/question"
	"github.com/abhisek/examsim/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an exam session immediately",
	RunE:  runPlay,
}

func init() {
	f := playCmd.Flags()
	f.String("profile", "", "YAML exam profile with defaults (flags override)")
	f.IntP("num-questions", "n", 0, "Number of questions")
	f.Int("time-limit", 0, "Time limit in minutes")
	f.String("reveal", "", "Feedback policy: immediate or deferred")
	f.Bool("shuffle", false, "Shuffle the selected questions")
	f.Bool("shuffle-options", false, "Shuffle answer options per question")
	f.Bool("adaptive", false, "Bias question order toward weak domains")
	f.String("include-tags", "", "Comma-separated tags a question must carry one of")
	f.String("exclude-tags", "", "Comma-separated tags that disqualify a question")
	f.Int("min-difficulty", -1, "Minimum question difficulty")
	f.Int("max-difficulty", -1, "Maximum question difficulty")
	f.String("weights", "", "Domain weights as name:weight,name:weight")
	f.String("blueprint", "", "YAML file mapping domain to question count")
	f.Int64("seed", 0, "Random seed for reproducible selection")
	f.String("user", "", "Candidate name recorded in history")
	f.String("resume", "", "Resume a saved session from this file")
	f.String("save-state", "", "Allow saving an interrupted session to this file")
	f.Bool("live-timer", true, "Show the countdown while answering")
	f.Int("beep-threshold", 0, "Minutes remaining at which the timer turns red")
	f.Bool("open-media", false, "Open question media files with the system viewer")
}

func runPlay(cmd *cobra.Command, args []string) error {
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
	cfg.Title = meta.Title
	asm := exam.AssembleOpts{}

	var profile config.Profile
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		profile, err = config.LoadProfile(path)
		if err != nil {
			return err
		}
		applyProfile(&cfg, &asm, profile)
	}
	if err := applyFlags(cmd, &cfg, &asm); err != nil {
		return err
	}

	if len(asm.Weights) == 0 && len(asm.Blueprint) == 0 {
		asm.Weights = meta.Domains
		if len(asm.Weights) == 0 {
			asm.Weights = config.EqualWeights(question.Domains(pool))
		}
	}

	opts := app.Options{
		Store:     st,
		Pool:      pool,
		PoolTitle: meta.Title,
		Cfg:       cfg,
		Assemble:  asm,
		AutoStart: true,
	}
	opts.Seed, _ = cmd.Flags().GetInt64("seed")
	opts.SavePath, _ = cmd.Flags().GetString("save-state")

	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		saved, err := exam.LoadState(path)
		if err != nil {
			return err
		}
		opts.Resume = &saved
	}

	return app.Run(opts)
}

// applyProfile folds profile values into cfg and asm. Nil pointer fields mean
// the profile left the setting alone.
func applyProfile(cfg *exam.Config, asm *exam.AssembleOpts, p config.Profile) {
	if p.Title != "" {
		cfg.Title = p.Title
	}
	if p.NumQuestions > 0 {
		cfg.NumQuestions = p.NumQuestions
	}
	if p.TimeLimitMins > 0 {
		cfg.TimeLimit = time.Duration(p.TimeLimitMins) * time.Minute
	}
	if p.Reveal != "" {
		cfg.Reveal = parseReveal(p.Reveal)
	}
	if p.Shuffle != nil {
		cfg.Shuffle = *p.Shuffle
	}
	if p.ShuffleOptions != nil {
		cfg.ShuffleOptions = *p.ShuffleOptions
	}
	if p.Adaptive != nil {
		cfg.Adaptive = *p.Adaptive
	}
	if len(p.IncludeTags) > 0 {
		cfg.Bounds.IncludeTags = p.IncludeTags
	}
	if len(p.ExcludeTags) > 0 {
		cfg.Bounds.ExcludeTags = p.ExcludeTags
	}
	if p.MinDifficulty != nil {
		cfg.Bounds.MinDifficulty = p.MinDifficulty
	}
	if p.MaxDifficulty != nil {
		cfg.Bounds.MaxDifficulty = p.MaxDifficulty
	}
	if len(p.Weights) > 0 {
		asm.Weights = config.Normalize(p.Weights)
	}
	if len(p.Blueprint) > 0 {
		asm.Blueprint = p.Blueprint
	}
}

// applyFlags overrides cfg and asm with any flag the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *exam.Config, asm *exam.AssembleOpts) error {
	f := cmd.Flags()

	if f.Changed("num-questions") {
		cfg.NumQuestions, _ = f.GetInt("num-questions")
	}
	if f.Changed("time-limit") {
		mins, _ := f.GetInt("time-limit")
		cfg.TimeLimit = time.Duration(mins) * time.Minute
	}
	if f.Changed("reveal") {
		v, _ := f.GetString("reveal")
		cfg.Reveal = parseReveal(v)
	}
	if f.Changed("shuffle") {
		cfg.Shuffle, _ = f.GetBool("shuffle")
	}
	if f.Changed("shuffle-options") {
		cfg.ShuffleOptions, _ = f.GetBool("shuffle-options")
	}
	if f.Changed("adaptive") {
		cfg.Adaptive, _ = f.GetBool("adaptive")
	}
	if f.Changed("include-tags") {
		v, _ := f.GetString("include-tags")
		cfg.Bounds.IncludeTags = splitTags(v)
	}
	if f.Changed("exclude-tags") {
		v, _ := f.GetString("exclude-tags")
		cfg.Bounds.ExcludeTags = splitTags(v)
	}
	if f.Changed("min-difficulty") {
		v, _ := f.GetInt("min-difficulty")
		cfg.Bounds.MinDifficulty = &v
	}
	if f.Changed("max-difficulty") {
		v, _ := f.GetInt("max-difficulty")
		cfg.Bounds.MaxDifficulty = &v
	}
	if f.Changed("user") {
		cfg.User, _ = f.GetString("user")
	}
	if f.Changed("live-timer") {
		cfg.LiveTimer, _ = f.GetBool("live-timer")
	} else {
		cfg.LiveTimer = true
	}
	if f.Changed("beep-threshold") {
		mins, _ := f.GetInt("beep-threshold")
		cfg.BeepThreshold = time.Duration(mins) * time.Minute
	}
	if f.Changed("open-media") {
		cfg.OpenMedia, _ = f.GetBool("open-media")
	}

	if f.Changed("weights") {
		spec, _ := f.GetString("weights")
		w, err := config.ParseWeights(spec, asm.Weights)
		if err != nil {
			return err
		}
		asm.Weights = w
	}
	if f.Changed("blueprint") {
		path, _ := f.GetString("blueprint")
		bp, err := config.LoadBlueprint(path)
		if err != nil {
			return err
		}
		asm.Blueprint = bp
	}
	return nil
}

func parseReveal(v string) exam.RevealPolicy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "deferred", "end":
		return exam.RevealDeferred
	default:
		return exam.RevealImmediate
	}
}

func splitTags(spec string) []string {
	var out []string
	for _, t := range strings.Split(spec, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
