// Package main provides the CLI entrypoint for tenboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/tenboard/internal/config"
	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/report"
	"github.com/verte-zerg/tenboard/internal/score"
	"github.com/verte-zerg/tenboard/internal/search"
	"github.com/verte-zerg/tenboard/internal/store"
)

const (
	defaultIterations = 2000
	defaultStagnation = 500
	defaultHistory    = 20
)

var (
	searchCorpusPath  string
	searchIterations  int
	searchTimeLimit   string
	searchStagnation  int
	searchPolicy      string
	searchInitialTemp float64
	searchCooling     float64
	searchNeighbors   int
	searchParallelism int
	searchRandSeed    int64
	searchFromBase    bool
	searchSave        bool
	searchVerbose     bool

	evalCorpusPath string
	evalRunID      int64

	compareCorpusPath string

	historyLimit int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tenboard",
		Short:         "Chorded ten-key layout optimizer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSearchCmd,
	}

	rootCmd.Flags().StringVar(&searchCorpusPath, "corpus", "", "corpus text file, '-' for stdin (default: built-in English frequencies)")
	rootCmd.Flags().IntVar(&searchIterations, "iterations", defaultIterations, "maximum search rounds (0 = unlimited, needs --time-limit)")
	rootCmd.Flags().StringVar(&searchTimeLimit, "time-limit", "", "wall-clock budget, e.g. 30s or 5m")
	rootCmd.Flags().IntVar(&searchStagnation, "stagnation", defaultStagnation, "stop after N rounds without improvement (0 = never)")
	rootCmd.Flags().StringVar(&searchPolicy, "policy", search.PolicyHillClimb, "acceptance policy: hill_climb or annealing")
	rootCmd.Flags().Float64Var(&searchInitialTemp, "initial-temp", search.DefaultInitialTemp, "annealing starting temperature")
	rootCmd.Flags().Float64Var(&searchCooling, "cooling", search.DefaultCooling, "annealing per-round temperature multiplier (0-1)")
	rootCmd.Flags().IntVar(&searchNeighbors, "neighbors", search.DefaultNeighbors, "candidate swaps scored per round")
	rootCmd.Flags().IntVar(&searchParallelism, "parallelism", search.DefaultParallelism, "concurrent neighbor evaluations")
	rootCmd.Flags().Int64Var(&searchRandSeed, "rand-seed", 0, "RNG seed (0 = time-based)")
	rootCmd.Flags().BoolVar(&searchFromBase, "from-asetniop", false, "start from the ASETNIOP layout instead of a random one")
	rootCmd.Flags().BoolVar(&searchSave, "save", false, "persist the run to the local database")
	rootCmd.Flags().BoolVar(&searchVerbose, "verbose", false, "log search progress")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSearchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "iterations", &searchIterations, fileCfg.Search.Iterations)
	applyStringConfig(cmd, "time-limit", &searchTimeLimit, fileCfg.Search.TimeLimit)
	applyIntConfig(cmd, "stagnation", &searchStagnation, fileCfg.Search.Stagnation)
	applyStringConfig(cmd, "policy", &searchPolicy, fileCfg.Search.Policy)
	applyFloatConfig(cmd, "initial-temp", &searchInitialTemp, fileCfg.Search.InitialTemp)
	applyFloatConfig(cmd, "cooling", &searchCooling, fileCfg.Search.Cooling)
	applyIntConfig(cmd, "neighbors", &searchNeighbors, fileCfg.Search.Neighbors)
	applyIntConfig(cmd, "parallelism", &searchParallelism, fileCfg.Search.Parallelism)
	applyInt64Config(cmd, "rand-seed", &searchRandSeed, fileCfg.Search.RandSeed)

	var timeLimit time.Duration
	if searchTimeLimit != "" {
		timeLimit, err = time.ParseDuration(searchTimeLimit)
		if err != nil {
			return fmt.Errorf("invalid --time-limit value: %w", err)
		}
	}

	c, corpusName, err := loadCorpus(searchCorpusPath)
	if err != nil {
		return err
	}

	scorer, err := score.NewScorer(mergeWeights(fileCfg.Weights))
	if err != nil {
		return fmt.Errorf("failed to build scorer: %w", err)
	}

	policy, err := search.PolicyByName(searchPolicy, searchInitialTemp, searchCooling)
	if err != nil {
		return err
	}

	logger, err := newLogger(searchVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() {
		if serr := logger.Sync(); serr != nil {
			// Best-effort log flush.
			_ = serr
		}
	}()

	opts := search.Options{
		Alphabet:    c.Alphabet(),
		Iterations:  searchIterations,
		TimeLimit:   timeLimit,
		Stagnation:  searchStagnation,
		Policy:      policy,
		Neighbors:   searchNeighbors,
		Parallelism: searchParallelism,
		RandSeed:    searchRandSeed,
		Logger:      logger,
	}
	if searchFromBase {
		opts.Seed = layout.ASETNIOP()
	}

	engine, err := search.New(scorer, opts)
	if err != nil {
		return err
	}
	started := time.Now().UTC()
	res, err := engine.Run(context.Background(), c)
	if err != nil {
		return fmt.Errorf("failed to run search: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := report.RenderSearch(out, res); err != nil {
		return fmt.Errorf("failed to render search summary: %w", err)
	}
	if err := report.RenderLayout(out, "Best layout", res.Best); err != nil {
		return fmt.Errorf("failed to render layout: %w", err)
	}
	if err := report.RenderLoads(out, res.Best, c); err != nil {
		return fmt.Errorf("failed to render finger loads: %w", err)
	}
	baseline := scorer.Score(layout.ASETNIOP(), c)
	if err := report.RenderComparison(out, []string{"best", "asetniop"}, []score.Vector{res.BestVector, baseline}); err != nil {
		return fmt.Errorf("failed to render comparison: %w", err)
	}

	if searchSave {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		run := store.Run{
			StartedAt:   started,
			EndedAt:     started.Add(res.Duration),
			Policy:      policy.Name(),
			CorpusName:  corpusName,
			Alphabet:    res.Best.Len(),
			Rounds:      res.Rounds,
			Evaluations: res.Evaluations,
			BestScore:   res.BestVector.Score,
			SeedScore:   res.SeedVector.Score,
			Stopped:     res.Stopped,
			RandSeed:    res.RandSeed,
		}
		id, err := st.InsertRun(context.Background(), run, res.BestVector.Metrics, res.Best)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		if _, err := fmt.Fprintf(out, "Saved run %d\n", id); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score a layout against a corpus",
		Args:  cobra.NoArgs,
		RunE:  runEvalCmd,
	}
	cmd.Flags().StringVar(&evalCorpusPath, "corpus", "", "corpus text file, '-' for stdin (default: built-in English frequencies)")
	cmd.Flags().Int64Var(&evalRunID, "run", 0, "evaluate a saved run's best layout instead of ASETNIOP")
	return cmd
}

func runEvalCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c, _, err := loadCorpus(evalCorpusPath)
	if err != nil {
		return err
	}
	scorer, err := score.NewScorer(mergeWeights(fileCfg.Weights))
	if err != nil {
		return fmt.Errorf("failed to build scorer: %w", err)
	}

	title := "ASETNIOP"
	l := layout.ASETNIOP()
	if evalRunID > 0 {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		l, err = st.RunLayout(context.Background(), evalRunID)
		if err != nil {
			return fmt.Errorf("failed to load run layout: %w", err)
		}
		title = fmt.Sprintf("Run %d", evalRunID)
	}

	out := cmd.OutOrStdout()
	if err := report.RenderLayout(out, title, l); err != nil {
		return fmt.Errorf("failed to render layout: %w", err)
	}
	if err := report.RenderVector(out, title, scorer.Score(l, c)); err != nil {
		return fmt.Errorf("failed to render score: %w", err)
	}
	if err := report.RenderLoads(out, l, c); err != nil {
		return fmt.Errorf("failed to render finger loads: %w", err)
	}
	return nil
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [run-id ...]",
		Short: "Compare saved runs against ASETNIOP",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompareCmd,
	}
	cmd.Flags().StringVar(&compareCorpusPath, "corpus", "", "corpus text file, '-' for stdin (default: built-in English frequencies)")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c, _, err := loadCorpus(compareCorpusPath)
	if err != nil {
		return err
	}
	scorer, err := score.NewScorer(mergeWeights(fileCfg.Weights))
	if err != nil {
		return fmt.Errorf("failed to build scorer: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	names := []string{"asetniop"}
	vectors := []score.Vector{scorer.Score(layout.ASETNIOP(), c)}
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", arg, err)
		}
		l, err := st.RunLayout(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", id, err)
		}
		names = append(names, fmt.Sprintf("run %d", id))
		vectors = append(vectors, scorer.Score(l, c))
	}
	return report.RenderComparison(cmd.OutOrStdout(), names, vectors)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved search runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistory, "maximum runs to list")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	runs, err := st.ListRuns(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.RenderRuns(cmd.OutOrStdout(), runs)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadCorpus resolves the corpus flag: empty means built-in English
// frequencies, "-" reads stdin, anything else is a text file path.
func loadCorpus(path string) (*corpus.Corpus, string, error) {
	switch path {
	case "":
		return corpus.English(), "english", nil
	case "-":
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		c, err := corpus.FromText(string(text))
		if err != nil {
			return nil, "", fmt.Errorf("failed to build corpus from stdin: %w", err)
		}
		return c, "stdin", nil
	default:
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read corpus file: %w", err)
		}
		c, err := corpus.FromText(string(text))
		if err != nil {
			return nil, "", fmt.Errorf("failed to build corpus from %s: %w", path, err)
		}
		return c, filepath.Base(path), nil
	}
}

// mergeWeights overlays config file weights on the defaults.
func mergeWeights(fileWeights map[string]float64) score.Weights {
	weights := score.DefaultWeights()
	for name, value := range fileWeights {
		weights[name] = value
	}
	return weights
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tenboard configuration
# Uncomment a value to enable it. CLI flags override config values.

[search]
# iterations = %d       # Maximum search rounds (0 = unlimited, needs time-limit)
# time-limit = "30s"    # Wall-clock budget
# stagnation = %d        # Stop after N rounds without improvement (0 = never)
# policy = %q   # Acceptance policy: hill_climb or annealing
# initial-temp = %.1f    # Annealing starting temperature
# cooling = %.3f        # Annealing per-round temperature multiplier (0-1)
# neighbors = %d         # Candidate swaps scored per round
# parallelism = %d       # Concurrent neighbor evaluations
# rand-seed = 42        # RNG seed (0 = time-based)

[weights]
# effort = -1.0         # Press cost; negative rewards cheap keys
# same_finger = -3.0    # Same-finger bigram rate
# load_balance = -5.0   # Per-finger load variance
# alternation = 1.0     # Hand alternation rate; positive rewards it
# travel = -0.5         # Finger travel distance
`,
		defaultIterations,
		defaultStagnation,
		search.PolicyHillClimb,
		search.DefaultInitialTemp,
		search.DefaultCooling,
		search.DefaultNeighbors,
		search.DefaultParallelism,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
