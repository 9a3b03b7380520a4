package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/geobench/internal/config"
	"github.com/user/geobench/internal/geom"
	"github.com/user/geobench/internal/report"
	"github.com/user/geobench/internal/stats"
)

// ── flag variables ──────────────────────────────────────────────────────────

var (
	benchConfigPath  string
	benchData        int
	benchQueries     int
	benchConcurrency int
	benchCollection  string
	benchSeed        int64
	benchSettle      time.Duration
	benchLimit       int
	benchPreset      string

	benchPrimaryAddr     string
	benchPrimaryDialect  string
	benchPrimaryName     string
	benchBaselineAddr    string
	benchBaselineDialect string
	benchBaselineName    string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark two geospatial servers and compare them",
	Long: `Load both targets with the same synthetic polygon set, run the same
concurrent INTERSECTS workload against each, and print a side-by-side
latency/throughput comparison.

Presets (--preset):
  smoke   1k objects, 100 queries, 10 concurrency
  full    100k objects, 10k queries, 100 concurrency`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Parent() != nil && cmd.Parent().PersistentPreRun != nil {
			cmd.Parent().PersistentPreRun(cmd, args)
		}
		return benchApplyPreset(cmd)
	},
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchConfigPath, "config", "", "YAML config file (flags override it)")
	f.IntVar(&benchData, "data", 100000, "Number of objects to load per target")
	f.IntVar(&benchQueries, "queries", 10000, "Number of INTERSECTS queries per target")
	f.IntVar(&benchConcurrency, "concurrency", 100, "Concurrent workers")
	f.StringVar(&benchCollection, "collection", "benchmark_collection", "Collection name")
	f.Int64Var(&benchSeed, "seed", 0, "Workload random seed (0 = time-based)")
	f.DurationVar(&benchSettle, "settle", 3*time.Second, "Pause between load and query phases")
	f.IntVar(&benchLimit, "limit", 0, "INTERSECTS result limit (0 = dialect default)")
	f.StringVar(&benchPreset, "preset", "", "Preset: smoke or full")

	f.StringVar(&benchPrimaryAddr, "primary-addr", "localhost:6379", "Primary target address")
	f.StringVar(&benchPrimaryDialect, "primary-dialect", "geo42", "Primary dialect: geo42 or tile38")
	f.StringVar(&benchPrimaryName, "primary-name", "", "Primary display name (default: dialect)")
	f.StringVar(&benchBaselineAddr, "baseline-addr", "localhost:9851", "Baseline target address")
	f.StringVar(&benchBaselineDialect, "baseline-dialect", "tile38", "Baseline dialect: geo42 or tile38")
	f.StringVar(&benchBaselineName, "baseline-name", "", "Baseline display name (default: dialect)")

	rootCmd.AddCommand(benchCmd)
}

// ── preset logic ────────────────────────────────────────────────────────────

func benchApplyPreset(cmd *cobra.Command) error {
	if benchPreset == "" {
		return nil
	}

	set := func(name string, val int) {
		if cmd.Flags().Changed(name) {
			return
		}
		cmd.Flags().Set(name, strconv.Itoa(val))
	}

	switch benchPreset {
	case "smoke":
		set("data", 1000)
		set("queries", 100)
		set("concurrency", 10)
	case "full":
		set("data", 100000)
		set("queries", 10000)
		set("concurrency", 100)
	default:
		return fmt.Errorf("unknown preset %q (expected smoke or full)", benchPreset)
	}
	return nil
}

// ── config assembly ─────────────────────────────────────────────────────────

func benchConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if benchConfigPath != "" {
		loaded, err := config.Load(benchConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	override := benchConfigPath == ""
	changed := func(name string) bool { return override || f.Changed(name) }

	if changed("data") {
		cfg.DataCount = benchData
	}
	if changed("queries") {
		cfg.QueryCount = benchQueries
	}
	if changed("concurrency") {
		cfg.Concurrency = benchConcurrency
	}
	if changed("collection") {
		cfg.Collection = benchCollection
	}
	if changed("seed") {
		cfg.Seed = benchSeed
	}
	if changed("settle") {
		cfg.SettlePause = config.Duration(benchSettle)
	}
	if changed("limit") {
		cfg.IntersectsLimit = benchLimit
	}
	if changed("primary-addr") {
		cfg.Primary.Addr = benchPrimaryAddr
	}
	if changed("primary-dialect") {
		cfg.Primary.Dialect = benchPrimaryDialect
	}
	if changed("primary-name") {
		cfg.Primary.Name = benchPrimaryName
	}
	if changed("baseline-addr") {
		cfg.Baseline.Addr = benchBaselineAddr
	}
	if changed("baseline-dialect") {
		cfg.Baseline.Dialect = benchBaselineDialect
	}
	if changed("baseline-name") {
		cfg.Baseline.Name = benchBaselineName
	}
	return cfg, nil
}

// ── main run ────────────────────────────────────────────────────────────────

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := benchConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	primary, err := newTarget(cfg.Primary)
	if err != nil {
		return err
	}
	defer primary.client.Close()
	baseline, err := newTarget(cfg.Baseline)
	if err != nil {
		return err
	}
	defer baseline.client.Close()

	fmt.Printf("geobench run %s\n", uuid.NewString())
	fmt.Printf("  primary:     %s (%s)\n", primary.name, cfg.Primary.Addr)
	fmt.Printf("  baseline:    %s (%s)\n", baseline.name, cfg.Baseline.Addr)
	fmt.Printf("  objects:     %d\n", cfg.DataCount)
	fmt.Printf("  queries:     %d\n", cfg.QueryCount)
	fmt.Printf("  concurrency: %d\n", cfg.Concurrency)

	for _, t := range []target{primary, baseline} {
		if err := t.client.Ping(ctx); err != nil {
			return fmt.Errorf("cannot reach %s at %s: %w", t.name, t.client.Addr(), err)
		}
	}

	gen, err := geom.NewGenerator(cfg.Bounds, workloadSeed(cfg.Seed))
	if err != nil {
		return err
	}
	slog.Info("generating workload", "objects", cfg.DataCount, "queries", cfg.QueryCount)
	items := gen.Items(cfg.DataCount)
	rects := gen.Rects(cfg.QueryCount)

	if _, err := loadPhase(ctx, primary, cfg, items); err != nil {
		return err
	}
	if _, err := loadPhase(ctx, baseline, cfg, items); err != nil {
		return err
	}

	if cfg.SettlePause > 0 {
		slog.Info("settling before query phase", "pause", time.Duration(cfg.SettlePause))
		time.Sleep(time.Duration(cfg.SettlePause))
	}

	primarySummary, err := queryPhase(ctx, primary, cfg, rects)
	if err != nil {
		return err
	}
	baselineSummary, err := queryPhase(ctx, baseline, cfg, rects)
	if err != nil {
		return err
	}

	fmt.Println()
	report.PrintComparison(os.Stdout, stats.Compare(primary.name, primarySummary, baseline.name, baselineSummary))
	return nil
}
