package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/geobench/internal/config"
	"github.com/user/geobench/internal/geom"
)

var (
	singleAddr        string
	singleDialect     string
	singleName        string
	singleData        int
	singleQueries     int
	singleConcurrency int
	singleCollection  string
	singleSeed        int64
	singleSettle      time.Duration
	singleLimit       int
)

var singleCmd = &cobra.Command{
	Use:          "single",
	Short:        "Benchmark one geospatial server",
	Long:         "Load one target with synthetic polygons, run the INTERSECTS workload, and print its statistics.",
	SilenceUsage: true,
	RunE:         runSingle,
}

func init() {
	f := singleCmd.Flags()
	f.StringVar(&singleAddr, "addr", "localhost:6379", "Target address")
	f.StringVar(&singleDialect, "dialect", "geo42", "Dialect: geo42 or tile38")
	f.StringVar(&singleName, "name", "", "Display name (default: dialect)")
	f.IntVar(&singleData, "data", 100000, "Number of objects to load")
	f.IntVar(&singleQueries, "queries", 10000, "Number of INTERSECTS queries")
	f.IntVar(&singleConcurrency, "concurrency", 100, "Concurrent workers")
	f.StringVar(&singleCollection, "collection", "benchmark_collection", "Collection name")
	f.Int64Var(&singleSeed, "seed", 0, "Workload random seed (0 = time-based)")
	f.DurationVar(&singleSettle, "settle", 3*time.Second, "Pause between load and query phases")
	f.IntVar(&singleLimit, "limit", 0, "INTERSECTS result limit (0 = dialect default)")

	rootCmd.AddCommand(singleCmd)
}

func runSingle(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.DataCount = singleData
	cfg.QueryCount = singleQueries
	cfg.Concurrency = singleConcurrency
	cfg.Collection = singleCollection
	cfg.Seed = singleSeed
	cfg.SettlePause = config.Duration(singleSettle)
	cfg.IntersectsLimit = singleLimit
	cfg.Primary = config.Target{Name: singleName, Addr: singleAddr, Dialect: singleDialect}
	if err := cfg.ValidateSingle(); err != nil {
		return err
	}

	ctx := cmd.Context()

	t, err := newTarget(cfg.Primary)
	if err != nil {
		return err
	}
	defer t.client.Close()

	fmt.Printf("geobench run %s\n", uuid.NewString())
	fmt.Printf("  target:      %s (%s)\n", t.name, cfg.Primary.Addr)
	fmt.Printf("  objects:     %d\n", cfg.DataCount)
	fmt.Printf("  queries:     %d\n", cfg.QueryCount)
	fmt.Printf("  concurrency: %d\n", cfg.Concurrency)

	if err := t.client.Ping(ctx); err != nil {
		return fmt.Errorf("cannot reach %s at %s: %w", t.name, t.client.Addr(), err)
	}

	gen, err := geom.NewGenerator(cfg.Bounds, workloadSeed(cfg.Seed))
	if err != nil {
		return err
	}
	slog.Info("generating workload", "objects", cfg.DataCount, "queries", cfg.QueryCount)
	items := gen.Items(cfg.DataCount)
	rects := gen.Rects(cfg.QueryCount)

	if _, err := loadPhase(ctx, t, cfg, items); err != nil {
		return err
	}

	if cfg.SettlePause > 0 {
		slog.Info("settling before query phase", "pause", time.Duration(cfg.SettlePause))
		time.Sleep(time.Duration(cfg.SettlePause))
	}

	if _, err := queryPhase(ctx, t, cfg, rects); err != nil {
		return err
	}
	return nil
}
