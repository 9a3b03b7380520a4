package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"

	"github.com/user/geobench/internal/bench"
	"github.com/user/geobench/internal/config"
	"github.com/user/geobench/internal/geom"
	"github.com/user/geobench/internal/report"
	"github.com/user/geobench/internal/stats"
	"github.com/user/geobench/pkg/geoclient"
)

const (
	insertProgressEvery = 5000
	queryProgressEvery  = 100
)

// target pairs one configured endpoint with its client.
type target struct {
	name   string
	client *geoclient.Client
}

func newTarget(tc config.Target) (target, error) {
	dialect, err := geoclient.ParseDialect(tc.Dialect)
	if err != nil {
		return target{}, err
	}
	name := tc.Name
	if name == "" {
		name = string(dialect)
	}
	return target{name: name, client: geoclient.New(tc.Addr, dialect)}, nil
}

func progressPrinter(label string) func(done, total int) {
	return func(done, total int) {
		fmt.Printf("  %s progress: %d/%d (%.1f%%)\n", label, done, total, float64(done)/float64(total)*100)
	}
}

func runOps(ctx context.Context, t target, concurrency int, ops []bench.Op[*geoclient.Conn], label string, progressEvery int) (bench.Result, error) {
	runner := &bench.Runner[*geoclient.Conn]{
		Dial: func(ctx context.Context) (*geoclient.Conn, error) {
			return t.client.Conn(ctx)
		},
		Concurrency:   concurrency,
		ProgressEvery: progressEvery,
		OnProgress:    progressPrinter(label),
	}
	return runner.Run(ctx, ops)
}

func insertOps(collection string, items []geom.Item) ([]bench.Op[*geoclient.Conn], error) {
	ops := make([]bench.Op[*geoclient.Conn], len(items))
	for i, it := range items {
		raw, err := geom.MarshalGeoJSON(it.Polygon)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", it.ID, err)
		}
		id := it.ID
		ops[i] = func(ctx context.Context, conn *geoclient.Conn) error {
			return conn.Set(ctx, collection, id, raw)
		}
	}
	return ops, nil
}

func queryOps(collection string, rects []orb.Polygon, limit int) ([]bench.Op[*geoclient.Conn], error) {
	ops := make([]bench.Op[*geoclient.Conn], len(rects))
	for i, p := range rects {
		raw, err := geom.MarshalGeoJSON(p)
		if err != nil {
			return nil, fmt.Errorf("encode query %d: %w", i, err)
		}
		ops[i] = func(ctx context.Context, conn *geoclient.Conn) error {
			_, err := conn.Intersects(ctx, collection, raw, limit)
			return err
		}
	}
	return ops, nil
}

func loadPhase(ctx context.Context, t target, cfg config.Config, items []geom.Item) (stats.Summary, error) {
	fmt.Printf("\n=== %s load: %d objects, concurrency %d ===\n", t.name, len(items), cfg.Concurrency)
	ops, err := insertOps(cfg.Collection, items)
	if err != nil {
		return stats.Summary{}, err
	}
	result, err := runOps(ctx, t, cfg.Concurrency, ops, t.name+" insert", insertProgressEvery)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("%s load: %w", t.name, err)
	}
	s := stats.Summarize(result.Outcomes, result.Elapsed)
	fmt.Printf("  completed: %d/%d in %s\n", s.Count, len(items), result.Elapsed.Round(time.Millisecond))
	report.PrintSummary(os.Stdout, s)
	return s, nil
}

func queryPhase(ctx context.Context, t target, cfg config.Config, rects []orb.Polygon) (stats.Summary, error) {
	fmt.Printf("\n=== %s query: %d intersects, concurrency %d ===\n", t.name, len(rects), cfg.Concurrency)
	ops, err := queryOps(cfg.Collection, rects, cfg.IntersectsLimit)
	if err != nil {
		return stats.Summary{}, err
	}
	result, err := runOps(ctx, t, cfg.Concurrency, ops, t.name+" query", queryProgressEvery)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("%s query: %w", t.name, err)
	}
	s := stats.Summarize(result.Outcomes, result.Elapsed)
	fmt.Printf("  completed: %d/%d in %s\n", s.Count, len(rects), result.Elapsed.Round(time.Millisecond))
	report.PrintSummary(os.Stdout, s)
	return s, nil
}

func workloadSeed(s int64) int64 {
	if s != 0 {
		return s
	}
	return time.Now().UnixNano()
}
