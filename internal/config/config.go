// Package config holds the benchmark configuration surface: workload
// sizes, concurrency, target endpoints, and the geographic envelope.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/geobench/internal/geom"
	"github.com/user/geobench/pkg/geoclient"
)

// Duration decodes YAML durations written either as Go duration
// strings ("3s", "250ms") or as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("config: invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	return fmt.Errorf("config: invalid duration %q", value.Value)
}

// Target addresses one service under test.
type Target struct {
	Name    string `yaml:"name"`
	Addr    string `yaml:"addr"`
	Dialect string `yaml:"dialect"`
}

// Config drives one benchmark invocation.
type Config struct {
	DataCount   int    `yaml:"data_count"`
	QueryCount  int    `yaml:"query_count"`
	Concurrency int    `yaml:"concurrency"`
	Collection  string `yaml:"collection"`
	Seed        int64  `yaml:"seed"`

	// IntersectsLimit caps query result sets on dialects that require
	// an explicit limit; 0 means the dialect default.
	IntersectsLimit int `yaml:"intersects_limit"`

	// SettlePause is how long to wait between the load and query
	// phases so the targets reach a steady state.
	SettlePause Duration `yaml:"settle_pause"`

	Bounds geom.Bounds `yaml:"bounds"`

	Primary  Target `yaml:"primary"`
	Baseline Target `yaml:"baseline"`
}

// Default returns the documented defaults: the Singapore envelope,
// 100k objects, 10k queries, concurrency 100, geo42 on :6379 and
// Tile38 on :9851.
func Default() Config {
	return Config{
		DataCount:   100000,
		QueryCount:  10000,
		Concurrency: 100,
		Collection:  "benchmark_collection",
		SettlePause: Duration(3 * time.Second),
		Bounds:      geom.Singapore(),
		Primary:     Target{Name: "geo42", Addr: "localhost:6379", Dialect: string(geoclient.DialectGeo42)},
		Baseline:    Target{Name: "tile38", Addr: "localhost:9851", Dialect: string(geoclient.DialectTile38)},
	}
}

// Load overlays a YAML file onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fails fast on configuration that would corrupt a run.
func (c Config) Validate() error {
	if c.DataCount < 0 {
		return fmt.Errorf("config: data_count must be non-negative, got %d", c.DataCount)
	}
	if c.QueryCount < 0 {
		return fmt.Errorf("config: query_count must be non-negative, got %d", c.QueryCount)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("config: concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Collection == "" {
		return fmt.Errorf("config: collection must not be empty")
	}
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if err := c.Primary.validate("primary"); err != nil {
		return err
	}
	return c.Baseline.validate("baseline")
}

// ValidateSingle checks everything except the baseline target, for
// single-target runs.
func (c Config) ValidateSingle() error {
	single := c
	single.Baseline = single.Primary
	return single.Validate()
}

func (t Target) validate(role string) error {
	if t.Addr == "" {
		return fmt.Errorf("config: %s target needs an address", role)
	}
	if _, err := geoclient.ParseDialect(t.Dialect); err != nil {
		return fmt.Errorf("config: %s target: %w", role, err)
	}
	return nil
}
