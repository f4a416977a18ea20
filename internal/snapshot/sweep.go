package snapshot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"biomes/internal/config"
	"biomes/internal/logger"
	"biomes/internal/terrain"
)

// Candidate is one point of a parameter sweep.
type Candidate struct {
	Overrides map[string]string
	Config    config.Config
}

func (c Candidate) String() string {
	keys := make([]string, 0, len(c.Overrides))
	for k := range c.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + c.Overrides[k]
	}
	return strings.Join(parts, " ")
}

// SweepResult scores one candidate by its water fraction.
type SweepResult struct {
	Candidate Candidate
	Water     float64
	Distance  float64
}

// Expand builds the cartesian product of values per key on top of base.
// Candidates that fail validation are reported as an error.
func Expand(base config.Config, values map[string][]string) ([]Candidate, error) {
	keys := make([]string, 0, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			return nil, fmt.Errorf("snapshot: no values for %s", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []Candidate{{Overrides: map[string]string{}, Config: base}}
	for _, k := range keys {
		next := make([]Candidate, 0, len(out)*len(values[k]))
		for _, c := range out {
			for _, v := range values[k] {
				cfg := c.Config
				if err := cfg.Set(k, v); err != nil {
					return nil, err
				}
				ov := make(map[string]string, len(c.Overrides)+1)
				for ok, ovv := range c.Overrides {
					ov[ok] = ovv
				}
				ov[k] = v
				next = append(next, Candidate{Overrides: ov, Config: cfg})
			}
		}
		out = next
	}
	for _, c := range out {
		if err := c.Config.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot: candidate %s: %w", c, err)
		}
	}
	return out, nil
}

// Sweep renders region for every candidate and sorts the results by how close
// their water fraction lands to target. Candidates run in parallel, each
// rendering its tiles on a single goroutine.
func Sweep(ctx context.Context, candidates []Candidate, region Region, target float64, workers int) ([]SweepResult, error) {
	results := make([]SweepResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range candidates {
		g.Go(func() error {
			gen, err := terrain.New(c.Config)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c, err)
			}
			res, err := Render(gctx, gen, region, Options{TileSize: c.Config.TileSize, SeaLevel: c.Config.SeaLevel, Workers: 1})
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c, err)
			}
			water := res.WaterFraction()
			results[i] = SweepResult{Candidate: c, Water: water, Distance: math.Abs(water - target)}
			logger.Log.WithField("candidate", c.String()).WithField("water", water).Debug("sweep candidate done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot: sweep: %w", err)
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Distance < results[b].Distance })
	return results, nil
}
