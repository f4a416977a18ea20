package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"biomes/internal/config"
	"biomes/internal/logger"
	"biomes/internal/snapshot"
	"biomes/internal/telemetry"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ";")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg, err := config.Load(".env")
	logger.Init()
	if err != nil {
		logger.Log.WithError(err).Fatal("loading configuration")
	}
	var region snapshot.Region
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	target := flag.Float64("target", 0.5, "desired water fraction")
	top := flag.Int("top", 10, "number of candidates to print")
	flag.IntVar(&region.MinX, "x", -4, "leftmost map tile")
	flag.IntVar(&region.MinY, "y", -4, "topmost map tile")
	flag.IntVar(&region.Cols, "cols", 8, "tiles across")
	flag.IntVar(&region.Rows, "rows", 8, "tiles down")
	var sweeps kvList
	flag.Var(&sweeps, "sweep", "values to try in key=v1,v2,... form (repeatable)")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	values, err := parseSweeps(sweeps)
	if err != nil {
		logger.Log.WithError(err).Fatal("parsing -sweep")
	}
	if len(values) == 0 {
		values = map[string][]string{
			"sea_level":   {"-0.1", "0", "0.05", "0.1", "0.2"},
			"persistence": {"0.4", "0.5", "0.6"},
		}
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("telemetry setup failed, running without traces")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	cands, err := snapshot.Expand(cfg, values)
	if err != nil {
		logger.Log.WithError(err).Fatal("building candidates")
	}
	fmt.Printf("Sweeping %d candidates (%d workers, %dx%d tiles) for water fraction %.2f\n",
		len(cands), *workers, region.Cols, region.Rows, *target)

	results, err := snapshot.Sweep(ctx, cands, region, *target, *workers)
	if err != nil {
		logger.Log.WithError(err).Error("sweep failed")
		os.Exit(1)
	}
	for i, res := range results {
		if i >= *top {
			break
		}
		fmt.Printf("%2d. water=%.3f (off by %.3f)  %s\n", i+1, res.Water, res.Distance, res.Candidate)
	}
}

func parseSweeps(list kvList) (map[string][]string, error) {
	out := make(map[string][]string, len(list))
	for _, kv := range list {
		key, vals, ok := strings.Cut(kv, "=")
		if !ok || key == "" || vals == "" {
			return nil, fmt.Errorf("malformed sweep %q, want key=v1,v2", kv)
		}
		for _, v := range strings.Split(vals, ",") {
			out[key] = append(out[key], strings.TrimSpace(v))
		}
	}
	return out, nil
}
