package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"biomes/internal/config"
	"biomes/internal/logger"
	"biomes/internal/snapshot"
	"biomes/internal/telemetry"
	"biomes/internal/terrain"
)

func main() {
	cfg, err := config.Load(".env")
	logger.Init()
	if err != nil {
		logger.Log.WithError(err).Fatal("loading configuration")
	}
	var region snapshot.Region
	out := flag.String("out", "biomes.png", "output PNG path")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.IntVar(&region.MinX, "x", -8, "leftmost map tile")
	flag.IntVar(&region.MinY, "y", -8, "topmost map tile")
	flag.IntVar(&region.Cols, "cols", 16, "tiles across")
	flag.IntVar(&region.Rows, "rows", 16, "tiles down")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
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

	if err := run(ctx, cfg, region, *workers, *out); err != nil {
		logger.Log.WithError(err).Error("snapshot failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, region snapshot.Region, workers int, out string) error {
	gen, err := terrain.New(cfg)
	if err != nil {
		return err
	}
	logger.Log.WithFields(map[string]any{
		"region":  region,
		"workers": workers,
		"noise":   cfg.Noise,
		"seed":    cfg.Seed,
	}).Info("rendering snapshot")

	res, err := snapshot.Render(ctx, gen, region, snapshot.Options{
		TileSize: cfg.TileSize,
		SeaLevel: cfg.SeaLevel,
		Workers:  workers,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(f, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Log.WithFields(map[string]any{
		"out":            out,
		"water_fraction": res.WaterFraction(),
		"elapsed":        res.Elapsed,
	}).Info("snapshot written")
	return nil
}
