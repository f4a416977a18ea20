//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"biomes/internal/app"
	"biomes/internal/config"
	"biomes/internal/logger"
	"biomes/internal/telemetry"
	"biomes/internal/world"
)

func main() {
	cfg, err := config.Load(".env")
	logger.Init()
	if err != nil {
		logger.Log.WithError(err).Fatal("loading configuration")
	}
	opts := app.NewOptions()
	cfg.Bind(flag.CommandLine)
	opts.Bind(flag.CommandLine)
	flag.Parse()

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

	w, err := world.New(cfg, opts.Viewport())
	if err != nil {
		logger.Log.WithError(err).Error("building world")
		os.Exit(1)
	}
	game := app.New(w, *opts)

	size := w.Size()
	ebiten.SetWindowTitle("biomes")
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(size.W, size.H)
	ebiten.SetFullscreen(opts.Fullscreen)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.WithError(err).Error("game loop")
		os.Exit(1)
	}
}
