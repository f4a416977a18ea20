package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"biomes/internal/config"
	"biomes/internal/logger"
	"biomes/internal/telemetry"
	"biomes/internal/term"
	"biomes/internal/world"
)

func main() {
	cfg, err := config.Load(".env")
	// stdout belongs to the terminal UI.
	logger.InitTo(os.Stderr)
	if err != nil {
		logger.Log.WithError(err).Fatal("loading configuration")
	}
	opts := term.NewOptions()
	logFile := flag.String("log-file", "", "write logs to this file instead of stderr")
	cfg.Bind(flag.CommandLine)
	opts.Bind(flag.CommandLine)
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Log.WithError(err).Fatal("opening log file")
		}
		defer f.Close()
		logger.InitTo(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("telemetry setup failed, running without traces")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	if err := run(ctx, cfg, *opts); err != nil {
		logger.Log.WithError(err).Error("terminal session")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts term.Options) error {
	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	cols, rows := screen.Size()
	w, err := world.New(cfg, opts.Viewport(cols, rows))
	if err != nil {
		return err
	}
	err = term.NewApp(screen, w, opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
