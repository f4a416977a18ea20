package term

import (
	"context"
	"flag"
	"time"

	"github.com/gdamore/tcell/v2"

	"biomes/internal/core"
	"biomes/internal/logger"
	"biomes/internal/world"
)

// Options holds the terminal frontend parameters.
type Options struct {
	Cell int
	TPS  int
	Hold time.Duration
}

// NewOptions returns Options populated with sensible defaults.
func NewOptions() *Options {
	return &Options{Cell: 8, TPS: 30, Hold: 180 * time.Millisecond}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.IntVar(&o.Cell, "cell", o.Cell, "world pixels per half cell")
	fs.IntVar(&o.TPS, "tps", o.TPS, "ticks per second")
	fs.DurationVar(&o.Hold, "hold", o.Hold, "how long a key press keeps steering")
}

// Viewport converts a terminal size into the world viewport it displays.
// The last row is reserved for the status line.
func (o Options) Viewport(cols, rows int) core.Size {
	cell := max(o.Cell, 1)
	return core.Size{W: max(cols, 1) * cell, H: max(rows-1, 1) * 2 * cell}
}

// App couples a world to a terminal screen.
type App struct {
	screen   *Screen
	world    *world.World
	renderer *Renderer
	clock    *core.FixedStep
	keys     heldKeys
	now      func() time.Time
}

// NewApp prepares a terminal session for w.
func NewApp(screen *Screen, w *world.World, opts Options) *App {
	return &App{
		screen:   screen,
		world:    w,
		renderer: NewRenderer(screen, opts.Cell),
		clock:    core.NewFixedStep(opts.TPS),
		keys:     heldKeys{hold: opts.Hold},
		now:      time.Now,
	}
}

// HandleEvent applies one terminal event. It reports whether the user asked
// to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	now := a.now()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.keys.press(core.DirUp, now)
	case tcell.KeyDown:
		a.keys.press(core.DirDown, now)
	case tcell.KeyLeft:
		a.keys.press(core.DirLeft, now)
	case tcell.KeyRight:
		a.keys.press(core.DirRight, now)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			a.keys.release()
			if err := a.world.Reset(); err != nil {
				logger.Log.WithError(err).Error("reset failed")
			}
		case ' ':
			a.keys.release()
		}
	}
	return false
}

// Tick advances the world by one step using the currently held keys.
func (a *App) Tick() bool {
	return a.world.Step(a.keys.direction(a.now()))
}

// Run renders and steps the world until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.clock.Step())
	defer ticker.Stop()
	a.renderer.Render(a.world)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if a.HandleEvent(ev) {
				logger.Log.WithField("steps", a.world.Steps()).Info("quit requested")
				return nil
			}
		case <-ticker.C:
			if a.clock.ShouldStep() {
				a.Tick()
				a.renderer.Render(a.world)
			}
		}
	}
}
