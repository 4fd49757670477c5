// cmd/client/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/gravity-vortex/pkg/autopilot"
	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/event"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
	"github.com/opd-ai/gravity-vortex/pkg/render"
	engorender "github.com/opd-ai/gravity-vortex/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults if empty)")
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo' or 'terminal'")
	logPath := flag.String("log", "gravity-vortex.log", "Log file; '-' logs to stdout")
	seed := flag.Uint64("seed", 0, "Random seed (overrides config, 0 keeps it)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	demo := flag.Bool("autopilot", false, "Let the autopilot fly")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gravity-vortex: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		fmt.Fprintf(os.Stderr, "gravity-vortex: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		gameConfig.Session.Seed = *seed
	}

	bus := event.NewEventBus()
	subscribeLogging(ctx, bus, logger)

	session := engine.NewSession(gameConfig, engine.WithEventBus(bus), engine.WithLogger(logger))

	var pilot engine.InputSource
	if *demo {
		pilot = autopilot.New(session.Snapshot)
	}

	var result engine.Result
	switch *renderer {
	case "engo":
		result = runEngo(session, pilot, logger, *fullscreen)
	case "terminal":
		result, err = runTerminal(session, pilot, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "Terminal frontend failed", err)
			fmt.Fprintf(os.Stderr, "gravity-vortex: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "gravity-vortex: unknown renderer %q\n", *renderer)
		os.Exit(2)
	}

	fmt.Printf("Game over: %s. Score %d, survived %.1fs\n", result.Reason, result.Score, result.Elapsed)
}

func openLogger(path string) (*logging.Logger, func() error, error) {
	if path == "-" {
		return logging.NewLogger(), func() error { return nil }, nil
	}
	return logging.NewFileLogger(path)
}

// subscribeLogging records the notable moments of a session
func subscribeLogging(ctx context.Context, bus *event.Bus, logger *logging.Logger) {
	bus.Subscribe(event.PickupCollected, func(e event.Event) {
		if pe, ok := e.(*event.PickupEvent); ok {
			logger.Debug(ctx, "Pickup collected", "kind", pe.Kind, "score", pe.Score, "fuel", pe.Fuel)
		}
	})
	bus.Subscribe(event.PlanetCollision, func(e event.Event) {
		if ce, ok := e.(*event.CollisionEvent); ok {
			logger.Info(ctx, "Ship hit a planet", "planet_id", ce.PlanetID)
		}
	})
	bus.Subscribe(event.FuelDepleted, func(e event.Event) {
		logger.Info(ctx, "Out of fuel, coasting")
	})
}

// runEngo opens a window the size of the field and plays until the window
// closes.
func runEngo(session *engine.Session, pilot engine.InputSource, logger *logging.Logger, fullscreen bool) engine.Result {
	cfg := session.Config
	scene := engorender.NewGameScene(session, logger, engine.WithRunnerLogger(logger))
	scene.Autopilot = pilot

	opts := engo.RunOptions{
		Title:        "Gravity Vortex",
		Width:        int(cfg.Field.Width),
		Height:       int(cfg.Field.Height),
		Fullscreen:   fullscreen,
		FPSLimit:     cfg.Session.TickRate,
		NotResizable: true,
	}
	engo.Run(opts, scene)
	return scene.Result()
}

// runTerminal plays in the terminal until the session ends or SIGINT/SIGTERM.
func runTerminal(session *engine.Session, pilot engine.InputSource, logger *logging.Logger) (engine.Result, error) {
	screen, err := render.NewTerminalScreen()
	if err != nil {
		return engine.Result{}, err
	}
	defer screen.Fini()

	keys := render.NewTerminalInput(screen, 0)
	go keys.Listen()

	var source engine.InputSource = keys
	if pilot != nil {
		// the keyboard can still quit while the autopilot flies
		source = engine.InputFunc(func() engine.Input {
			in := pilot.Poll()
			in.Quit = in.Quit || keys.Poll().Quit
			return in
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := engine.NewRunner(session, source, render.NewTerminalRenderer(screen, session.Config.Bounds()),
		engine.WithRunnerLogger(logger),
	)
	return runner.Run(ctx)
}
