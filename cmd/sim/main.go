// cmd/sim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/opd-ai/gravity-vortex/pkg/autopilot"
	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/event"
	"github.com/opd-ai/gravity-vortex/pkg/health"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
	"github.com/opd-ai/gravity-vortex/pkg/metrics"
	"github.com/opd-ai/gravity-vortex/pkg/render"
	"github.com/opd-ai/gravity-vortex/pkg/resource"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (defaults if empty)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	sessions := flag.Int("sessions", 0, "Number of sessions to play; 0 plays until interrupted")
	maxTicks := flag.Uint64("max-ticks", 36000, "Autopilot quits a session after this many ticks; 0 never")
	behaviorName := flag.String("behavior", "collector", "Autopilot behavior: collector or drifter")
	paced := flag.Bool("paced", false, "Run at the configured tick rate instead of flat out")
	workers := flag.Int("workers", 1, "Sessions played concurrently")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	behavior, ok := autopilot.ParseBehavior(*behaviorName)
	if !ok {
		logger.Error(ctx, "Unknown autopilot behavior", nil, "behavior", *behaviorName)
		os.Exit(2)
	}

	collector := metrics.NewCollector()
	bus := event.NewEventBus()
	collector.Attach(bus)

	var running atomic.Bool
	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewSimulationHealthCheck(running.Load))
	healthChecker.AddCheck(health.NewLoopProgressCheck(collector.Ticks, 5*time.Second))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(500, nil))

	supervisor := resource.NewSupervisor(resource.DefaultLimits(), logger)
	if err := supervisor.Start(); err != nil {
		logger.Error(ctx, "Failed to start supervisor", err)
		os.Exit(1)
	}
	healthChecker.AddCheck(resource.NewWorkerHealthCheck(supervisor))

	healthPort := "8080"
	if envPort := os.Getenv("GRAVITY_HEALTH_PORT"); envPort != "" {
		if _, err := strconv.Atoi(envPort); err == nil {
			healthPort = envPort
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthChecker.LivenessHandler)
	mux.HandleFunc("/ready", healthChecker.ReadinessHandler)
	mux.Handle("/metrics", collector.Handler())

	httpServer := &http.Server{
		Addr:         ":" + healthPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info(ctx, "Starting health and metrics server", "port", healthPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health server failed", err)
		}
	}()

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := &simulator{
		config:    gameConfig,
		behavior:  behavior,
		maxTicks:  *maxTicks,
		paced:     *paced,
		bus:       bus,
		collector: collector,
		logger:    logger,
	}

	running.Store(true)
	for i := 0; i < max(*workers, 1); i++ {
		if err := supervisor.Go(runCtx, "session-worker", func(ctx context.Context) { sim.work(ctx, *sessions) }); err != nil {
			logger.Error(ctx, "Failed to start worker", err, "worker", i)
			break
		}
	}
	supervisor.Wait()
	running.Store(false)

	logger.Info(ctx, "Shutting down simulator", "sessions_played", sim.played.Load())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := supervisor.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Supervisor shutdown failed", err)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health server shutdown failed", err)
	}
}

// simulator hands out session numbers to workers and plays them with the
// autopilot
type simulator struct {
	next   atomic.Uint64
	played atomic.Uint64

	config    *config.GameConfig
	behavior  autopilot.Behavior
	maxTicks  uint64
	paced     bool
	bus       *event.Bus
	collector *metrics.Collector
	logger    *logging.Logger
}

// work plays sessions until n have been handed out (never when n is 0) or
// ctx is done.
func (s *simulator) work(ctx context.Context, n int) {
	for ctx.Err() == nil {
		index := s.next.Add(1) - 1
		if n > 0 && index >= uint64(n) {
			return
		}

		result, err := s.playOne(ctx, index)
		s.played.Add(1)

		s.logger.Info(ctx, "Session finished",
			"session_id", result.SessionID,
			"reason", result.Reason.String(),
			"score", result.Score,
			"elapsed_seconds", result.Elapsed,
			"ticks", result.Ticks,
		)
		if err != nil {
			return
		}
	}
}

func (s *simulator) playOne(ctx context.Context, index uint64) (engine.Result, error) {
	cfg := *s.config
	if cfg.Session.Seed != 0 {
		cfg.Session.Seed += index
	}

	session := engine.NewSession(&cfg, engine.WithEventBus(s.bus), engine.WithLogger(s.logger))
	pilot := autopilot.New(session.Snapshot,
		autopilot.WithBehavior(s.behavior),
		autopilot.WithMaxTicks(s.maxTicks),
		autopilot.WithRand(rand.New(rand.NewPCG(cfg.Session.Seed, index))),
	)

	opts := []engine.RunnerOption{
		engine.WithTickObserver(s.collector),
		engine.WithGameOverDelay(0),
		engine.WithRunnerLogger(s.logger),
	}
	if !s.paced {
		opts = append(opts, engine.WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	}

	runner := engine.NewRunner(session, pilot, render.NewNullRenderer(s.logger), opts...)
	return runner.Run(ctx)
}
