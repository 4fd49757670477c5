// pkg/engine/loop.go
package engine

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
)

// TickObserver is told about every completed tick, on the loop goroutine.
type TickObserver interface {
	ObserveTick(d time.Duration, s *Session)
}

// Runner drives a session at a fixed tick rate: poll input, step, render,
// then wait for the next frame.
type Runner struct {
	Session       *Session
	Input         InputSource
	Renderer      entity.Renderer
	GameOverDelay time.Duration

	limiter   *rate.Limiter
	observers []TickObserver
	logger    *logging.Logger
}

// RunnerOption customizes a Runner
type RunnerOption func(*Runner)

// WithLimiter replaces the frame pacer. rate.NewLimiter(rate.Inf, 1) runs
// ticks back to back.
func WithLimiter(l *rate.Limiter) RunnerOption {
	return func(r *Runner) { r.limiter = l }
}

// WithTickObserver registers an observer for every tick
func WithTickObserver(o TickObserver) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithGameOverDelay sets how long the final screen is held
func WithGameOverDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.GameOverDelay = d }
}

// WithRunnerLogger sets the loop logger
func WithRunnerLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner paced at the session's configured tick rate.
func NewRunner(s *Session, in InputSource, r entity.Renderer, opts ...RunnerOption) *Runner {
	runner := &Runner{
		Session:       s,
		Input:         in,
		Renderer:      r,
		GameOverDelay: s.Config.GameOverDelay(),
		limiter:       rate.NewLimiter(rate.Limit(s.Config.Session.TickRate), 1),
		logger:        logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run plays the session to the end, shows the game-over view for
// GameOverDelay and returns the result. If pacing fails first, because ctx is
// done or its deadline falls before the next frame, the session is ended with
// ReasonQuit and the pacing error is returned alongside the result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	sctx := r.Session.Context()

	for r.Tick() {
		if err := r.limiter.Wait(ctx); err != nil {
			r.Session.Quit()
			r.logger.Info(sctx, "loop cancelled", "ticks", r.Session.Result().Ticks, "reason", err.Error())
			return r.Session.Result(), err
		}
	}

	result := r.ShowGameOver()
	r.hold(ctx)
	return result, nil
}

// Tick runs one unpaced frame: poll input, step, render and notify observers.
// It reports whether the session is still running afterwards. Frontends with
// their own frame clock call it once per frame.
func (r *Runner) Tick() bool {
	if r.Session.Ended() {
		return false
	}

	start := time.Now()
	r.Session.Step(r.Input.Poll())
	r.Session.Render(r.Renderer)
	for _, o := range r.observers {
		o.ObserveTick(time.Since(start), r.Session)
	}
	return !r.Session.Ended()
}

// ShowGameOver renders the final view once and returns the result.
func (r *Runner) ShowGameOver() Result {
	result := r.Session.Result()
	r.Renderer.Clear()
	r.Renderer.RenderGameOver(result.Score, result.Elapsed)
	r.Renderer.Present()
	return result
}

// hold keeps the game-over view up for GameOverDelay or until ctx is done.
func (r *Runner) hold(ctx context.Context) {
	if r.GameOverDelay <= 0 {
		return
	}
	timer := time.NewTimer(r.GameOverDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
