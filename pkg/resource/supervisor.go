// pkg/resource/supervisor.go
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/gravity-vortex/pkg/health"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
)

// ErrStopped is returned by Go once the supervisor has been shut down.
var ErrStopped = errors.New("supervisor stopped")

// Limits bounds what a Supervisor lets its workers consume.
type Limits struct {
	MaxMemoryMB     int64
	MaxWorkers      int
	ShutdownTimeout time.Duration
	CheckInterval   time.Duration
}

// DefaultLimits returns the limits used by the headless simulator.
func DefaultLimits() Limits {
	return Limits{
		MaxMemoryMB:     500,
		MaxWorkers:      64,
		ShutdownTimeout: 30 * time.Second,
		CheckInterval:   10 * time.Second,
	}
}

// Supervisor runs simulation workers as tracked goroutines. It caps how many
// run at once, recovers their panics, samples memory in the background and
// cancels and drains them on Shutdown.
type Supervisor struct {
	limits Limits
	logger *logging.Logger

	// memoryMB reads current heap use; health.RuntimeMemoryMB by default
	memoryMB func() int64

	active   atomic.Int64
	panics   atomic.Uint64
	lastMB   atomic.Int64
	workers  sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	lastScan time.Time
}

// NewSupervisor creates a stopped supervisor. A nil logger discards.
func NewSupervisor(limits Limits, logger *logging.Logger) *Supervisor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		limits:   limits,
		logger:   logger,
		memoryMB: health.RuntimeMemoryMB,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins background memory sampling.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("supervisor already running")
	}
	if s.ctx.Err() != nil {
		return ErrStopped
	}
	s.running = true

	go s.monitor()

	s.logger.Info(s.ctx, "Supervisor started",
		"max_memory_mb", s.limits.MaxMemoryMB,
		"max_workers", s.limits.MaxWorkers,
		"check_interval", s.limits.CheckInterval,
	)
	return nil
}

// Go runs fn on a tracked goroutine. The context handed to fn is cancelled
// when ctx is, or when the supervisor shuts down.
func (s *Supervisor) Go(ctx context.Context, name string, fn func(context.Context)) error {
	if s.ctx.Err() != nil {
		return ErrStopped
	}
	if n := s.active.Add(1); s.limits.MaxWorkers > 0 && n > int64(s.limits.MaxWorkers) {
		s.active.Add(-1)
		s.logger.Warn(ctx, "Worker limit reached", "name", name, "limit", s.limits.MaxWorkers)
		return fmt.Errorf("worker limit reached: %d", s.limits.MaxWorkers)
	}

	wctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	s.workers.Add(1)

	go func() {
		defer s.workers.Done()
		defer s.active.Add(-1)
		defer stop()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.panics.Add(1)
				s.logger.Error(wctx, "Worker panicked", fmt.Errorf("panic: %v", r), "name", name)
			}
		}()

		fn(wctx)
	}()
	return nil
}

// Wait blocks until every worker started so far has returned.
func (s *Supervisor) Wait() {
	s.workers.Wait()
}

// CheckMemoryUsage samples heap use and reports whether it is over the limit.
func (s *Supervisor) CheckMemoryUsage() error {
	mb := s.memoryMB()
	s.lastMB.Store(mb)
	s.mu.Lock()
	s.lastScan = time.Now()
	s.mu.Unlock()

	if s.limits.MaxMemoryMB > 0 && mb > s.limits.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", mb, s.limits.MaxMemoryMB)
	}
	return nil
}

// Stats is a point-in-time view of the supervisor.
type Stats struct {
	ActiveWorkers int64     `json:"active_workers"`
	MaxWorkers    int       `json:"max_workers"`
	Panics        uint64    `json:"panics"`
	MemoryUsageMB int64     `json:"memory_usage_mb"`
	MaxMemoryMB   int64     `json:"max_memory_mb"`
	LastCheck     time.Time `json:"last_check"`
}

// Stats returns current usage.
func (s *Supervisor) Stats() Stats {
	s.mu.Lock()
	last := s.lastScan
	s.mu.Unlock()
	return Stats{
		ActiveWorkers: s.active.Load(),
		MaxWorkers:    s.limits.MaxWorkers,
		Panics:        s.panics.Load(),
		MemoryUsageMB: s.lastMB.Load(),
		MaxMemoryMB:   s.limits.MaxMemoryMB,
		LastCheck:     last,
	}
}

// Shutdown cancels every worker and waits for them, bounded by ctx and
// ShutdownTimeout. Calling it again is a no-op.
func (s *Supervisor) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return nil
	}
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	s.logger.Info(ctx, "Shutting down supervisor", "active_workers", s.active.Load())
	s.cancel()

	if s.limits.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.limits.ShutdownTimeout)
		defer cancel()
	}

	if wasRunning {
		select {
		case <-s.done:
		case <-ctx.Done():
			s.logger.Warn(ctx, "Monitor did not stop in time")
		}
	}

	drained := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		remaining := s.active.Load()
		s.logger.Warn(ctx, "Shutdown timed out with workers still running", "remaining", remaining)
		return fmt.Errorf("shutdown timeout: %d workers still running", remaining)
	}
}

func (s *Supervisor) monitor() {
	defer close(s.done)

	interval := s.limits.CheckInterval
	if interval <= 0 {
		interval = DefaultLimits().CheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CheckMemoryUsage(); err != nil {
				s.logger.Error(s.ctx, "Memory limit exceeded", err)
			}
			s.logger.Debug(s.ctx, "Resource usage check",
				"active_workers", s.active.Load(),
				"memory_mb", s.lastMB.Load(),
			)
		case <-s.ctx.Done():
			return
		}
	}
}
