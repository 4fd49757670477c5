// pkg/resource/health.go
package resource

import (
	"context"
	"fmt"
)

// WorkerHealthCheck reports a supervisor unhealthy when a worker has panicked,
// when sampled memory is over the limit, or when the pool is above 80% of its
// worker cap.
type WorkerHealthCheck struct {
	supervisor *Supervisor
}

// NewWorkerHealthCheck creates a health check for s.
func NewWorkerHealthCheck(s *Supervisor) *WorkerHealthCheck {
	return &WorkerHealthCheck{supervisor: s}
}

// Name returns the name of this health check
func (w *WorkerHealthCheck) Name() string {
	return "workers"
}

// Check implements health.HealthCheck
func (w *WorkerHealthCheck) Check(ctx context.Context) error {
	stats := w.supervisor.Stats()

	if stats.Panics > 0 {
		return fmt.Errorf("%d workers panicked", stats.Panics)
	}
	if stats.MaxMemoryMB > 0 && stats.MemoryUsageMB > stats.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", stats.MemoryUsageMB, stats.MaxMemoryMB)
	}
	if stats.MaxWorkers > 0 {
		threshold := int64(float64(stats.MaxWorkers) * 0.8)
		if stats.ActiveWorkers > threshold {
			return fmt.Errorf("worker count %d exceeds 80%% threshold (%d/%d)",
				stats.ActiveWorkers, threshold, stats.MaxWorkers)
		}
	}
	return nil
}
