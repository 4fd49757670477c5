// pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/event"
)

const namespace = "gravity_vortex"

// Collector records simulation metrics on its own registry
type Collector struct {
	registry        *prometheus.Registry
	ticksTotal      prometheus.Counter
	tickDuration    prometheus.Histogram
	pickupsTotal    *prometheus.CounterVec
	sessionsStarted prometheus.Counter
	sessionsEnded   *prometheus.CounterVec
	score           prometheus.Gauge
	fuel            prometheus.Gauge

	ticks atomic.Uint64
}

// NewCollector creates and registers every metric
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticks_total",
				Help:      "Total number of simulation ticks",
			},
		),
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tick_duration_seconds",
				Help:      "Time spent stepping and rendering one tick",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
			},
		),
		pickupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pickups_collected_total",
				Help:      "Total pickups collected",
			},
			[]string{"kind"},
		),
		sessionsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_started_total",
				Help:      "Total sessions started",
			},
		),
		sessionsEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_ended_total",
				Help:      "Total sessions ended",
			},
			[]string{"reason"},
		),
		score: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Score of the current session",
			},
		),
		fuel: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "fuel",
				Help:      "Fuel left in the current session",
			},
		),
	}

	m.registry.MustRegister(
		m.ticksTotal,
		m.tickDuration,
		m.pickupsTotal,
		m.sessionsStarted,
		m.sessionsEnded,
		m.score,
		m.fuel,
	)

	return m
}

// ObserveTick implements engine.TickObserver
func (m *Collector) ObserveTick(d time.Duration, s *engine.Session) {
	m.ticks.Add(1)
	m.ticksTotal.Inc()
	m.tickDuration.Observe(d.Seconds())

	s.StateLock.RLock()
	score, fuel := s.Score, s.Ship.Fuel
	s.StateLock.RUnlock()

	m.score.Set(float64(score))
	m.fuel.Set(fuel)
}

// Attach subscribes the collector to session events on bus. Cancel the
// returned subscriptions to detach.
func (m *Collector) Attach(bus *event.Bus) []*event.Subscription {
	return []*event.Subscription{
		bus.Subscribe(event.SessionStarted, m.handleSessionStarted),
		bus.Subscribe(event.SessionEnded, m.handleSessionEnded),
		bus.Subscribe(event.PickupCollected, m.handlePickup),
	}
}

func (m *Collector) handleSessionStarted(e event.Event) {
	m.sessionsStarted.Inc()
	m.score.Set(0)
}

func (m *Collector) handleSessionEnded(e event.Event) {
	if se, ok := e.(*event.SessionEvent); ok {
		m.sessionsEnded.WithLabelValues(se.Reason).Inc()
	}
}

func (m *Collector) handlePickup(e event.Event) {
	if pe, ok := e.(*event.PickupEvent); ok {
		m.pickupsTotal.WithLabelValues(pe.Kind).Inc()
	}
}

// Ticks returns the number of ticks observed so far. Safe from any goroutine.
func (m *Collector) Ticks() uint64 {
	return m.ticks.Load()
}

// Registry exposes the collector's registry
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
