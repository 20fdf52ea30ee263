// Package metrics exposes Prometheus instrumentation for maze generation and solving.
//
// All metric operations are safe for concurrent use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vinom_maze"

// Metrics holds the collectors recorded by the solve session.
type Metrics struct {
	// MazesGenerated counts generated mazes.
	MazesGenerated prometheus.Counter

	// GenerateDuration measures carving time.
	GenerateDuration prometheus.Histogram

	// SolvesTotal counts finished solves by outcome (solved, aborted, exhausted).
	SolvesTotal *prometheus.CounterVec

	// SolveSteps tracks search iterations per finished solve.
	SolveSteps prometheus.Histogram

	// SolveDuration measures wall time from start to terminal outcome, reveal included.
	SolveDuration *prometheus.HistogramVec

	// ActiveSolves is 1 while a solve is running.
	ActiveSolves prometheus.Gauge

	// StaleWritesDropped counts updates discarded because their session was superseded.
	StaleWritesDropped prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer to expose them on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MazesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mazes_generated_total",
			Help:      "Total mazes generated",
		}),
		GenerateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Maze generation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		SolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total finished solves by outcome",
		}, []string{"outcome"}),
		SolveSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_steps",
			Help:      "Search iterations per finished solve",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
		SolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Solve duration in seconds by outcome",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"outcome"}),
		ActiveSolves: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_solves",
			Help:      "Number of solves currently running",
		}),
		StaleWritesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_writes_dropped_total",
			Help:      "Updates dropped because their solve session was superseded",
		}),
	}
}

// RecordGenerate records one generated maze.
func (m *Metrics) RecordGenerate(d time.Duration) {
	if m == nil {
		return
	}
	m.MazesGenerated.Inc()
	m.GenerateDuration.Observe(d.Seconds())
}

// SolveStarted marks a solve as running.
func (m *Metrics) SolveStarted() {
	if m == nil {
		return
	}
	m.ActiveSolves.Inc()
}

// SolveFinished records the terminal outcome of a solve.
func (m *Metrics) SolveFinished(outcome string, steps int, d time.Duration) {
	if m == nil {
		return
	}
	m.ActiveSolves.Dec()
	m.SolvesTotal.WithLabelValues(outcome).Inc()
	m.SolveSteps.Observe(float64(steps))
	m.SolveDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// StaleWrite records a dropped update.
func (m *Metrics) StaleWrite() {
	if m == nil {
		return
	}
	m.StaleWritesDropped.Inc()
}
