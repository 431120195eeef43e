package web

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Roadmap generation outcomes.
const (
	outcomeGenerated  = "generated"
	outcomeCached     = "cached"
	outcomeNoScenario = "no_scenario"
	outcomeError      = "error"
	outcomeStale      = "stale"
)

// Metrics holds the Prometheus collectors of the web form.
type Metrics struct {
	registry *prometheus.Registry

	scenarioCalculations *prometheus.CounterVec
	roadmapGenerations   *prometheus.CounterVec
	roadmapDuration      prometheus.Histogram
	activeSessions       prometheus.GaugeFunc
}

// NewMetrics creates the collectors and registers them on registry. A nil
// registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry, sessions func() int) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		scenarioCalculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "carbonplan",
				Name:      "scenario_calculations_total",
				Help:      "Scenario calculations by result",
			},
			[]string{"status"}, // status: ok, invalid
		),
		roadmapGenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "carbonplan",
				Name:      "roadmap_generations_total",
				Help:      "Roadmap requests by outcome",
			},
			[]string{"outcome"},
		),
		roadmapDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carbonplan",
			Name:      "roadmap_generation_duration_seconds",
			Help:      "Time taken to produce a roadmap, cache hits included",
			// 50ms to ~200s
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	if sessions != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "carbonplan",
			Name:      "sessions",
			Help:      "Sessions held in memory, expired ones not yet swept included",
		}, func() float64 { return float64(sessions()) })
	}

	collectors := []prometheus.Collector{m.scenarioCalculations, m.roadmapGenerations, m.roadmapDuration}
	if m.activeSessions != nil {
		collectors = append(collectors, m.activeSessions)
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering web metrics: %w", err)
		}
	}
	return m, nil
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordScenario(ok bool) {
	status := "ok"
	if !ok {
		status = "invalid"
	}
	m.scenarioCalculations.WithLabelValues(status).Inc()
}

func (m *Metrics) recordRoadmap(outcome string, elapsed time.Duration) {
	m.roadmapGenerations.WithLabelValues(outcome).Inc()
	if outcome == outcomeGenerated || outcome == outcomeCached {
		m.roadmapDuration.Observe(elapsed.Seconds())
	}
}
