package http

import (
	"net/http"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by generator lifecycle hooks.
type Metrics struct {
	Generations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Segments    *prometheus.CounterVec
	CacheHits   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "penrose_generations_total",
				Help: "Total number of generations run, by outcome.",
			},
			[]string{"tiling", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "penrose_generation_duration_seconds",
				Help:    "Time spent expanding and interpreting a tiling.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"tiling"},
		),
		Segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "penrose_segments_emitted_total",
				Help: "Total number of segments emitted by successful generations.",
			},
			[]string{"tiling"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "penrose_cache_hits_total",
				Help: "Total number of generation requests served from the cache.",
			},
			[]string{"tiling"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Generations, m.Duration, m.Segments, m.CacheHits)
	return m
}

// Hooks returns lifecycle hooks that record every completed generation.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnComplete: func(e *domain.CompleteEvent) {
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.Generations.WithLabelValues(e.Tiling, status).Inc()
			m.Duration.WithLabelValues(e.Tiling).Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.Segments.WithLabelValues(e.Tiling).Add(float64(e.Segments))
			}
		},
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
