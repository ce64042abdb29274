package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters for the mock API.
type Metrics struct {
	registry *prometheus.Registry

	PointsGenerated prometheus.Counter
	Generations     prometheus.Counter
	GenerateSeconds prometheus.Histogram
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.PointsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridsynth_points_generated_total",
		Help: "Synthetic data points generated.",
	})
	m.Generations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridsynth_generations_total",
		Help: "Generation runs triggered through the API.",
	})
	m.GenerateSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridsynth_generate_seconds",
		Help:    "Wall time per generation run.",
		Buckets: prometheus.DefBuckets,
	})
	m.CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridsynth_meter_cache_hits_total",
		Help: "Interval requests served from the store.",
	})
	m.CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridsynth_meter_cache_misses_total",
		Help: "Interval requests that generated fresh data.",
	})

	m.registry.MustRegister(
		m.PointsGenerated, m.Generations, m.GenerateSeconds, m.CacheHits, m.CacheMisses,
	)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
