package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// contest evaluation engine.
type Metrics struct {
	Evaluations        *prometheus.CounterVec // labels: outcome={recommended,not_recommended,fallback}
	EvaluationDuration prometheus.Histogram

	// Weather lookup metrics.
	WeatherLookups     *prometheus.CounterVec // labels: outcome={success,error}
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}
	WeatherAPIDuration prometheus.Histogram

	KitsLoaded prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contest_engine",
			Name:      "evaluations_total",
			Help:      "Contest evaluations by outcome.",
		}, []string{"outcome"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contest_engine",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a complete evaluation pipeline run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		WeatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contest_engine",
			Name:      "weather_lookups_total",
			Help:      "Historical weather lookups by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contest_engine",
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contest_engine",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather archive API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		KitsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "contest_engine",
			Name:      "kits_loaded",
			Help:      "Number of contest kits in the loaded catalog.",
		}),
	}

	prometheus.MustRegister(
		m.Evaluations,
		m.EvaluationDuration,
		m.WeatherLookups,
		m.WeatherCache,
		m.WeatherAPIDuration,
		m.KitsLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Evaluations:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "contest_engine", Name: "evaluations_total"}, []string{"outcome"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "contest_engine", Name: "evaluation_duration_seconds"}),
		WeatherLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "contest_engine", Name: "weather_lookups_total"}, []string{"outcome"}),
		WeatherCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "contest_engine", Name: "weather_cache_total"}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "contest_engine", Name: "weather_api_duration_seconds"}),
		KitsLoaded:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "contest_engine", Name: "kits_loaded"}),
	}
}
