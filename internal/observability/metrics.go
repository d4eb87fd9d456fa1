package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the dashboard service.
type Metrics struct {
	AnalyzeRequests  *prometheus.CounterVec // labels: source={remote,fallback}
	FallbackReasons  *prometheus.CounterVec // labels: reason={request_failed,empty_result,no_endpoint}
	AnalyzeDuration  prometheus.Histogram
	ReadingsIngested prometheus.Counter
	ReadingsSwept    prometheus.Counter
	StationsTracked  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AnalyzeRequests,
		m.FallbackReasons,
		m.AnalyzeDuration,
		m.ReadingsIngested,
		m.ReadingsSwept,
		m.StationsTracked,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AnalyzeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_dashboard",
			Name:      "analyze_requests_total",
			Help:      "Analysis runs by suggestion source.",
		}, []string{"source"}),
		FallbackReasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_dashboard",
			Name:      "fallback_reasons_total",
			Help:      "Local fallback activations by reason.",
		}, []string{"reason"}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_dashboard",
			Name:      "analyze_duration_seconds",
			Help:      "Duration of a complete analysis run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ReadingsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_dashboard",
			Name:      "readings_ingested_total",
			Help:      "Total readings accepted from stations.",
		}),
		ReadingsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_dashboard",
			Name:      "readings_swept_total",
			Help:      "Total stale readings cleared by the sweeper.",
		}),
		StationsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_dashboard",
			Name:      "stations_tracked",
			Help:      "Number of stations registered in the store.",
		}),
	}
}
