package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	fallbacksServed  *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_provider_requests_total",
				Help: "Upstream provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		fallbacksServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_fallbacks_served_total",
				Help: "Synthetic substitutes served instead of live data",
			},
			[]string{"kind"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_cache_requests_total",
				Help: "Cache lookups by kind and result",
			},
			[]string{"kind", "result"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketlens_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketlens_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordProviderRequest records an upstream call and its outcome.
func (r *Recorder) RecordProviderRequest(endpoint, outcome string) {
	r.providerRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordFallback records a synthetic substitute being served.
func (r *Recorder) RecordFallback(kind string) {
	r.fallbacksServed.WithLabelValues(kind).Inc()
}

// RecordCache records a cache lookup result.
func (r *Recorder) RecordCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheOps.WithLabelValues(kind, result).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
