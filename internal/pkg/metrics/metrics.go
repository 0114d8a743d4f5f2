package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stamp_rally"

type Metrics struct {
	// profile reads replaced by their default value, by read name
	DegradedReads *prometheus.CounterVec
	// claim attempts, by ledger source and outcome
	Claims *prometheus.CounterVec
	// upstream call latency, by operation and status class
	UpstreamDuration *prometheus.HistogramVec
	// handled requests, by method, route template and status code
	HTTPDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DegradedReads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_degraded_reads_total",
			Help:      "Profile reads that failed and fell back to an empty value.",
		}, []string{"read"}),
		Claims: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reward_claims_total",
			Help:      "Reward claim attempts.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the upstream API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of requests served by the API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// NewNop returns metrics bound to a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
