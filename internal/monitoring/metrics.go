package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tally_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	VotesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_votes_recorded_total",
			Help: "Total number of vote writes, by kind and outcome",
		},
		[]string{"kind", "action"},
	)
)

// RegisterMetrics registers all collectors with the default registry.
// Called once at startup.
func RegisterMetrics() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		VotesRecorded,
	)
}
