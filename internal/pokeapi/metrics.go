package pokeapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

var (
	// RequestsTotal counts upstream requests by resource and http status (or failure kind)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiverse_pokeapi_requests_total",
			Help: "Total number of requests sent to pokeapi",
		},
		[]string{"resource", "status"},
	)

	// RequestDuration tracks upstream latency by resource
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multiverse_pokeapi_request_duration_seconds",
			Help:    "Duration of requests sent to pokeapi",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)
)

func observe(resource, status string, start time.Time) {
	RequestsTotal.WithLabelValues(resource, status).Inc()
	RequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}
