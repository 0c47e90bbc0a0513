package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks response cache hits by layer (otter, badger, redis)
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiverse_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"layer"},
	)

	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiverse_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"layer"},
	)

	// Errors tracks failed cache operations by layer and operation (get, set)
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiverse_cache_errors_total",
			Help: "Total number of response cache operation errors",
		},
		[]string{"layer", "operation"},
	)
)
