package gallery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlaceholdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multiverse_detail_placeholders_total",
			Help: "Total number of detail fetches replaced by a placeholder",
		},
	)

	// StaleFetchesTotal counts page fetches dropped because a newer one was started
	StaleFetchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multiverse_stale_page_fetches_total",
			Help: "Total number of page fetches discarded as stale",
		},
	)

	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "multiverse_page_fetch_duration_seconds",
			Help:    "Duration of fetching all details of a gallery page",
			Buckets: prometheus.DefBuckets,
		},
	)
)
