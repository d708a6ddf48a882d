package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notionfeed_feed_requests_total",
		Help: "The total number of feed requests by outcome",
	}, []string{"outcome"})

	feedBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notionfeed_feed_build_duration_seconds",
		Help:    "Time spent querying Notion and building the feed",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms up to ~25s
	})

	feedItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notionfeed_feed_items",
		Help: "Number of items in the most recently built feed",
	})
)
