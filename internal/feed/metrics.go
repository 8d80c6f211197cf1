// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the feed endpoint collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	cache    *prometheus.CounterVec
	entries  prometheus.Histogram
}

// NewMetrics registers the collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdrss",
			Subsystem: "feed",
			Name:      "requests_total",
			Help:      "Feed requests by format and status code.",
		}, []string{"format", "code"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdrss",
			Subsystem: "feed",
			Name:      "cache_lookups_total",
			Help:      "Feed cache lookups by result.",
		}, []string{"result"}),
		entries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mdrss",
			Subsystem: "feed",
			Name:      "entries",
			Help:      "Entries per rendered feed.",
			Buckets:   prometheus.LinearBuckets(0, 5, 5),
		}),
	}
}
