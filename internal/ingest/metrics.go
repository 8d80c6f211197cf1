// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle outcomes used as the "result" label.
const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultSkipped = "skipped"
)

// Metrics are the ingestion loop collectors.
type Metrics struct {
	cycles        *prometheus.CounterVec
	chapters      prometheus.Counter
	cycleDuration prometheus.Histogram
	watermarkLag  prometheus.Gauge
}

// NewMetrics registers the collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdrss",
			Subsystem: "ingest",
			Name:      "cycles_total",
			Help:      "Ingestion cycles by result.",
		}, []string{"result"}),
		chapters: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mdrss",
			Subsystem: "ingest",
			Name:      "chapters_total",
			Help:      "Chapters upserted.",
		}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mdrss",
			Subsystem: "ingest",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of completed ingestion cycles.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		watermarkLag: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdrss",
			Subsystem: "ingest",
			Name:      "watermark_lag_seconds",
			Help:      "Age of the newest stored chapter at the end of the last cycle.",
		}),
	}
}
