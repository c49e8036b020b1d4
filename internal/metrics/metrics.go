package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelens_requests_total",
			Help: "Total number of analyze requests by outcome",
		},
		[]string{"status"},
	)

	PipelineFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelens_pipeline_fallbacks_total",
			Help: "Total number of fallback substitutions by pipeline stage",
		},
		[]string{"stage"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "storelens_request_duration_seconds",
			Help: "Duration of analyze request processing in seconds",
		},
	)
)
