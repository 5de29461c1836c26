package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Trigger invocations by how they ended
	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_monitor_invocations_total",
			Help: "Total number of device update invocations",
		},
		[]string{"result"}, // result: deleted, missing_telemetry, in_range, alerted, failed, invalid
	)

	InvocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nest_monitor_invocation_duration_seconds",
			Help:    "Time taken to handle one device update",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	AlertsWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_monitor_alerts_written_total",
			Help: "Total number of alert records appended",
		},
		[]string{"rule"},
	)

	PushTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_monitor_push_total",
			Help: "Total number of push notification attempts",
		},
		[]string{"status"}, // status: sent, no_token, failed
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_monitor_rate_limited_total",
			Help: "Total number of trigger deliveries rejected by the device limiter",
		},
		[]string{"transport"},
	)
)
