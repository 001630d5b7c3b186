// Package metrics exposes Prometheus metrics for profile operations and
// remote synchronization
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation metrics
var (
	ProfileOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProfileOperationsTotal,
			Help: HelpTextProfileOperationsTotal,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOperationDuration,
			Help:    HelpTextOperationDuration,
			Buckets: OperationLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)

// Sync metrics
var (
	RemoteSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteSyncTotal,
			Help: HelpTextRemoteSyncTotal,
		},
		[]string{LabelStatus},
	)

	MalformedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMalformedItemsTotal,
			Help: HelpTextMalformedItemsTotal,
		},
	)

	DroppedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDroppedItemsTotal,
			Help: HelpTextDroppedItemsTotal,
		},
	)
)

// Event metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// ObserveOperation records the outcome and duration of one operation
func ObserveOperation(operation string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ProfileOperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
