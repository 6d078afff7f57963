// Package metrics provides Prometheus metrics for silo storage
// operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageOpsTotal counts storage operations by backend and
	// operation.
	StorageOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "silo_storage_ops_total",
			Help: "Total number of storage operations",
		},
		[]string{"backend", "operation"},
	)

	// StorageOpDuration observes storage operation latency.
	StorageOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "silo_storage_op_duration_seconds",
			Help:    "Storage operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	// StorageErrorsTotal counts failed storage operations.
	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "silo_storage_errors_total",
			Help: "Total number of failed storage operations",
		},
		[]string{"backend", "operation"},
	)
)

// ObserveOp records one storage operation outcome.
func ObserveOp(backend, operation string, start time.Time, err error) {
	StorageOpsTotal.WithLabelValues(backend, operation).Inc()
	StorageOpDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		StorageErrorsTotal.WithLabelValues(backend, operation).Inc()
	}
}
