// Package metrics exposes Prometheus instruments for meeting operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names used as the "op" label.
const (
	OpCreate         = "create"
	OpList           = "list"
	OpView           = "view"
	OpCard           = "card"
	OpSoftDelete     = "soft_delete"
	OpSoftDeleteMany = "soft_delete_many"
	OpHistory        = "history"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

var (
	// operationsTotal counts meeting operations.
	// Labels:
	//   - op: one of the Op* constants
	//   - outcome: one of the Outcome* constants
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetingdesk_operations_total",
			Help: "Total number of meeting operations by outcome",
		},
		[]string{"op", "outcome"},
	)

	// operationDuration records store round-trip time per operation.
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meetingdesk_operation_duration_seconds",
			Help:    "Duration of meeting operations in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	// softDeletedTotal counts meetings flipped to deleted=true.
	softDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meetingdesk_meetings_soft_deleted_total",
			Help: "Total number of meetings marked deleted",
		},
	)

	// listRowsDropped counts non-deleted meetings hidden from lists because
	// their creator is missing or deleted.
	listRowsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meetingdesk_list_rows_dropped_total",
			Help: "Meetings excluded from list results because the creator did not resolve or is deleted",
		},
	)
)

func init() {
	prometheus.MustRegister(operationsTotal)
	prometheus.MustRegister(operationDuration)
	prometheus.MustRegister(softDeletedTotal)
	prometheus.MustRegister(listRowsDropped)
}

// RecordOperation counts one operation and observes its duration.
func RecordOperation(op, outcome string, elapsed time.Duration) {
	operationsTotal.WithLabelValues(op, outcome).Inc()
	operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RecordSoftDeleted adds n to the soft-deleted counter. Non-positive n is ignored.
func RecordSoftDeleted(n int64) {
	if n > 0 {
		softDeletedTotal.Add(float64(n))
	}
}

// RecordDroppedRows adds n to the dropped-rows counter. Non-positive n is ignored.
func RecordDroppedRows(n int) {
	if n > 0 {
		listRowsDropped.Add(float64(n))
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
