package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Date decoding metrics
	AmbiguousDates *prometheus.CounterVec
	LegacyDates    *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"table", "operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"table", "operation"}),
		AmbiguousDates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ambiguous_dates_total",
			Help:      "Stored dates whose day and month order could not be told apart",
		}, []string{"table", "resolution"}),
		LegacyDates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "non_canonical_dates_total",
			Help:      "Stored dates read in a non-canonical encoding",
		}, []string{"table", "layout"}),
	}
}

// ObserveDatabase records one database operation. Safe on a nil receiver.
func (m *Metrics) ObserveDatabase(table, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(table, operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}

// ObserveDate records a date read in a non-canonical layout. Safe on a nil
// receiver.
func (m *Metrics) ObserveDate(table, layout string, ambiguous bool, resolution string) {
	if m == nil {
		return
	}
	m.LegacyDates.WithLabelValues(table, layout).Inc()
	if ambiguous {
		m.AmbiguousDates.WithLabelValues(table, resolution).Inc()
	}
}
