package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDatabase(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "emr", "test")

	m.ObserveDatabase("patients", "create", time.Now(), nil)
	m.ObserveDatabase("patients", "create", time.Now(), errors.New("duplicate"))
	m.ObserveDatabase("patients", "create", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("patients", "create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("patients", "create", "error")))
}

func TestObserveDate(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "emr", "test")

	m.ObserveDate("patients", "02/01/2006", true, "legacy")
	m.ObserveDate("patients", "01/02/2006", false, "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AmbiguousDates.WithLabelValues("patients", "legacy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LegacyDates.WithLabelValues("patients", "01/02/2006")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDatabase("doctors", "read", time.Now(), nil)
		m.ObserveDate("patients", "02/01/2006", true, "legacy")
	})
}
