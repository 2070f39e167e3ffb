package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if v, ok := labels[pair.GetName()]; ok && v == pair.GetValue() {
					matched++
				}
			}
			if matched != len(labels) {
				continue
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			if metric.GetGauge() != nil {
				return metric.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("salon", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/services", 200, 0.02)
	m.ObserveDBQuery("query", 0.001, nil)
	m.ObserveDBQuery("exec", 0.002, errors.New("boom"))
	m.SetDBPoolStats("postgres", 5, 2, 3, 1)
	m.ObserveBookingAttempt("created")
	m.ObserveBookingAttempt("conflict")
	m.ObserveBookingAttempt("conflict")
	m.ObserveNotification("booking_created", true)

	assert.Equal(t, 1.0, counterValue(t, reg, "http_requests_total",
		map[string]string{"method": "GET", "route": "/api/v1/services", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "db_query_errors_total", map[string]string{"operation": "exec"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "booking_attempts_total", map[string]string{"outcome": "conflict"}))
	assert.Equal(t, 3.0, counterValue(t, reg, "db_idle_connections", map[string]string{"db": "postgres"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "notifications_total",
		map[string]string{"event": "booking_created", "result": "sent"}))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, 0.1)
		m.ObserveDBQuery("query", 0.1, nil)
		m.SetDBPoolStats("postgres", 1, 1, 0, 0)
		m.ObserveBookingAttempt("created")
		m.ObserveNotification("status_changed", false)
	})
}
