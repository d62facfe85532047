package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAvailability(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("scheduling", reg)

	m.ObserveAvailability(OutcomeOK, "configured", 6)
	m.ObserveAvailability(OutcomeOK, "fallback", 19)
	m.ObserveAvailability(OutcomeUnavailable, "configured", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AvailabilityScans.WithLabelValues(OutcomeOK, "configured")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AvailabilityScans.WithLabelValues(OutcomeUnavailable, "configured")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AvailabilitySlots))
}

func TestObserveAvailability_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveAvailability(OutcomeOK, "fallback", 3) })
}
