package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics_ObserveTransition(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveTransition("confirm", "ok")
	m.ObserveTransition("confirm", "ok")
	m.ObserveTransition("confirm", "rejected")

	assert.Equal(t, 2.0, counterValue(t, m.BookingTransitions.WithLabelValues("confirm", "ok")))
	assert.Equal(t, 1.0, counterValue(t, m.BookingTransitions.WithLabelValues("confirm", "rejected")))
}

func TestMetrics_ObserveSweep(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveSweep(3, nil)
	m.ObserveSweep(0, errors.New("db down"))

	assert.Equal(t, 3.0, counterValue(t, m.SweepCompletions))
	assert.Equal(t, 1.0, counterValue(t, m.SweepRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, counterValue(t, m.SweepRuns.WithLabelValues("error")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTransition("start", "ok")
		m.ObserveAvailability("ok")
		m.ObserveSweep(1, nil)
	})
}
