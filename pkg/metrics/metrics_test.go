package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMovementRecorded_CuentaMovimientoYUnidades(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), Config{Environment: "test"})

	m.MovementRecorded("ingreso", 5)
	m.MovementRecorded("ingreso", 3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.movements.WithLabelValues("ingreso")))
	assert.Equal(t, float64(8), testutil.ToFloat64(m.stockUnits.WithLabelValues("ingreso")))
}

func TestAuditDropped_PorMotivo(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), Config{})

	m.AuditDropped(AuditDropQueueFull)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.auditDropped.WithLabelValues(AuditDropQueueFull)))
}

func TestMetricsNil_NoEntraEnPanico(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MovementRecorded("egreso", 1)
		m.AuditWritten()
		m.AlertRun("ok")
		m.NotificationSent(false)
	})
}
