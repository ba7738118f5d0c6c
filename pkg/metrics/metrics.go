package metrics

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Motivos de descarte de eventos de auditoría.
const (
	AuditDropQueueFull    = "queue_full"
	AuditDropInvalid      = "invalid"
	AuditDropWriteFailed  = "write_failed"
	AuditDropWriteTimeout = "write_timeout"
	AuditDropStopped      = "stopped"
)

// Config etiquetas constantes de los colectores.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics colectores Prometheus del servicio. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	gatherer          prometheus.Gatherer
	movements         *prometheus.CounterVec
	movementsRejected *prometheus.CounterVec
	stockUnits        *prometheus.CounterVec
	auditWritten      prometheus.Counter
	auditDropped      *prometheus.CounterVec
	alertRuns         *prometheus.CounterVec
	notifications     *prometheus.CounterVec
}

// New registra los colectores en un registro propio.
func New(cfg Config) *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), cfg)
}

// NewWithRegistry registra los colectores en reg.
func NewWithRegistry(reg *prometheus.Registry, cfg Config) *Metrics {
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "romero-inventario"
	}
	env := strings.TrimSpace(cfg.Environment)
	if env == "" {
		env = "unknown"
	}
	labels := prometheus.Labels{"service": service, "env": env}

	m := &Metrics{
		gatherer: reg,
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventario_movimientos_total",
			Help:        "Movimientos de inventario registrados por tipo.",
			ConstLabels: labels,
		}, []string{"tipo"}),
		movementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventario_movimientos_rechazados_total",
			Help:        "Movimientos rechazados por motivo.",
			ConstLabels: labels,
		}, []string{"motivo"}),
		stockUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventario_unidades_total",
			Help:        "Unidades movidas por tipo de movimiento.",
			ConstLabels: labels,
		}, []string{"tipo"}),
		auditWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "auditoria_eventos_escritos_total",
			Help:        "Eventos de auditoría persistidos.",
			ConstLabels: labels,
		}),
		auditDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "auditoria_eventos_descartados_total",
			Help:        "Eventos de auditoría descartados por motivo.",
			ConstLabels: labels,
		}, []string{"motivo"}),
		alertRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "mantenimiento_alertas_ejecuciones_total",
			Help:        "Ejecuciones del job de alertas de mantenimiento por resultado.",
			ConstLabels: labels,
		}, []string{"resultado"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notificaciones_correo_total",
			Help:        "Correos de notificación enviados por resultado.",
			ConstLabels: labels,
		}, []string{"resultado"}),
	}

	reg.MustRegister(
		m.movements,
		m.movementsRejected,
		m.stockUnits,
		m.auditWritten,
		m.auditDropped,
		m.alertRuns,
		m.notifications,
	)
	return m
}

// MovementRecorded cuenta un movimiento confirmado.
func (m *Metrics) MovementRecorded(tipo string, cantidad int) {
	if m == nil {
		return
	}
	m.movements.WithLabelValues(tipo).Inc()
	m.stockUnits.WithLabelValues(tipo).Add(float64(cantidad))
}

// MovementRejected cuenta un movimiento rechazado.
func (m *Metrics) MovementRejected(motivo string) {
	if m == nil {
		return
	}
	m.movementsRejected.WithLabelValues(motivo).Inc()
}

// AuditWritten cuenta un evento de auditoría persistido.
func (m *Metrics) AuditWritten() {
	if m == nil {
		return
	}
	m.auditWritten.Inc()
}

// AuditDropped cuenta un evento de auditoría descartado.
func (m *Metrics) AuditDropped(motivo string) {
	if m == nil {
		return
	}
	m.auditDropped.WithLabelValues(motivo).Inc()
}

// AlertRun cuenta una ejecución del job de alertas.
func (m *Metrics) AlertRun(resultado string) {
	if m == nil {
		return
	}
	m.alertRuns.WithLabelValues(resultado).Inc()
}

// NotificationSent cuenta un correo de notificación.
func (m *Metrics) NotificationSent(ok bool) {
	if m == nil {
		return
	}
	resultado := "ok"
	if !ok {
		resultado = "error"
	}
	m.notifications.WithLabelValues(resultado).Inc()
}

// Handler expone /metrics como handler de Fiber.
func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) }
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
