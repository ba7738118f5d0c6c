package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/pkg/logger"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// Resultados de una ejecución del job (etiqueta de métricas).
const (
	AlertSent    = "sent"
	AlertEmpty   = "empty"
	AlertSkipped = "skipped"
	AlertFailed  = "error"
	AlertTimeout = "timeout"
)

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real.
type SystemClock struct{}

// Now hora actual.
func (SystemClock) Now() time.Time { return time.Now() }

// DueAlertConfig parámetros del job.
type DueAlertConfig struct {
	Recipient string
	Hour      int
	Location  *time.Location
	Timeout   time.Duration
}

// DueAlertJob envía una vez al día un correo con los mantenimientos activos que vencen el día siguiente.
// Un fallo o timeout se registra y se espera a la próxima ejecución; no hay reintentos.
type DueAlertJob struct {
	cfg     DueAlertConfig
	repo    repository.MaintenanceRepository
	mailer  ports.Mailer
	clock   Clock
	log     *logger.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewDueAlertJob construye el job. Location nil = UTC; Timeout cero = 30 s.
func NewDueAlertJob(cfg DueAlertConfig, repo repository.MaintenanceRepository, mailer ports.Mailer, clock Clock, log *logger.Logger, m *metrics.Metrics) *DueAlertJob {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DueAlertJob{cfg: cfg, repo: repo, mailer: mailer, clock: clock, log: log.Component("alerta_mantenimientos"), metrics: m}
}

// Start lanza el ciclo diario. Llamar Start dos veces no crea un segundo ciclo.
func (j *DueAlertJob) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stop != nil {
		return
	}
	j.stop = make(chan struct{})
	j.done = make(chan struct{})
	go j.loop(ctx, j.stop, j.done)
	j.log.Info().Int("hora", j.cfg.Hour).Str("zona", j.cfg.Location.String()).Msg("alerta diaria programada")
}

// Stop detiene el ciclo y espera a que termine la ejecución en curso.
func (j *DueAlertJob) Stop() {
	j.mu.Lock()
	stop, done := j.stop, j.done
	j.stop, j.done = nil, nil
	j.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (j *DueAlertJob) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		now := j.clock.Now()
		timer := time.NewTimer(j.NextRun(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			_, _ = j.RunOnce(ctx)
		}
	}
}

// NextRun próxima hora de ejecución estrictamente posterior a now, en la zona configurada.
func (j *DueAlertJob) NextRun(now time.Time) time.Time {
	local := now.In(j.cfg.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), j.cfg.Hour, 0, 0, 0, j.cfg.Location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Window día calendario siguiente a now: [mañana 00:00, pasado mañana 00:00) en la zona configurada.
func (j *DueAlertJob) Window(now time.Time) (time.Time, time.Time) {
	local := now.In(j.cfg.Location)
	from := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, j.cfg.Location)
	return from, from.AddDate(0, 0, 1)
}

// RunOnce consulta y envía el aviso. Devuelve cuántos mantenimientos se listaron.
// Consulta y envío compiten contra el timeout configurado.
func (j *DueAlertJob) RunOnce(ctx context.Context) (int, error) {
	if j.cfg.Recipient == "" {
		j.metrics.AlertRun(AlertSkipped)
		j.log.Warn().Msg("sin destinatario configurado, se omite la alerta")
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
	defer cancel()

	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := j.run(ctx)
		ch <- result{n, err}
	}()

	select {
	case <-ctx.Done():
		j.metrics.AlertRun(AlertTimeout)
		j.log.Error().Dur("timeout", j.cfg.Timeout).Msg("alerta de mantenimientos excedió el tiempo límite")
		return 0, domain.ErrTimeout
	case r := <-ch:
		switch {
		case r.err != nil:
			j.metrics.AlertRun(AlertFailed)
			j.log.Error().Err(r.err).Msg("alerta de mantenimientos falló")
		case r.n == 0:
			j.metrics.AlertRun(AlertEmpty)
			j.log.Info().Msg("sin mantenimientos por vencer mañana")
		default:
			j.metrics.AlertRun(AlertSent)
			j.log.Info().Int("mantenimientos", r.n).Str("destinatario", j.cfg.Recipient).Msg("alerta de mantenimientos enviada")
		}
		return r.n, r.err
	}
}

func (j *DueAlertJob) run(ctx context.Context) (int, error) {
	from, to := j.Window(j.clock.Now())
	due, err := j.repo.ListDueBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("listar vencimientos: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}
	subject := fmt.Sprintf("[Mantenimiento] %d mantenimiento(s) vencen el %s", len(due), from.Format("02/01/2006"))
	if err := j.mailer.Send(ctx, []string{j.cfg.Recipient}, subject, dueBody(due, j.cfg.Location)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, domain.ErrTimeout
		}
		return 0, fmt.Errorf("enviar alerta: %w", err)
	}
	return len(due), nil
}

func dueBody(due []*entity.Maintenance, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("Los siguientes mantenimientos activos vencen mañana:\n\n")
	for _, m := range due {
		fmt.Fprintf(&b, "- %s | %s | técnico: %s | vence: %s\n",
			m.Equipo, m.Tipo, valueOr(m.Tecnico, "sin asignar"), m.FechaVencimiento.In(loc).Format("02/01/2006 15:04"))
	}
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
