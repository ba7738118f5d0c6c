package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/pkg/logger"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// Event lo que un handler quiere dejar registrado.
type Event struct {
	UsuarioID *string
	Accion    string
	Entidad   string
	EntidadID *string
	Detalles  any
	IP        string
}

// Config parámetros del escritor.
type Config struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// Recorder escritor de auditoría best-effort: Record encola sin bloquear y un worker
// persiste cada registro compitiendo contra WriteTimeout. Los fallos solo se registran en el log.
type Recorder struct {
	repo    repository.AuditRepository
	log     *logger.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	queue   chan *entity.AuditEntry
	started bool
	stopped bool
	done    chan struct{}
}

// NewRecorder construye el escritor. Hay que llamar Start para que persista.
func NewRecorder(repo repository.AuditRepository, cfg Config, log *logger.Logger, m *metrics.Metrics) *Recorder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 2 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{
		repo:    repo,
		log:     log.Component("audit"),
		metrics: m,
		timeout: cfg.WriteTimeout,
		now:     time.Now,
		queue:   make(chan *entity.AuditEntry, cfg.QueueSize),
		done:    make(chan struct{}),
	}
}

// Start lanza el worker. Llamadas repetidas no tienen efecto.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true
	go r.run()
}

// Stop deja de aceptar registros y espera a que el worker vacíe la cola o venza ctx.
func (r *Recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	close(r.queue)
	started := r.started
	r.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record valida y encola el evento. Nunca bloquea; devuelve false si el evento se descartó.
func (r *Recorder) Record(ev Event) bool {
	if !entity.ValidAuditAction(ev.Accion) {
		r.log.Warn().Str("accion", ev.Accion).Str("entidad", ev.Entidad).Msg("acción de auditoría desconocida, se descarta")
		r.metrics.AuditDropped(metrics.AuditDropInvalid)
		return false
	}
	if ev.UsuarioID == nil && ev.Accion != entity.AuditLogin {
		r.log.Warn().Str("accion", ev.Accion).Str("entidad", ev.Entidad).Msg("registro de auditoría sin usuario, se descarta")
		r.metrics.AuditDropped(metrics.AuditDropInvalid)
		return false
	}

	entry := &entity.AuditEntry{
		ID:        uuid.New().String(),
		UsuarioID: ev.UsuarioID,
		Accion:    ev.Accion,
		Entidad:   ev.Entidad,
		EntidadID: ev.EntidadID,
		IP:        ev.IP,
		Fecha:     r.now(),
	}
	if entry.IP == "" {
		entry.IP = UnknownIP
	}
	if ev.Detalles != nil {
		b, err := json.Marshal(ev.Detalles)
		if err != nil {
			r.log.Warn().Err(err).Str("entidad", ev.Entidad).Msg("detalles de auditoría no serializables, se omiten")
		} else {
			entry.Detalles = b
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		r.metrics.AuditDropped(metrics.AuditDropStopped)
		return false
	}
	select {
	case r.queue <- entry:
		return true
	default:
		r.log.Warn().Str("accion", entry.Accion).Str("entidad", entry.Entidad).Msg("cola de auditoría llena, se descarta")
		r.metrics.AuditDropped(metrics.AuditDropQueueFull)
		return false
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		r.write(entry)
	}
}

// write compite contra el timeout aunque el repositorio ignore ctx.
func (r *Recorder) write(entry *entity.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() { result <- r.repo.Create(ctx, entry) }()

	select {
	case err := <-result:
		if err != nil {
			r.log.Error().Err(err).Str("accion", entry.Accion).Str("entidad", entry.Entidad).Msg("no se pudo guardar auditoría")
			r.metrics.AuditDropped(metrics.AuditDropWriteFailed)
			return
		}
		r.metrics.AuditWritten()
	case <-ctx.Done():
		r.log.Error().Dur("timeout", r.timeout).Str("accion", entry.Accion).Str("entidad", entry.Entidad).Msg("auditoría excedió el tiempo de escritura")
		r.metrics.AuditDropped(metrics.AuditDropWriteTimeout)
	}
}
