package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/pkg/logger"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// AdminNotifier avisa por correo a los administradores activos de cada movimiento.
// El envío corre en su propia goroutine con timeout; los errores solo se registran.
type AdminNotifier struct {
	users   repository.UserRepository
	mailer  ports.Mailer
	log     *logger.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewAdminNotifier construye el notificador.
func NewAdminNotifier(users repository.UserRepository, mailer ports.Mailer, log *logger.Logger, m *metrics.Metrics, timeout time.Duration) *AdminNotifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdminNotifier{users: users, mailer: mailer, log: log.Component("notificacion"), metrics: m, timeout: timeout}
}

// MovementRegistered despacha la notificación y retorna de inmediato.
func (n *AdminNotifier) MovementRegistered(mov *entity.Movement, p *entity.Product) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.send(ctx, mov, p); err != nil {
			n.metrics.NotificationSent(false)
			n.log.Error().Err(err).Str("movimiento_id", mov.ID).Msg("no se pudo notificar a los administradores")
			return
		}
		n.metrics.NotificationSent(true)
	}()
}

// Wait espera los envíos en curso.
func (n *AdminNotifier) Wait() {
	n.wg.Wait()
}

func (n *AdminNotifier) send(ctx context.Context, mov *entity.Movement, p *entity.Product) error {
	admins, err := n.users.ListActiveByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("listar administradores: %w", err)
	}
	to := make([]string, 0, len(admins))
	for _, a := range admins {
		to = append(to, a.Email)
	}
	if len(to) == 0 {
		return nil
	}
	return n.mailer.Send(ctx, to, MovementSubject(mov), movementBody(mov, p))
}

// MovementSubject asunto del aviso: tipo, referencia y cantidad.
func MovementSubject(mov *entity.Movement) string {
	return fmt.Sprintf("[Inventario] %s de %d unidad(es) - %s", strings.ToUpper(mov.Tipo), mov.Cantidad, mov.Referencia)
}

func movementBody(mov *entity.Movement, p *entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Se registró un %s en el inventario.\n\n", mov.Tipo)
	fmt.Fprintf(&b, "Referencia: %s\n", mov.Referencia)
	fmt.Fprintf(&b, "Producto: %s\n", p.Nombre)
	fmt.Fprintf(&b, "Cantidad: %d\n", mov.Cantidad)
	if mov.CostoTotal != nil {
		fmt.Fprintf(&b, "Costo total: %s\n", mov.CostoTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Existencia resultante: %d\n", p.Existencia)
	if mov.Nota != "" {
		fmt.Fprintf(&b, "Nota: %s\n", mov.Nota)
	}
	fmt.Fprintf(&b, "Fecha: %s\n", mov.Fecha.Format("02/01/2006 15:04"))
	return b.String()
}
