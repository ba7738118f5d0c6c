package inventory

import "github.com/romero-panificados/inventario-api/internal/domain/entity"

// MovementNotifier recibe cada movimiento confirmado. La implementación no debe bloquear
// ni fallar: el movimiento ya está persistido cuando se invoca.
type MovementNotifier interface {
	MovementRegistered(mov *entity.Movement, product *entity.Product)
}

// Motivos de rechazo reportados en métricas.
const (
	RejectInvalid      = "invalid"
	RejectNotFound     = "not_found"
	RejectInsufficient = "insufficient_stock"
)
