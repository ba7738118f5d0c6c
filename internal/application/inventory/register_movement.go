package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/inventory"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// RegisterMovement valida la entrada, resuelve el producto por referencia y, en una transacción,
// ajusta la existencia y agrega el asiento al libro. Tras el commit invalida el cache,
// actualiza métricas y despacha la notificación a los administradores.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	tipo := strings.ToLower(strings.TrimSpace(in.Tipo))
	if err := validateMovement(tipo, in); err != nil {
		uc.metrics.MovementRejected(RejectInvalid)
		return nil, err
	}

	ref := inventory.NormalizeReferencia(in.Referencia)
	product, err := uc.productRepo.GetByReferencia(ctx, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		uc.metrics.MovementRejected(RejectNotFound)
		return nil, domain.ErrNotFound
	}

	delta := in.Cantidad
	if tipo == entity.MovementEgreso {
		delta = -in.Cantidad
	}

	var (
		mov     *entity.Movement
		updated *entity.Product
	)
	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		p, err := tx.Products.AdjustStock(ctx, product.ID, delta, inventory.NewStandingCost(tipo, in.CostoUnitario))
		if err != nil {
			return err
		}
		if p == nil {
			if tipo == entity.MovementEgreso {
				return domain.ErrInsufficientStock
			}
			return domain.ErrNotFound
		}
		unitCost := inventory.LedgerUnitCost(tipo, in.CostoUnitario, p.CostoUnitario)
		mov = &entity.Movement{
			ID:            uuid.New().String(),
			ProductoID:    p.ID,
			Referencia:    p.Referencia,
			Tipo:          tipo,
			Cantidad:      in.Cantidad,
			CostoUnitario: unitCost,
			CostoTotal:    inventory.TotalCost(unitCost, in.Cantidad),
			Nota:          strings.TrimSpace(in.Nota),
			UsuarioID:     actorID,
			Categoria:     p.Categoria,
			Fecha:         time.Now(),
		}
		if err := tx.Movements.Create(ctx, mov); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			uc.metrics.MovementRejected(RejectInsufficient)
		case errors.Is(err, domain.ErrNotFound):
			uc.metrics.MovementRejected(RejectNotFound)
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, updated.ID)
	uc.metrics.MovementRecorded(tipo, in.Cantidad)
	if uc.notifier != nil {
		uc.notifier.MovementRegistered(mov, updated)
	}
	uc.log.Info().
		Str("referencia", mov.Referencia).
		Str("tipo", tipo).
		Int("cantidad", mov.Cantidad).
		Int("existencia", updated.Existencia).
		Msg("movimiento registrado")

	return &dto.RegisterMovementResponse{
		Movimiento: ToMovementResponse(mov),
		Producto:   toProductResponse(updated),
	}, nil
}

func validateMovement(tipo string, in dto.RegisterMovementRequest) error {
	if strings.TrimSpace(in.Referencia) == "" {
		return domain.Invalid("referencia", "es obligatoria")
	}
	if !entity.ValidMovementType(tipo) {
		return domain.Invalid("tipo", "debe ser ingreso o egreso")
	}
	if in.Cantidad <= 0 {
		return domain.Invalid("cantidad", "debe ser un entero mayor que cero")
	}
	if in.CostoUnitario != nil && in.CostoUnitario.IsNegative() {
		return domain.Invalid("costoUnitario", "no puede ser negativo")
	}
	return nil
}
