package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// AdvertenciaSinStock mensaje devuelto cuando el repuesto no tenía existencia.
const AdvertenciaSinStock = "El producto no tiene existencia: el mantenimiento se registró sin descontar stock"

// UseCase alta, edición, baja y consulta de mantenimientos.
// Crear un mantenimiento activo consume 1 unidad del repuesto; eliminarlo activo la devuelve.
// Estos cambios de stock no generan asiento en el libro de movimientos.
type UseCase struct {
	repo     repository.MaintenanceRepository
	txRunner repository.TxRunner
	cache    ports.ProductCache
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MaintenanceRepository, txRunner repository.TxRunner, cache ports.ProductCache) *UseCase {
	return &UseCase{repo: repo, txRunner: txRunner, cache: cache, now: time.Now}
}

// Create registra el mantenimiento y, si queda activo, descuenta 1 unidad cuando hay existencia.
// Sin existencia la operación igual se completa y la respuesta lo indica.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateMaintenanceRequest) (*dto.CreateMaintenanceResponse, error) {
	estado := strings.ToLower(strings.TrimSpace(in.Estado))
	if estado == "" {
		estado = entity.MaintenanceActivo
	}
	tipo := strings.ToLower(strings.TrimSpace(in.Tipo))
	if err := validateCreate(tipo, estado, in); err != nil {
		return nil, err
	}
	if !domain.ValidID(strings.TrimSpace(in.ProductoID)) {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	instalacion := now
	if in.FechaInstalacion != nil {
		instalacion = *in.FechaInstalacion
	}
	m := &entity.Maintenance{
		ID:               uuid.New().String(),
		ProductoID:       strings.TrimSpace(in.ProductoID),
		Equipo:           strings.TrimSpace(in.Equipo),
		Tipo:             tipo,
		FechaInstalacion: instalacion,
		FechaVencimiento: in.FechaVencimiento,
		VidaUtilHoras:    in.VidaUtilHoras,
		Tecnico:          strings.TrimSpace(in.Tecnico),
		Costo:            in.Costo,
		Estado:           estado,
		Observaciones:    strings.TrimSpace(in.Observaciones),
		CreadoPor:        actorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if m.FechaVencimiento != nil && m.FechaVencimiento.Before(m.FechaInstalacion) {
		return nil, domain.Invalid("fechaVencimiento", "no puede ser anterior a la fecha de instalación")
	}

	sinStock := false
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		p, err := tx.Products.GetForUpdate(ctx, m.ProductoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if m.Equipo == "" {
			m.Equipo = p.Equipo
		}
		if err := tx.Maintenances.Create(ctx, m); err != nil {
			return err
		}
		if m.Estado != entity.MaintenanceActivo {
			return nil
		}
		updated, err := tx.Products.AdjustStock(ctx, m.ProductoID, -1, nil)
		if err != nil {
			return err
		}
		sinStock = updated == nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, m.ProductoID)

	out := &dto.CreateMaintenanceResponse{Mantenimiento: toResponse(m, now), SinStock: sinStock}
	if sinStock {
		out.Advertencia = AdvertenciaSinStock
	}
	return out, nil
}

// Update edita campos; el estado solo admite activo → completado o activo → cancelado. No toca stock.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var out *entity.Maintenance
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		m, err := tx.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := applyUpdate(m, in); err != nil {
			return err
		}
		m.UpdatedAt = uc.now()
		if err := tx.Maintenances.Update(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(out, uc.now())
	return &resp, nil
}

// Delete elimina el registro y, si seguía activo, devuelve 1 unidad al producto.
func (uc *UseCase) Delete(ctx context.Context, id string) (*dto.MaintenanceResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var deleted *entity.Maintenance
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		m, err := tx.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := tx.Maintenances.Delete(ctx, id); err != nil {
			return err
		}
		if m.Estado == entity.MaintenanceActivo {
			if _, err := tx.Products.AdjustStock(ctx, m.ProductoID, 1, nil); err != nil {
				return err
			}
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, deleted.ProductoID)
	resp := toResponse(deleted, uc.now())
	return &resp, nil
}

// GetByID obtiene un mantenimiento.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.MaintenanceResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(m, uc.now())
	return &resp, nil
}

// List filtra por estado, producto y vencidos.
func (uc *UseCase) List(ctx context.Context, in dto.MaintenanceListRequest) (*dto.MaintenanceListResponse, error) {
	in.DefaultPage()
	estado := strings.ToLower(strings.TrimSpace(in.Estado))
	if estado != "" && !entity.ValidMaintenanceState(estado) {
		return nil, domain.Invalid("estado", "estado desconocido")
	}
	productoID := strings.TrimSpace(in.ProductoID)
	if productoID != "" && !domain.ValidID(productoID) {
		return nil, domain.Invalid("productoId", "debe ser un UUID")
	}
	now := uc.now()
	list, total, err := uc.repo.List(ctx, entity.MaintenanceFilter{
		Estado:       estado,
		ProductoID:   productoID,
		SoloVencidos: in.Vencidos,
		Now:          now,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaintenanceResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toResponse(m, now))
	}
	return &dto.MaintenanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func validateCreate(tipo, estado string, in dto.CreateMaintenanceRequest) error {
	if strings.TrimSpace(in.ProductoID) == "" {
		return domain.Invalid("productoId", "es obligatorio")
	}
	if !entity.ValidMaintenanceType(tipo) {
		return domain.Invalid("tipo", "debe ser preventivo, correctivo o instalacion")
	}
	if !entity.ValidMaintenanceState(estado) {
		return domain.Invalid("estado", "debe ser activo, completado o cancelado")
	}
	if in.Costo.IsNegative() {
		return domain.Invalid("costo", "no puede ser negativo")
	}
	if in.VidaUtilHoras != nil && *in.VidaUtilHoras < 0 {
		return domain.Invalid("vidaUtilHoras", "no puede ser negativa")
	}
	return nil
}

func applyUpdate(m *entity.Maintenance, in dto.UpdateMaintenanceRequest) error {
	if in.Estado != nil {
		estado := strings.ToLower(strings.TrimSpace(*in.Estado))
		if !entity.ValidMaintenanceState(estado) {
			return domain.Invalid("estado", "debe ser activo, completado o cancelado")
		}
		if !entity.CanTransition(m.Estado, estado) {
			return domain.ErrInvalidTransition
		}
		m.Estado = estado
	}
	if in.Tipo != nil {
		tipo := strings.ToLower(strings.TrimSpace(*in.Tipo))
		if !entity.ValidMaintenanceType(tipo) {
			return domain.Invalid("tipo", "debe ser preventivo, correctivo o instalacion")
		}
		m.Tipo = tipo
	}
	if in.Costo != nil {
		if in.Costo.IsNegative() {
			return domain.Invalid("costo", "no puede ser negativo")
		}
		m.Costo = *in.Costo
	}
	if in.VidaUtilHoras != nil {
		if *in.VidaUtilHoras < 0 {
			return domain.Invalid("vidaUtilHoras", "no puede ser negativa")
		}
		m.VidaUtilHoras = in.VidaUtilHoras
	}
	if in.Equipo != nil {
		m.Equipo = strings.TrimSpace(*in.Equipo)
	}
	if in.FechaInstalacion != nil {
		m.FechaInstalacion = *in.FechaInstalacion
	}
	if in.FechaVencimiento != nil {
		m.FechaVencimiento = in.FechaVencimiento
	}
	if in.Tecnico != nil {
		m.Tecnico = strings.TrimSpace(*in.Tecnico)
	}
	if in.Observaciones != nil {
		m.Observaciones = strings.TrimSpace(*in.Observaciones)
	}
	if m.FechaVencimiento != nil && m.FechaVencimiento.Before(m.FechaInstalacion) {
		return domain.Invalid("fechaVencimiento", "no puede ser anterior a la fecha de instalación")
	}
	return nil
}

func toResponse(m *entity.Maintenance, now time.Time) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		ID:               m.ID,
		ProductoID:       m.ProductoID,
		Equipo:           m.Equipo,
		Tipo:             m.Tipo,
		FechaInstalacion: m.FechaInstalacion,
		FechaVencimiento: m.FechaVencimiento,
		VidaUtilHoras:    m.VidaUtilHoras,
		Tecnico:          m.Tecnico,
		Costo:            m.Costo,
		Estado:           m.Estado,
		Vencido:          m.Vencido(now),
		Observaciones:    m.Observaciones,
		CreadoPor:        m.CreadoPor,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
