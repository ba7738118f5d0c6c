package audit

import (
	"context"
	"strings"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// QueryUseCase consulta de registros de auditoría.
type QueryUseCase struct {
	repo repository.AuditRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.AuditRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List filtra por usuario, acción, entidad y rango de fechas, paginado.
func (uc *QueryUseCase) List(ctx context.Context, in dto.AuditListRequest) (*dto.AuditListResponse, error) {
	in.DefaultPage()
	accion := strings.ToUpper(strings.TrimSpace(in.Accion))
	if accion != "" && !entity.ValidAuditAction(accion) {
		return nil, domain.Invalid("accion", "acción desconocida")
	}
	usuario := strings.TrimSpace(in.Usuario)
	if usuario != "" && !domain.ValidID(usuario) {
		return nil, domain.Invalid("usuario", "debe ser un UUID")
	}
	desde, hasta, err := dto.ParseDateRange(in.Desde, in.Hasta, nil)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, entity.AuditFilter{
		UsuarioID: usuario,
		Accion:    accion,
		Entidad:   strings.TrimSpace(in.Entidad),
		Desde:     desde,
		Hasta:     hasta,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditEntryResponse{
			ID:        e.ID,
			UsuarioID: e.UsuarioID,
			Accion:    e.Accion,
			Entidad:   e.Entidad,
			EntidadID: e.EntidadID,
			Detalles:  e.Detalles,
			IP:        e.IP,
			Fecha:     e.Fecha,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
