package inventory

import (
	"context"
	"strings"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/inventory"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/pkg/logger"
	"github.com/romero-panificados/inventario-api/pkg/metrics"
)

// RegisterMovementUseCase registra ingresos y egresos de forma transaccional.
// La existencia cambia con una sola sentencia condicional, sin leer y reescribir la fila.
type RegisterMovementUseCase struct {
	txRunner     repository.TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	cache        ports.ProductCache
	notifier     MovementNotifier
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. notifier y m pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner repository.TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	cache ports.ProductCache,
	notifier MovementNotifier,
	m *metrics.Metrics,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		cache:        cache,
		notifier:     notifier,
		metrics:      m,
		log:          log.Component("inventario"),
	}
}

// ListMovements consulta el libro con filtros de referencia, tipo y rango de fechas.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	tipo := strings.ToLower(strings.TrimSpace(in.Tipo))
	if tipo != "" && !entity.ValidMovementType(tipo) {
		return nil, domain.Invalid("tipo", "debe ser ingreso o egreso")
	}
	desde, hasta, err := dto.ParseDateRange(in.Desde, in.Hasta, nil)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.movementRepo.List(ctx, entity.MovementFilter{
		Referencia: inventory.NormalizeReferencia(in.Referencia),
		Tipo:       tipo,
		Desde:      desde,
		Hasta:      hasta,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ToMovementResponse convierte un asiento del libro a su DTO.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductoID:    m.ProductoID,
		Referencia:    m.Referencia,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		CostoUnitario: m.CostoUnitario,
		CostoTotal:    m.CostoTotal,
		Nota:          m.Nota,
		UsuarioID:     m.UsuarioID,
		Categoria:     m.Categoria,
		Fecha:         m.Fecha,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return *usecase.ToProductResponse(p)
}
