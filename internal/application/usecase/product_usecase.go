package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/inventory"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Existencia y costo cambian vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movements    repository.MovementRepository
	maintenances repository.MaintenanceRepository
	txRunner     repository.TxRunner
	history      *history.Service
	cache        ports.ProductCache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	movements repository.MovementRepository,
	maintenances repository.MaintenanceRepository,
	txRunner repository.TxRunner,
	hist *history.Service,
	cache ports.ProductCache,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		movements:    movements,
		maintenances: maintenances,
		txRunner:     txRunner,
		history:      hist,
		cache:        cache,
	}
}

// Create crea un producto y su versión 1. Referencia repetida → ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ref := inventory.NormalizeReferencia(in.Referencia)
	if ref == "" {
		return nil, domain.Invalid("referencia", "es obligatoria")
	}
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.Invalid("nombre", "es obligatorio")
	}
	if in.Existencia < 0 {
		return nil, domain.Invalid("existencia", "no puede ser negativa")
	}
	if in.CostoUnitario != nil && in.CostoUnitario.IsNegative() {
		return nil, domain.Invalid("costoUnitario", "no puede ser negativo")
	}
	existing, err := uc.repo.GetByReferencia(ctx, ref)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Referencia:       ref,
		Nombre:           nombre,
		Equipo:           strings.TrimSpace(in.Equipo),
		Existencia:       in.Existencia,
		Detalle:          strings.TrimSpace(in.Detalle),
		Categoria:        strings.TrimSpace(in.Categoria),
		CostoUnitario:    in.CostoUnitario,
		CodigoFabricante: strings.TrimSpace(in.CodigoFabricante),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		_, err := uc.history.Capture(ctx, tx, product.ID, actorID, "creación")
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, usando el cache si está disponible.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	if p, ok := uc.cache.Get(ctx, id); ok {
		return toProductResponse(p), nil
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	uc.cache.Set(ctx, product)
	return toProductResponse(product), nil
}

// GetByReferencia busca por referencia sin distinguir mayúsculas.
func (uc *ProductUseCase) GetByReferencia(ctx context.Context, ref string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByReferencia(ctx, inventory.NormalizeReferencia(ref))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update modifica los campos descriptivos y captura una nueva versión en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		return nil, domain.Invalid("nombre", "no puede quedar vacío")
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Nombre != nil {
			product.Nombre = strings.TrimSpace(*in.Nombre)
		}
		if in.Equipo != nil {
			product.Equipo = strings.TrimSpace(*in.Equipo)
		}
		if in.Detalle != nil {
			product.Detalle = strings.TrimSpace(*in.Detalle)
		}
		if in.Categoria != nil {
			product.Categoria = strings.TrimSpace(*in.Categoria)
		}
		if in.CodigoFabricante != nil {
			product.CodigoFabricante = strings.TrimSpace(*in.CodigoFabricante)
		}
		product.UpdatedAt = time.Now()
		if err := tx.Products.Update(ctx, product); err != nil {
			return err
		}
		if _, err := uc.history.Capture(ctx, tx, id, actorID, strings.TrimSpace(in.Motivo)); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, id)
	return toProductResponse(updated), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, entity.ProductFilter{
		Categoria: strings.TrimSpace(in.Categoria),
		Equipo:    strings.TrimSpace(in.Equipo),
		Texto:     strings.TrimSpace(in.Q),
		SinStock:  in.SinStock,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un producto sin movimientos ni mantenimientos asociados; si los tiene → ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	nMov, err := uc.movements.CountByProducto(ctx, id)
	if err != nil {
		return err
	}
	nMant, err := uc.maintenances.CountByProducto(ctx, id)
	if err != nil {
		return err
	}
	if nMov > 0 || nMant > 0 {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, id)
	return nil
}

// ToProductResponse convierte la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return toProductResponse(p)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		Referencia:       p.Referencia,
		Nombre:           p.Nombre,
		Equipo:           p.Equipo,
		Existencia:       p.Existencia,
		Detalle:          p.Detalle,
		Categoria:        p.Categoria,
		CostoUnitario:    p.CostoUnitario,
		CodigoFabricante: p.CodigoFabricante,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
