package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, referencia, nombre, equipo, existencia, detalle, categoria, costo_unitario, codigo_fabricante, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Referencia, &p.Nombre, &p.Equipo, &p.Existencia, &p.Detalle,
		&p.Categoria, &p.CostoUnitario, &p.CodigoFabricante, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Referencia repetida → ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Referencia, p.Nombre, p.Equipo, p.Existencia, p.Detalle,
		p.Categoria, p.CostoUnitario, p.CodigoFabricante, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetByReferencia obtiene un producto por referencia ya normalizada.
func (r *ProductRepo) GetByReferencia(ctx context.Context, referencia string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE referencia = $1`, referencia)
}

// GetForUpdate obtiene el producto con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos descriptivos. Existencia y costo se manejan con AdjustStock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, equipo = $3, detalle = $4, categoria = $5,
			codigo_fabricante = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Equipo, p.Detalle, p.Categoria, p.CodigoFabricante, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Si aún lo referencian movimientos o mantenimientos → ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por referencia con filtros y total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	var c conditions
	if f.Categoria != "" {
		c.add("categoria = $%d", f.Categoria)
	}
	if f.Equipo != "" {
		c.add("equipo = $%d", f.Equipo)
	}
	if f.Texto != "" {
		c.add("(referencia ILIKE $%[1]d OR nombre ILIKE $%[1]d OR detalle ILIKE $%[1]d)", likePattern(f.Texto))
	}
	if f.SinStock {
		c.parts = append(c.parts, "existencia = 0")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos`+c.where()+` ORDER BY referencia`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// AdjustStock aplica delta con una sola sentencia condicional; la fila queda bloqueada hasta el commit.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int, newCost *decimal.Decimal) (*entity.Product, error) {
	query := `
		UPDATE productos
		SET existencia = existencia + $2,
			costo_unitario = COALESCE($3, costo_unitario),
			updated_at = now()
		WHERE id = $1 AND existencia + $2 >= 0
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, delta, newCost))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return p, nil
}

// Summary totales de productos para el dashboard.
func (r *ProductRepo) Summary(ctx context.Context) (entity.ProductSummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(existencia), 0),
			COALESCE(SUM(existencia * COALESCE(costo_unitario, 0)), 0),
			COUNT(*) FILTER (WHERE existencia = 0)
		FROM productos`
	var s entity.ProductSummary
	if err := r.q.QueryRow(ctx, query).Scan(&s.Productos, &s.Unidades, &s.ValorInventario, &s.SinStock); err != nil {
		return entity.ProductSummary{}, fmt.Errorf("product summary: %w", err)
	}
	return s, nil
}
