package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repos funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation 23503: la fila está referenciada por otra tabla.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// isInvalidTextRepresentation 22P02: el valor no se pudo convertir al tipo de la columna
// (por ejemplo un id que no es UUID).
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// isNoRow: sin fila, o una clave que no puede existir en la columna uuid.
func isNoRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

// conditions arma cláusulas WHERE con placeholders numerados.
type conditions struct {
	parts []string
	args  []any
}

// add agrega una condición; expr usa %[1]d para el número del placeholder.
func (c *conditions) add(expr string, v any) {
	c.args = append(c.args, v)
	c.parts = append(c.parts, fmt.Sprintf(expr, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// page agrega LIMIT/OFFSET como placeholders cuando limit > 0.
func (c *conditions) page(limit, offset int) (string, []any) {
	if limit <= 0 {
		return "", c.args
	}
	args := append(append([]any{}, c.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}
