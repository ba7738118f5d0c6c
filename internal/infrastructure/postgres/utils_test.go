package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsNoRow(t *testing.T) {
	assert.True(t, isNoRow(pgx.ErrNoRows))
	assert.True(t, isNoRow(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	// id = 'abc' contra una columna uuid
	assert.True(t, isNoRow(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}))
	assert.False(t, isNoRow(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRow(errors.New("conexión cerrada")))
}

func TestCodigosDeError(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isInvalidTextRepresentation(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isInvalidTextRepresentation(&pgconn.PgError{Code: "23503"}))
}
