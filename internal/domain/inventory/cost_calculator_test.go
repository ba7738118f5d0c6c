package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTotalCost_RedondeaADosDecimales(t *testing.T) {
	total := TotalCost(dec("10.005"), 3)
	require.NotNil(t, total)
	assert.Equal(t, "30.02", total.StringFixed(2))
}

func TestTotalCost_SinCostoEsNil(t *testing.T) {
	assert.Nil(t, TotalCost(nil, 5))
}

func TestLedgerUnitCost_EgresoUsaCostoVigente(t *testing.T) {
	c := LedgerUnitCost(entity.MovementEgreso, nil, dec("100"))
	require.NotNil(t, c)
	assert.True(t, c.Equal(decimal.NewFromInt(100)))
}

func TestLedgerUnitCost_EgresoPrefiereCostoSuministrado(t *testing.T) {
	c := LedgerUnitCost(entity.MovementEgreso, dec("80"), dec("100"))
	require.NotNil(t, c)
	assert.True(t, c.Equal(decimal.NewFromInt(80)))
}

func TestLedgerUnitCost_IngresoSinCostoEsNil(t *testing.T) {
	assert.Nil(t, LedgerUnitCost(entity.MovementIngreso, nil, dec("100")))
}

func TestNewStandingCost_SoloIngresoPositivo(t *testing.T) {
	assert.Nil(t, NewStandingCost(entity.MovementIngreso, dec("0")))
	assert.Nil(t, NewStandingCost(entity.MovementIngreso, nil))
	assert.Nil(t, NewStandingCost(entity.MovementEgreso, dec("50")))
	assert.NotNil(t, NewStandingCost(entity.MovementIngreso, dec("50")))
}

func TestNormalizeReferencia(t *testing.T) {
	assert.Equal(t, "DUP-001", NormalizeReferencia("  dup-001 "))
	assert.Equal(t, "ÑANDÚ-1", NormalizeReferencia("ñandú-1"))
}
