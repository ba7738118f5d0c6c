package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/application/report"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "400,00", formatMoney(decimal.NewFromInt(400)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
}

func TestInventoryPDF_GeneraDocumento(t *testing.T) {
	costo := decimal.NewFromInt(100)
	g := NewMarotoPDFGenerator()

	b, err := g.InventoryPDF(context.Background(), report.InventoryReport{
		GeneradoEn: time.Now(),
		Productos: []*entity.Product{
			{Referencia: "REF-001", Nombre: "Rodamiento", Existencia: 10, CostoUnitario: &costo},
		},
		TotalUnidades: 10,
		ValorTotal:    decimal.NewFromInt(1000),
	})

	require.NoError(t, err)
	assert.True(t, len(b) > 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}
