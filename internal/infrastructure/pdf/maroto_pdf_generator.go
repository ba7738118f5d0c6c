// Package pdf genera los reportes de inventario y movimientos con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Romero Panificados │ Título + fecha de generación   │
//	│  FILTROS: rango de fechas / referencia                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/application/report"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 62, Blue: 22}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const empresa = "Romero Panificados"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Generator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.Generator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string, landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(empresa, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return maroto.New(b.Build())
}

// InventoryPDF existencias y valorización por producto.
func (g *MarotoPDFGenerator) InventoryPDF(_ context.Context, r report.InventoryReport) ([]byte, error) {
	m := newDocument("Reporte de inventario", false)

	m.AddRows(headerRow("REPORTE DE INVENTARIO", r.GeneradoEn.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeader([]column{
		{"Referencia", 2, align.Left},
		{"Nombre", 3, align.Left},
		{"Equipo", 2, align.Left},
		{"Categoría", 2, align.Left},
		{"Exist.", 1, align.Right},
		{"Valor", 2, align.Right},
	}))
	for _, p := range r.Productos {
		m.AddRows(tableRow([]cell{
			{p.Referencia, 2, align.Left},
			{p.Nombre, 3, align.Left},
			{nonEmpty(p.Equipo, "—"), 2, align.Left},
			{nonEmpty(p.Categoria, "—"), 2, align.Left},
			{strconv.Itoa(p.Existencia), 1, align.Right},
			{"$" + formatMoney(p.ValorInventario()), 2, align.Right},
		}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{"Productos:", strconv.Itoa(len(r.Productos))},
		{"Unidades:", strconv.Itoa(r.TotalUnidades)},
		{"Valor total:", "$" + formatMoney(r.ValorTotal)},
	}))

	return generate(m)
}

// MovementsPDF libro de movimientos del rango con totales por tipo.
func (g *MarotoPDFGenerator) MovementsPDF(_ context.Context, r report.MovementReport) ([]byte, error) {
	m := newDocument("Reporte de movimientos", true)

	m.AddRows(headerRow("REPORTE DE MOVIMIENTOS", r.GeneradoEn.Format("02/01/2006 15:04")))
	m.AddRows(filtersRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeader([]column{
		{"Fecha", 2, align.Left},
		{"Referencia", 2, align.Left},
		{"Tipo", 1, align.Center},
		{"Cant.", 1, align.Right},
		{"Costo unit.", 2, align.Right},
		{"Costo total", 2, align.Right},
		{"Nota", 2, align.Left},
	}))
	for _, mv := range r.Movimientos {
		m.AddRows(tableRow([]cell{
			{mv.Fecha.Format("02/01/2006 15:04"), 2, align.Left},
			{mv.Referencia, 2, align.Left},
			{mv.Tipo, 1, align.Center},
			{strconv.Itoa(mv.Cantidad), 1, align.Right},
			{optionalMoney(mv.CostoUnitario), 2, align.Right},
			{optionalMoney(mv.CostoTotal), 2, align.Right},
			{nonEmpty(mv.Nota, ""), 2, align.Left},
		}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	var totals [][2]string
	for _, tipo := range []string{entity.MovementIngreso, entity.MovementEgreso} {
		t := r.Totales[tipo]
		totals = append(totals, [2]string{
			strings.ToUpper(tipo[:1]) + tipo[1:] + "s:",
			fmt.Sprintf("%d mov. / %d und. / $%s", t.Movimientos, t.Unidades, formatMoney(t.Costo)),
		})
	}
	m.AddRows(totalsRow(totals))

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, generated string) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(empresa, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Inventario y mantenimiento de planta", props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Generado: "+generated, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func filtersRow(r report.MovementReport) core.Row {
	desde, hasta := "inicio", "hoy"
	if r.Desde != nil {
		desde = r.Desde.Format("02/01/2006")
	}
	if r.Hasta != nil {
		hasta = r.Hasta.Format("02/01/2006")
	}
	label := fmt.Sprintf("Periodo: %s a %s", desde, hasta)
	if r.Referencia != "" {
		label += "   |   Referencia: " + r.Referencia
	}
	return row.New(6).Add(col.New(12).Add(text.New(label, props.Text{Size: 8, Top: 1, Color: colorGray})))
}

type column struct {
	label string
	size  int
	align align.Type
}

type cell = column

func tableHeader(cols []column) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cells []cell) core.Row {
	r := row.New(6)
	for _, c := range cells {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func totalsRow(pairs [][2]string) core.Row {
	labels := col.New(4)
	values := col.New(4)
	for i, p := range pairs {
		top := float64(i*5 + 1)
		labels.Add(text.New(p[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(p[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(float64(len(pairs)*5 + 4)).Add(col.New(4), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func optionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return "$" + formatMoney(*d)
}

// formatMoney formatea con puntos de miles y coma decimal: 1234567.5 → "1.234.567,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
