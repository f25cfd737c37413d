// Package pdf implementa la generación del reporte de movimientos de
// inventario en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | SKU | Producto | Bodega | Cant | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de movimientos listados                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinventory "github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles por tipo de movimiento.
var movementTypeLabels = map[string]string{
	entity.MovementTypeInbound:     "Entrada",
	entity.MovementTypeOutbound:    "Salida",
	entity.MovementTypeDamage:      "Baja",
	entity.MovementTypeTransferOut: "Traslado (salida)",
	entity.MovementTypeTransferIn:  "Traslado (entrada)",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.MovementReportGenerator usando
// Maroto v2.
type MarotoReportGenerator struct{}

var _ appinventory.MovementReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// MovementsPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) MovementsPDF(_ context.Context, title string, movements []*entity.Movement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Libro de movimientos de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("SKU", 1, align.Left),
		h("Producto", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Valor", 1, align.Right),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		valor := "—"
		if m.TotalValue != nil {
			valor = "$" + m.TotalValue.StringFixed(0)
		}
		bodega := m.WarehouseName
		if m.DestWarehouseName != "" {
			bodega = m.WarehouseName + " → " + m.DestWarehouseName
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				m.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				movementTypeLabel(m.Type),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				m.ProductSKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				m.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				bodega,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", m.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				valor,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: total de movimientos listados.
func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total de movimientos: %d", total), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func movementTypeLabel(movementType string) string {
	if label, ok := movementTypeLabels[movementType]; ok {
		return label
	}
	return movementType
}
