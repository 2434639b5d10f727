// Package pdf renderiza la lista de stock agrupada por ubicación como documento A4.
//
//	┌─────────────────────────────────────────────┐
//	│  Título + fecha de emisión                  │
//	│  ─────────────────────────────────────────  │
//	│  UBICACIÓN (Armário, Geladeira, ...)        │
//	│    Produto | Validade | Estado              │
//	│  ...                                        │
//	│  Leyenda de estados                         │
//	└─────────────────────────────────────────────┘
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

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
)

var _ inventory.StockPDFGenerator = (*StockListPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 46, Green: 110, Blue: 64}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWarn    = &props.Color{Red: 196, Green: 130, Blue: 0}
	colorDanger  = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// statusLabels etiquetas en portugués de los estados de la lista.
var statusLabels = map[string]string{
	"ok":     "OK",
	"warn":   "Atenção",
	"danger": "Vencendo",
}

// StockListPDF implementa inventory.StockPDFGenerator con Maroto v2.
type StockListPDF struct {
	now func() time.Time
}

// NewStockListPDF construye el generador.
func NewStockListPDF() *StockListPDF { return &StockListPDF{now: time.Now} }

// GenerateStockListPDF genera el PDF y devuelve sus bytes.
func (g *StockListPDF) GenerateStockListPDF(_ context.Context, title string, list *dto.StockListResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if list == nil || len(list.Groups) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum item em estoque.", props.Text{Size: 10, Top: 3, Color: colorGray}),
		)))
	} else {
		for _, g := range list.Groups {
			m.AddRows(groupRows(g)...)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(legendRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, now time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Emitido em "+now.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 5, Color: colorGray,
		})),
	)
}

// groupRows: cabecera de la ubicación + una fila por ítem.
func groupRows(g dto.StockGroupDTO) []core.Row {
	rows := []core.Row{
		row.New(3),
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%s (%d)", g.Location, len(g.Items)),
			props.Text{Style: fontstyle.Bold, Size: 10, Color: colorWhite, Top: 1.5, Left: 2},
		))).WithStyle(&props.Cell{BackgroundColor: colorPrimary}),
	}
	for _, it := range g.Items {
		expiry := "—"
		if it.Expiry != nil {
			expiry = *it.Expiry
		}
		rows = append(rows, row.New(7).Add(
			col.New(7).Add(text.New(it.Name, props.Text{Size: 9, Top: 1.5, Left: 2})),
			col.New(2).Add(text.New(expiry, props.Text{Size: 9, Align: align.Center, Top: 1.5})),
			col.New(3).Add(text.New(statusLabel(it.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1.5, Right: 2,
				Color: statusColor(it.Status),
			})),
		))
	}
	return rows
}

func legendRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(
		"Vencendo: vencido ou vence em até 2 dias  |  Atenção: até 7 dias  |  OK: sem data ou mais de 7 dias",
		props.Text{Size: 7, Color: colorGray, Top: 1},
	)))
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

func statusColor(s string) *props.Color {
	switch s {
	case "danger":
		return colorDanger
	case "warn":
		return colorWarn
	}
	return colorGray
}
