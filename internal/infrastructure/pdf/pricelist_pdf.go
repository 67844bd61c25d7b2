// Package pdf implementa el render de listas de precios para compartir con
// clientes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la lista │ Nivel + Moneda + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Unidad | Precio                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS (si hay)                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// tierLabels nombres visibles de cada nivel en el documento.
var tierLabels = map[string]string{
	"retail":      "Minorista",
	"wholesale":   "Mayorista",
	"distributor": "Distribuidor",
}

// MarotoPriceListGenerator implementa usecase.PriceListPDFGenerator con Maroto v2.
type MarotoPriceListGenerator struct {
	printer *message.Printer
}

var _ usecase.PriceListPDFGenerator = (*MarotoPriceListGenerator)(nil)

// NewMarotoPriceListGenerator construye el generador con formato numérico
// regional (punto de miles, coma decimal).
func NewMarotoPriceListGenerator() *MarotoPriceListGenerator {
	return &MarotoPriceListGenerator{
		printer: message.NewPrinter(language.MustParse("es-CO")),
	}
}

// GeneratePriceListPDF genera el PDF de la lista y devuelve sus bytes.
func (g *MarotoPriceListGenerator) GeneratePriceListPDF(list *dto.PriceListResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de precios "+list.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(list))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, it := range list.Items {
		m.AddRows(g.itemRow(it))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	if list.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(list.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar lista de precios: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la lista (izq) y nivel + moneda + fecha (der).
func (g *MarotoPriceListGenerator) headerRow(list *dto.PriceListResponse) core.Row {
	tier := tierLabels[list.Tier]
	if tier == "" {
		tier = list.Tier
	}
	fecha := time.Now().Format("02/01/2006")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(list.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lista de precios "+tier, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Moneda: "+list.Currency, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Vigente al "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 7, align.Left),
		h("Unidad", 2, align.Center),
		h("Precio", 3, align.Right),
	)
}

func (g *MarotoPriceListGenerator) itemRow(it dto.PriceListItemResponse) core.Row {
	return row.New(7).Add(
		col.New(7).Add(text.New(
			it.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			it.Unit,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$ "+g.formatMoney(it.Price),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// formatMoney formatea con separador de miles regional y dos decimales.
// Ej: 25000 → "25.000,00"
func (g *MarotoPriceListGenerator) formatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("%.2f", f)
}
