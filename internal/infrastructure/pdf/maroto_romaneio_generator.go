// Package pdf implementa a geração do Romaneio de Carga em PDF, o documento
// impresso que acompanha cada remessa física até o cliente.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ROMANEIO DE CARGA  │  N° Carga + Nota + Data       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATÁRIO: Nome + Endereço + Cidade/UF                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Un | Código | Descrição | Peso | Volume      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Peso (kg) / Volume (m³) / Valor da carga           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: campo de conferência / assinatura do recebedor     │
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

	"github.com/pontoComDesigner/dashboardlogcar-sub000/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 83, Blue: 48}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRomaneioGenerator implementa romaneio.RomaneioGenerator usando Maroto v2.
type MarotoRomaneioGenerator struct{}

// NewMarotoRomaneioGenerator constrói o gerador.
func NewMarotoRomaneioGenerator() *MarotoRomaneioGenerator { return &MarotoRomaneioGenerator{} }

// GenerateRomaneio gera o PDF e devolve seus bytes.
func (g *MarotoRomaneioGenerator) GenerateRomaneio(
	_ context.Context,
	carga *entity.Carga,
	nota *entity.NotaFiscal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Romaneio de Carga "+carga.Numero, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(carga, nota))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(destinatarioRow(carga))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(carga.Itens) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totaisRow(carga))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(assinaturaRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título do documento (esq) e número da carga + nota + data (dir).
func headerRow(carga *entity.Carga, nota *entity.NotaFiscal) core.Row {
	data := time.Now().Format("02/01/2006")
	if carga.EnviadaEm != nil {
		data = carga.EnviadaEm.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ROMANEIO DE CARGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota fiscal: "+nota.Numero, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CARGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(carga.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// destinatarioRow: dados do destinatário da remessa.
func destinatarioRow(carga *entity.Carga) core.Row {
	cidade := carga.ClienteCidade
	if carga.ClienteUF != "" {
		cidade = cidade + "/" + carga.ClienteUF
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATÁRIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(carga.ClienteNome, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   %s",
				nonEmpty(carga.ClienteEndereco, "—"),
				nonEmpty(cidade, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens da carga.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Un.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Peso (kg)", 2, align.Right),
		h("Volume (m³)", 2, align.Right),
	)
}

// tableItemRows: uma linha por item da carga.
func tableItemRows(itens []*entity.CargaItem) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for _, it := range itens {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantidade.StringFixed(2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Unidade,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.CodigoProduto,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.Descricao,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Peso.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Volume.StringFixed(3),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totaisRow: bloco de totais alinhado à direita.
func totaisRow(carga *entity.Carga) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Peso total (kg):"),
			label("Volume total (m³):"),
			grandLabel("VALOR DA CARGA:"),
		),
		col.New(4).Add(
			value(carga.PesoTotal.StringFixed(2)),
			value(carga.VolumeTotal.StringFixed(3)),
			grandValue("R$ "+formatMoney(carga.ValorTotal.StringFixed(0))),
		),
		col.New(1),
	)
}

// assinaturaRows: campo de conferência e assinatura do recebedor.
func assinaturaRows() []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONFERÊNCIA DE RECEBIMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Declaro ter recebido os volumes relacionados neste romaneio em perfeito estado.",
				props.Text{Size: 7, Color: colorGray, Top: 2},
			),
		)),
		row.New(14).Add(
			col.New(6).Add(
				text.New("____________________________________", props.Text{Size: 9, Top: 8, Align: align.Center}),
				text.New("Assinatura do recebedor", props.Text{Size: 7, Top: 12, Align: align.Center, Color: colorGray}),
			),
			col.New(6).Add(
				text.New("______ / ______ / __________", props.Text{Size: 9, Top: 8, Align: align.Center}),
				text.New("Data do recebimento", props.Text{Size: 7, Top: 12, Align: align.Center, Color: colorGray}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney insere pontos de milhar em um string numérico sem decimais.
// Ex: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
